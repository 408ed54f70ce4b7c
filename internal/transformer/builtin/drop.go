package builtin

import "autostat/pkg/records"

// Drop removes the named columns from every record. The loss is permanent:
// downstream stages never see the dropped columns. Used for the fields that
// carry no information (near-constant or always zero).
type Drop struct {
	Fields []string
}

func (d Drop) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for _, f := range d.Fields {
			delete(r, f)
		}
	}
	return in, nil
}
