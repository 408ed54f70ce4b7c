package parser

import (
	"io"

	"autostat/pkg/records"
)

type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}
