package schema

import "testing"

func TestHeaderMapIsTotal(t *testing.T) {
	if len(HeaderMap) != len(SourceHeader) {
		t.Fatalf("HeaderMap has %d entries, want %d", len(HeaderMap), len(SourceHeader))
	}
	for _, src := range SourceHeader {
		if _, ok := HeaderMap[src]; !ok {
			t.Fatalf("HeaderMap missing source column %q", src)
		}
	}
}

func TestCleanColumnsExcludeDropped(t *testing.T) {
	if got, want := len(CleanColumns), len(SourceHeader)-len(DroppedColumns); got != want {
		t.Fatalf("CleanColumns has %d entries, want %d", got, want)
	}
	clean := map[string]struct{}{}
	for _, c := range CleanColumns {
		clean[c] = struct{}{}
	}
	for _, d := range DroppedColumns {
		if _, ok := clean[d]; ok {
			t.Fatalf("dropped column %q present in CleanColumns", d)
		}
	}
	// odometer is renamed with its unit; the bare name must not survive.
	if _, ok := clean["odometer"]; ok {
		t.Fatalf("bare odometer present in CleanColumns; want odometer_km")
	}
	if _, ok := clean["odometer_km"]; !ok {
		t.Fatalf("odometer_km missing from CleanColumns")
	}
}

func TestCheckHeader(t *testing.T) {
	exact := append([]string{}, SourceHeader...)
	if err := CheckHeader(exact); err != nil {
		t.Fatalf("exact header rejected: %v", err)
	}

	if err := CheckHeader(exact[:19]); err == nil {
		t.Fatalf("truncated header accepted")
	}

	swapped := append([]string{}, SourceHeader...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if err := CheckHeader(swapped); err == nil {
		t.Fatalf("reordered header accepted")
	}
}

func TestIntColumnsAreClean(t *testing.T) {
	clean := map[string]struct{}{}
	for _, c := range CleanColumns {
		clean[c] = struct{}{}
	}
	for c := range IntColumns {
		if _, ok := clean[c]; !ok {
			t.Fatalf("IntColumns lists %q, which is not a clean column", c)
		}
	}
}
