package postgres

import (
	"strings"
	"testing"

	"autostat/internal/schema"
)

func TestCreateTableSQLTypes(t *testing.T) {
	got := CreateTableSQL("public.autos", []string{"brand", "price"})
	want := `CREATE TABLE IF NOT EXISTS "public"."autos" ("brand" text, "price" bigint)`
	if got != want {
		t.Fatalf("ddl = %q, want %q", got, want)
	}
}

func TestCreateTableSQLFullCleanSchema(t *testing.T) {
	ddl := CreateTableSQL("autos", schema.CleanColumns)
	for _, c := range schema.CleanColumns {
		if !strings.Contains(ddl, `"`+c+`"`) {
			t.Fatalf("ddl missing column %q: %s", c, ddl)
		}
	}
}

func TestPgFQN(t *testing.T) {
	if got := pgFQN("public.autos"); got != `"public"."autos"` {
		t.Fatalf("pgFQN = %q", got)
	}
	if got := pgFQN("autos"); got != `"autos"` {
		t.Fatalf("pgFQN = %q", got)
	}
}

func TestPgIdentEscapesQuotes(t *testing.T) {
	if got := pgIdent(`we"ird`); got != `"we""ird"` {
		t.Fatalf("pgIdent = %q", got)
	}
}
