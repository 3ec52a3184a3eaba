package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	sql, args, err := Select("id", "name").
		From("teams").
		Where(Eq("season_id", "s1"), IsNull("deleted_at")).
		OrderBy("name ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "SELECT id, name FROM teams WHERE season_id = $1 AND deleted_at IS NULL ORDER BY name ASC LIMIT 10"
	if sql != wantSQL {
		t.Fatalf("unexpected sql:\n got: %s\nwant: %s", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"s1"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSelectBuilderIn(t *testing.T) {
	sql, args, err := Select("id").
		From("users").
		Where(In("id", []any{"u1", "u2", "u3"})).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "SELECT id FROM users WHERE id IN ($1, $2, $3)"
	if sql != wantSQL {
		t.Fatalf("unexpected sql:\n got: %s\nwant: %s", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"u1", "u2", "u3"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	sql, args, err := Select("id").
		From("users").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "SELECT id FROM users WHERE 1=0"
	if sql != wantSQL {
		t.Fatalf("unexpected sql:\n got: %s\nwant: %s", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSelectBuilderMissingTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestUpdateBuilder(t *testing.T) {
	sql, args, err := Update("users").
		Set("subscribed", true).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL returned error: %v", err)
	}

	wantSQL := "UPDATE users SET subscribed = $1, updated_at = NOW() WHERE id = $2"
	if sql != wantSQL {
		t.Fatalf("unexpected sql:\n got: %s\nwant: %s", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{true, "u1"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestUpdateBuilderRequiresWhere(t *testing.T) {
	if _, _, err := Update("users").Set("subscribed", true).ToSQL(); err == nil {
		t.Fatal("expected error for update without where")
	}
}
