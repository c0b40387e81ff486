package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("role", "BAT"), IsNull("team_id")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE role = $1 AND team_id IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "BAT" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRangeAndGroup(t *testing.T) {
	query, args, err := Select("role", "COUNT(*) AS total").
		From("players").
		Where(Gte("base_price", 100.0), Lte("base_price", 500.0), IsNotNull("sold_price")).
		GroupBy("role").
		OrderBy("role ASC").
		Offset(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT role, COUNT(*) AS total FROM players WHERE base_price >= $1 AND base_price <= $2 AND sold_price IS NOT NULL GROUP BY role ORDER BY role ASC OFFSET 5"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 100.0 || args[1] != 500.0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInCondition(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		query, args, err := Select("id").
			From("player_scores").
			Where(In("player_id", []any{int64(1), int64(2)})).
			ToSQL()
		if err != nil {
			t.Fatalf("build select query: %v", err)
		}

		wantQuery := "SELECT id FROM player_scores WHERE player_id IN ($1, $2)"
		if query != wantQuery {
			t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
		}
		if len(args) != 2 {
			t.Fatalf("unexpected args: %+v", args)
		}
	})

	t.Run("empty list never matches", func(t *testing.T) {
		query, args, err := Select("id").
			From("player_scores").
			Where(In("player_id", nil)).
			ToSQL()
		if err != nil {
			t.Fatalf("build select query: %v", err)
		}

		wantQuery := "SELECT id FROM player_scores WHERE 1=0"
		if query != wantQuery {
			t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
		}
		if len(args) != 0 {
			t.Fatalf("unexpected args: %+v", args)
		}
	})
}

func TestExprCondition(t *testing.T) {
	query, args, err := Select("id").
		From("matches").
		Where(Expr("(LOWER(team1) = LOWER(?) OR LOWER(team2) = LOWER(?))", "Mumbai Indians", "Mumbai Indians")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM matches WHERE (LOWER(team1) = LOWER($1) OR LOWER(team2) = LOWER($2))"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("name", "owner_name").
		Values("Thunder Kings", "Arjun Mehta").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (name, owner_name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Thunder Kings" || args[1] != "Arjun Mehta" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderMultiRow(t *testing.T) {
	query, args, err := InsertInto("player_scores").
		Columns("player_id", "points").
		Values(int64(1), 72.0).
		Values(int64(2), 31.0).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO player_scores (player_id, points) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertInto("player_scores").
		Columns("player_id", "points").
		Values(int64(1)).
		ToSQL(); err == nil {
		t.Fatalf("expected error for mismatched row width")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		Set("name", "Shubman Gill").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(7))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET name = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Shubman Gill" || args[1] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}
