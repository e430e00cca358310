package results

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sparced/benchviz/pkg/errors"
)

// schema stores one sample per row. Insertion order (rowid) is the
// condition/replicate/series order of the store.
const schema = `
CREATE TABLE IF NOT EXISTS samples (
	condition TEXT NOT NULL,
	replicate TEXT NOT NULL,
	series    TEXT NOT NULL,
	time      REAL NOT NULL,
	value     REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_key ON samples(condition, replicate, series);
`

// LoadSQLite reads a results database written by [SaveSQLite].
func LoadSQLite(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "results database %s", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open results database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT condition, replicate, series, time, value FROM samples ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "query results database %s", path)
	}
	defer rows.Close()

	type key struct{ cond, rep, series string }
	pending := make(map[key]*Series)
	var order []key

	for rows.Next() {
		var k key
		var t, v float64
		if err := rows.Scan(&k.cond, &k.rep, &k.series, &t, &v); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		s, ok := pending[k]
		if !ok {
			s = &Series{}
			pending[k] = s
			order = append(order, k)
		}
		s.Times = append(s.Times, t)
		s.Values = append(s.Values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}

	st := NewStore()
	for _, k := range order {
		if err := st.Add(k.cond, k.rep, k.series, *pending[k]); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// SaveSQLite writes st to a SQLite database at path, replacing any samples
// already stored there.
func SaveSQLite(ctx context.Context, path string, st *Store) error {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("open results database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM samples`); err != nil {
		return fmt.Errorf("clear samples: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO samples (condition, replicate, series, time, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	err = st.Walk(func(cond, rep, key string, s Series) error {
		for i := range s.Values {
			if _, err := stmt.ExecContext(ctx, cond, rep, key, s.Times[i], s.Values[i]); err != nil {
				return fmt.Errorf("insert %s/%s/%s: %w", cond, rep, key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return tx.Commit()
}
