package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// preferenceRepo implements prefs.Store on the preferences table.
type preferenceRepo struct {
	db *sql.DB
}

func (r *preferenceRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder.Select("value").
		From(entsql.Table("preferences")).
		Where(entsql.EQ("key", key)).
		Query()

	var raw string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return raw, true, nil
}

func (r *preferenceRepo) Set(ctx context.Context, key, raw string) error {
	query, args := builder.Insert("preferences").
		Columns("key", "value", "updated_at").
		Values(key, raw, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
