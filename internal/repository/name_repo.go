package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NameRepository отдает сохраненные имена для подсказок при наборе
// состава. На корректность игры не влияет - чистый источник данных.
type NameRepository struct {
	db *pgxpool.Pool
}

func NewNameRepository(db *pgxpool.Pool) *NameRepository {
	return &NameRepository{db: db}
}

// возвращает до limit имен, недавние первыми
func (r *NameRepository) GetSuggestedNames(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name FROM suggested_names
		 ORDER BY last_used_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// запоминает имя для будущих подсказок
func (r *NameRepository) RememberName(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO suggested_names (name, last_used_at)
		 VALUES ($1, now())
		 ON CONFLICT (name) DO UPDATE SET last_used_at = now()`,
		name,
	)
	return err
}
