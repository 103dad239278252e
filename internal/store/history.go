package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Search is one recorded search.
type Search struct {
	ID         uuid.UUID
	Query      string
	Path       string
	IgnoreCase bool
	Matches    int
	CreatedAt  time.Time
}

// HistoryRepo persists and lists past searches.
type HistoryRepo struct{ db *DB }

func NewHistoryRepo(db *DB) *HistoryRepo { return &HistoryRepo{db: db} }

func (h *HistoryRepo) Record(ctx context.Context, query, path string, ignoreCase bool, matches int) (Search, error) {
	s := Search{
		ID:         uuid.New(),
		Query:      query,
		Path:       path,
		IgnoreCase: ignoreCase,
		Matches:    matches,
		CreatedAt:  time.Now().UTC(),
	}
	err := h.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO searches(id, query, path, ignore_case, matches, created_at) VALUES (?,?,?,?,?,?)`,
		s.ID.String(), s.Query, s.Path, s.IgnoreCase, s.Matches, s.CreatedAt,
	).Error
	if err != nil {
		return Search{}, errors.Wrap(err, "record search")
	}
	return s, nil
}

// Recent returns up to limit searches, newest first.
func (h *HistoryRepo) Recent(ctx context.Context, limit int) ([]Search, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.gorm.WithContext(ctx).Raw(
		`SELECT id, query, path, ignore_case, matches, created_at FROM searches ORDER BY rowid DESC LIMIT ?`, limit,
	).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "list searches")
	}
	defer rows.Close()

	var out []Search
	for rows.Next() {
		var (
			s  Search
			id string
		)
		if err := rows.Scan(&id, &s.Query, &s.Path, &s.IgnoreCase, &s.Matches, &s.CreatedAt); err != nil {
			return nil, err
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.Wrap(err, "parse search id")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
