package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mikra-backend/internal/models"
)

type BibleRepo struct {
	pool *pgxpool.Pool
}

func NewBibleRepo(pool *pgxpool.Pool) *BibleRepo {
	return &BibleRepo{pool: pool}
}

// ListBooks returns the full reference table ordered by canonical position.
// The table is small and static, so the result is always fully materialized.
func (r *BibleRepo) ListBooks(ctx context.Context) ([]*models.BibleBook, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, hebrew_name, abbreviation, chapter_count, testament, order_index
		FROM bible_books
		ORDER BY order_index ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.BibleBook
	for rows.Next() {
		b := &models.BibleBook{}
		if err := rows.Scan(
			&b.ID, &b.Name, &b.HebrewName, &b.Abbreviation,
			&b.ChapterCount, &b.Testament, &b.OrderIndex,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, rows.Err()
}
