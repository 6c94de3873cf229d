package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSetNotFound is returned when an activation targets a vocab set id with
// no matching row.
var ErrSetNotFound = errors.New("vocab set not found")

type VocabSetRepo struct {
	pool *pgxpool.Pool
}

func NewVocabSetRepo(pool *pgxpool.Pool) *VocabSetRepo {
	return &VocabSetRepo{pool: pool}
}

// Activate makes setID the only active set. The existence check,
// deactivate-all and activate-target run in one transaction so concurrent
// readers never observe zero or two active sets.
func (r *VocabSetRepo) Activate(ctx context.Context, setID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM vocab_sets WHERE id = $1)", setID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrSetNotFound
	}

	if _, err := tx.Exec(ctx, "UPDATE vocab_sets SET is_active = FALSE WHERE is_active"); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE vocab_sets SET is_active = TRUE WHERE id = $1", setID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Toggle flips the set's active flag in place and returns the new value.
// A single statement keeps concurrent toggles from losing updates.
func (r *VocabSetRepo) Toggle(ctx context.Context, setID string) (bool, error) {
	var isActive bool
	err := r.pool.QueryRow(ctx, `
		UPDATE vocab_sets
		SET is_active = NOT is_active
		WHERE id = $1
		RETURNING is_active
	`, setID).Scan(&isActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrSetNotFound
	}
	return isActive, err
}
