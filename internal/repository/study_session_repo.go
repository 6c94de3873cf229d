package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mikra-backend/internal/models"
)

type StudySessionRepo struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepo(pool *pgxpool.Pool) *StudySessionRepo {
	return &StudySessionRepo{pool: pool}
}

// Start inserts a new session row and fills in the generated id and
// timestamps. started_at and last_activity_at are set by the same DEFAULT
// NOW(), so they are equal at creation.
func (r *StudySessionRepo) Start(ctx context.Context, s *models.StudySession) error {
	query := `
		INSERT INTO study_sessions (user_id, set_id, mode)
		VALUES ($1, $2, $3)
		RETURNING id, started_at, last_activity_at
	`

	return r.pool.QueryRow(ctx, query, s.UserID, s.SetID, s.Mode).Scan(
		&s.ID,
		&s.StartedAt,
		&s.LastActivityAt,
	)
}

// Heartbeat bumps last_activity_at on the caller's own open session. A
// session id owned by someone else matches nothing and the call still
// succeeds; callers do not learn whether a row was touched.
func (r *StudySessionRepo) Heartbeat(ctx context.Context, sessionID uuid.UUID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE study_sessions
		SET last_activity_at = NOW()
		WHERE id = $1
		  AND user_id = $2
		  AND ended_at IS NULL
	`, sessionID, userID)
	return err
}

// CloseStale ends every open session whose last heartbeat is older than the
// given idle window and reports how many were closed.
func (r *StudySessionRepo) CloseStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE study_sessions
		SET ended_at = NOW()
		WHERE ended_at IS NULL
		  AND last_activity_at < NOW() - ($1 * INTERVAL '1 second')
	`, olderThan.Seconds())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
