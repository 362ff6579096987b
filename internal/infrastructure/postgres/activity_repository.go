package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo registro de actividad de usuarios.
type ActivityRepo struct {
	q Querier
}

func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activityColumns = `id, user_id, username, event, ip, user_agent, duration_seconds, created_at`

func (r *ActivityRepo) Record(ctx context.Context, a *entity.UserActivity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_activity (`+activityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.Username, a.Event, a.IP, a.UserAgent, a.DurationSeconds, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) LastLogin(ctx context.Context, userID string) (*entity.UserActivity, error) {
	a, err := getOne(r.q.QueryRow(ctx, `
		SELECT `+activityColumns+` FROM user_activity
		WHERE user_id = $1 AND event = $2
		ORDER BY created_at DESC LIMIT 1`, userID, entity.ActivityLogin), scanActivity)
	if err != nil {
		return nil, fmt.Errorf("last login: %w", err)
	}
	return a, nil
}

func (r *ActivityRepo) List(ctx context.Context, limit int) ([]*entity.UserActivity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+activityColumns+` FROM user_activity
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list user activity: %w", err)
	}
	defer rows.Close()
	var out []*entity.UserActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanActivity(row pgx.Row) (*entity.UserActivity, error) {
	var a entity.UserActivity
	if err := row.Scan(&a.ID, &a.UserID, &a.Username, &a.Event, &a.IP, &a.UserAgent, &a.DurationSeconds, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
