package repository

import (
	"context"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

// ActivityRepository registro de ingresos y salidas.
type ActivityRepository interface {
	Record(ctx context.Context, a *entity.UserActivity) error
	// LastLogin último login del usuario; nil, nil si no hay.
	LastLogin(ctx context.Context, userID string) (*entity.UserActivity, error)
	// List más recientes primero.
	List(ctx context.Context, limit int) ([]*entity.UserActivity, error)
}
