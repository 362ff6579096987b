package repository

import (
	"context"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia del padrón de clientes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByCode(ctx context.Context, code string) (*entity.Client, error)
	// List ordenado por código.
	List(ctx context.Context) ([]*entity.Client, error)
	// Update no modifica el código.
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
