package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, code, name, phone, email, address, city,
	name2, phone2, email2, address2, city2, created_at, updated_at`

// Create persiste un cliente. Código repetido -> domain.ErrDuplicate.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	_, err := r.q.Exec(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.Code, c.Name, c.Phone, c.Email, c.Address, c.City,
		c.Name2, c.Phone2, c.Email2, c.Address2, c.City2, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintOf(err) == constraintClientCode {
			return fmt.Errorf("código %s: %w", c.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID nil, nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := getOne(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id), scanClient)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByCode nil, nil si no existe.
func (r *ClientRepo) GetByCode(ctx context.Context, code string) (*entity.Client, error) {
	c, err := getOne(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE code = $1`, code), scanClient)
	if err != nil {
		return nil, fmt.Errorf("get client by code: %w", err)
	}
	return c, nil
}

// List ordenado por código.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var out []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update actualiza todo menos el código.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	c.UpdatedAt = time.Now()
	tag, err := r.q.Exec(ctx, `
		UPDATE clients
		SET name = $2, phone = $3, email = $4, address = $5, city = $6,
		    name2 = $7, phone2 = $8, email2 = $9, address2 = $10, city2 = $11,
		    updated_at = $12
		WHERE id = $1`,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.City,
		c.Name2, c.Phone2, c.Email2, c.Address2, c.City2, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el cliente. Los comprobantes conservan el nombre desnormalizado.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Phone, &c.Email, &c.Address, &c.City,
		&c.Name2, &c.Phone2, &c.Email2, &c.Address2, &c.City2, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
