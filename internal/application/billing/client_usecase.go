package billing

import (
	"context"
	"errors"
	"strings"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

// ClientUseCase casos de uso del padrón de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
	log  *logger.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, log *logger.Logger) *ClientUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ClientUseCase{repo: repo, log: log.Component("clients")}
}

// Create alta de cliente. Código repetido -> domain.ErrDuplicate.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	in = trimClientRequest(in)
	if in.Code == "" {
		return nil, domain.NewValidationError("code", "el código es obligatorio")
	}
	if strings.EqualFold(in.Code, entity.PlaceholderClientCode) {
		return nil, domain.NewValidationError("code", "código reservado")
	}
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := &entity.Client{Code: in.Code}
	applyClientRequest(c, in)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client", c.Code).Msg("cliente creado")
	return toClientResponse(c), nil
}

// List clientes ordenados por código.
func (uc *ClientUseCase) List(ctx context.Context) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente por id.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Update modifica los datos de contacto. El código es inmutable.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	in = trimClientRequest(in)
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Code != "" && in.Code != c.Code {
		return nil, domain.NewValidationError("code", "el código no se puede modificar")
	}
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	applyClientRequest(c, in)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Delete baja de cliente. Sus comprobantes conservan nombre y código.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, c.ID); err != nil {
		return err
	}
	uc.log.Info().Str("client", c.Code).Msg("cliente eliminado")
	return nil
}

// Import alta o actualización por código de cada fila (rows[i] es la fila i+2 de la planilla).
// Las filas vacías se saltean. Una fila inválida no detiene el resto; un error del almacén sí.
func (uc *ClientUseCase) Import(ctx context.Context, rows []dto.ClientRequest) (*dto.ImportResult, error) {
	res := &dto.ImportResult{}
	for i, in := range rows {
		in = trimClientRequest(in)
		if in == (dto.ClientRequest{}) {
			continue
		}
		rowNum := i + 2
		existing, err := uc.lookupCode(ctx, in.Code)
		if err != nil {
			return res, err
		}
		if existing != nil {
			_, err = uc.Update(ctx, existing.ID, in)
		} else {
			_, err = uc.Create(ctx, in)
		}
		switch {
		case err == nil && existing != nil:
			res.Updated++
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrDuplicate):
			res.Errors = append(res.Errors, dto.ImportRowError{Row: rowNum, Code: in.Code, Message: err.Error()})
		default:
			return res, err
		}
	}
	uc.log.Info().Int("created", res.Created).Int("updated", res.Updated).Int("errors", len(res.Errors)).Msg("padrón importado")
	return res, nil
}

func (uc *ClientUseCase) lookupCode(ctx context.Context, code string) (*entity.Client, error) {
	if code == "" {
		return nil, nil
	}
	return uc.repo.GetByCode(ctx, code)
}

func (uc *ClientUseCase) get(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func applyClientRequest(c *entity.Client, in dto.ClientRequest) {
	c.Name = in.Name
	c.Phone = in.Phone
	c.Email = in.Email
	c.Address = in.Address
	c.City = in.City
	c.Name2 = in.Name2
	c.Phone2 = in.Phone2
	c.Email2 = in.Email2
	c.Address2 = in.Address2
	c.City2 = in.City2
}

func trimClientRequest(in dto.ClientRequest) dto.ClientRequest {
	for _, p := range []*string{&in.Code, &in.Name, &in.Phone, &in.Email, &in.Address, &in.City,
		&in.Name2, &in.Phone2, &in.Email2, &in.Address2, &in.City2} {
		*p = strings.TrimSpace(*p)
	}
	return in
}
