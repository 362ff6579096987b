// Package users administra cuentas y roles, y expone la actividad de sesión.
package users

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jlvilasoler/hashrate-app/internal/application/auth"
	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 100

	DefaultActivityLimit = 100
	MaxActivityLimit     = 500
)

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	ID   string
	Role string
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo         repository.UserRepository
	activityRepo repository.ActivityRepository
	log          *logger.Logger
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, activityRepo repository.ActivityRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, activityRepo: activityRepo, log: log.Component("users")}
}

// List devuelve todos los usuarios sin hash.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Create da de alta un usuario. Sin username se usa el email.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.NewValidationError("role", "rol inválido")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		username = email
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, Email: email, PasswordHash: string(hash), Role: in.Role}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", u.Username).Str("role", u.Role).Msg("usuario creado")
	return auth.ToUserResponse(u), nil
}

// Update aplica cambios parciales. Un administrador no puede quitarse su propio rol de administrador.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != "" {
		email, err := normalizeEmail(in.Email)
		if err != nil {
			return nil, err
		}
		u.Email = email
	}
	if in.Password != "" {
		if err := validatePassword(in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.Role != "" {
		if !entity.ValidRole(in.Role) {
			return nil, domain.NewValidationError("role", "rol inválido")
		}
		if actor.ID == u.ID && entity.IsAdminRole(u.Role) && !entity.IsAdminRole(in.Role) {
			return nil, domain.NewValidationError("role", "no puede quitarse su propio rol de administrador")
		}
		u.Role = in.Role
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Delete borra un usuario. Nadie se borra a sí mismo y solo admin_a borra cuentas de administrador.
func (uc *UserUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if actor.ID == id {
		return domain.NewValidationError("id", "no puede eliminarse a sí mismo")
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	if entity.IsAdminRole(u.Role) && actor.Role != entity.RoleAdminA {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user", u.Username).Str("by", actor.ID).Msg("usuario eliminado")
	return nil
}

// Activity últimos eventos de sesión, más recientes primero.
func (uc *UserUseCase) Activity(ctx context.Context, limit int) ([]*dto.ActivityResponse, error) {
	events, err := uc.activityRepo.List(ctx, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ActivityResponse, 0, len(events))
	for _, a := range events {
		out = append(out, &dto.ActivityResponse{
			ID:              a.ID,
			UserID:          a.UserID,
			Username:        a.Username,
			Event:           a.Event,
			IP:              a.IP,
			UserAgent:       a.UserAgent,
			DurationSeconds: a.DurationSeconds,
			CreatedAt:       a.CreatedAt,
		})
	}
	return out, nil
}

// ClampLimit lleva limit a [1, MaxActivityLimit]; 0 o negativo usa el valor por defecto.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultActivityLimit
	case limit > MaxActivityLimit:
		return MaxActivityLimit
	}
	return limit
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || len(email) > 200 {
		return "", domain.NewValidationError("email", "email inválido")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewValidationError("email", "email inválido")
	}
	return email, nil
}

func validatePassword(p string) error {
	if len(p) < minPasswordLen || len(p) > maxPasswordLen {
		return domain.NewValidationError("password", "la contraseña debe tener entre 6 y 100 caracteres")
	}
	return nil
}
