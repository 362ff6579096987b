package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
	"github.com/jlvilasoler/hashrate-app/pkg/jwt"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// DefaultUser usuario que debe existir siempre (se crea al arrancar si falta).
type DefaultUser struct {
	Email    string
	Password string
	Role     string
}

// AuthUseCase casos de uso de autenticación: login, sesión actual y logout con registro de actividad.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	jwtCfg       JWTConfig
	log          *logger.Logger
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		jwtCfg:       jwtCfg,
		log:          log.Component("auth"),
		now:          time.Now,
	}
}

// Login verifica usuario (username o email) y password, genera JWT y registra el ingreso.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, session dto.SessionInfo) (*dto.LoginResponse, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return nil, domain.NewValidationError("login", "usuario y contraseña requeridos")
	}
	user, err := uc.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	// La actividad es informativa: un fallo al registrarla no impide el login.
	if err := uc.activityRepo.Record(ctx, &entity.UserActivity{
		UserID:    user.ID,
		Username:  user.Username,
		Event:     entity.ActivityLogin,
		IP:        session.IP,
		UserAgent: session.UserAgent,
		CreatedAt: uc.now(),
	}); err != nil {
		uc.log.Error().Err(err).Str("user", user.Username).Msg("registrar login")
	}
	uc.log.Info().Str("user", user.Username).Str("ip", session.IP).Msg("login")

	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// Me devuelve el usuario del token.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// Logout registra la salida con la duración desde el último login.
func (uc *AuthUseCase) Logout(ctx context.Context, userID string, session dto.SessionInfo) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	now := uc.now()
	ev := &entity.UserActivity{
		UserID:    user.ID,
		Username:  user.Username,
		Event:     entity.ActivityLogout,
		IP:        session.IP,
		UserAgent: session.UserAgent,
		CreatedAt: now,
	}
	last, err := uc.activityRepo.LastLogin(ctx, user.ID)
	if err != nil {
		return err
	}
	if last != nil {
		secs := int64(now.Sub(last.CreatedAt).Round(time.Second) / time.Second)
		ev.DurationSeconds = &secs
	}
	if err := uc.activityRepo.Record(ctx, ev); err != nil {
		return err
	}
	uc.log.Info().Str("user", user.Username).Msg("logout")
	return nil
}

// EnsureDefaultUsers crea los usuarios por defecto que no existan. No modifica los existentes.
func (uc *AuthUseCase) EnsureDefaultUsers(ctx context.Context, users []DefaultUser) error {
	for _, du := range users {
		email := strings.ToLower(strings.TrimSpace(du.Email))
		existing, err := uc.userRepo.GetByLogin(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(du.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := uc.userRepo.Create(ctx, &entity.User{
			Username:     email,
			Email:        email,
			PasswordHash: string(hash),
			Role:         du.Role,
		}); err != nil {
			return err
		}
		uc.log.Info().Str("user", email).Str("role", du.Role).Msg("usuario por defecto creado")
	}
	return nil
}

// DefaultUsersFrom arma la lista de usuarios por defecto: el primero es admin_a, el resto admin_b.
func DefaultUsersFrom(emails []string, password string) []DefaultUser {
	out := make([]DefaultUser, 0, len(emails))
	for i, e := range emails {
		role := entity.RoleAdminB
		if i == 0 {
			role = entity.RoleAdminA
		}
		out = append(out, DefaultUser{Email: e, Password: password, Role: role})
	}
	return out
}

// ToUserResponse mapea sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
