package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autopublish-api/internal/application/dto"
	"github.com/jhoicas/autopublish-api/internal/application/validation"
	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
	"github.com/jhoicas/autopublish-api/internal/domain/repository"
	"github.com/jhoicas/autopublish-api/pkg/jwt"
)

// DefaultHashCost rondas de bcrypt para contraseñas.
const DefaultHashCost = 12

// Config configuración para generación de tokens y hash de contraseñas.
type Config struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	HashCost   int // 0 = DefaultHashCost
}

// TokenDenyList guarda los jti de tokens revocados hasta que expiran.
type TokenDenyList interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y resolución de identidad.
type AuthUseCase struct {
	userRepo repository.UserRepository
	denyList TokenDenyList
	cfg      Config
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, denyList TokenDenyList, cfg Config) *AuthUseCase {
	if cfg.HashCost == 0 {
		cfg.HashCost = DefaultHashCost
	}
	return &AuthUseCase{userRepo: userRepo, denyList: denyList, cfg: cfg}
}

// Register crea un usuario con el bono de bienvenida. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cfg.HashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		TokenBalance: entity.WelcomeBonus,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// La restricción UNIQUE de email resuelve registros concurrentes.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Message: "usuario creado correctamente",
		User:    toUserResponse(user),
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Role, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(time.Duration(uc.cfg.ExpMinutes) * time.Minute),
		User:      toUserResponse(user),
	}, nil
}

// ResolveIdentity convierte un bearer token en la identidad del usuario.
// Token inválido, expirado, revocado o de un usuario inexistente: ErrUnauthorized.
func (uc *AuthUseCase) ResolveIdentity(ctx context.Context, token string) (*entity.Identity, error) {
	claims, err := jwt.Parse(uc.cfg.Secret, uc.cfg.Issuer, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.ID != "" {
		revoked, err := uc.denyList.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("consultar tokens revocados: %w", err)
		}
		if revoked {
			return nil, domain.ErrUnauthorized
		}
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	id := &entity.Identity{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		TokenBalance: user.TokenBalance,
		TokenID:      claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Logout revoca el token de la identidad hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, id *entity.Identity) error {
	if id == nil || id.UserID == "" {
		return domain.ErrUnauthorized
	}
	if id.TokenID == "" {
		return nil
	}
	ttl := time.Until(id.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return uc.denyList.Revoke(ctx, id.TokenID, ttl)
}

// Me devuelve el perfil actualizado del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, id *entity.Identity) (*dto.MeResponse, error) {
	if id == nil || id.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.MeResponse{User: toUserResponse(user)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		TokenBalance: u.TokenBalance,
		CreatedAt:    u.CreatedAt,
	}
}
