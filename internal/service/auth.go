package service

import (
	"context"
	"strings"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type Session struct {
	UserID    uuid.UUID
	Role      Role
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users     repository.UserRepo
	hasher    PasswordHasher
	tokens    TokenProvider
	accessTTL time.Duration
	now       func() time.Time
	log       *zap.Logger
}

func NewAuthService(users repository.UserRepo, hasher PasswordHasher, tokens TokenProvider, accessTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	// одинаковый ответ для «нет пользователя» и «неверный пароль»
	if user == nil || !s.hasher.Compare(user.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.SignAccess(ctx, user.ID, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchLastSignedIn(ctx, user.ID, s.now()); err != nil {
		s.log.Warn("touch last_signed_in failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return &Session{UserID: user.ID, Role: user.Role, Token: token, ExpiresAt: exp}, nil
}

// EnsureAdmin создаёт администратора, если пользователя с таким email ещё нет.
// Возвращает true, если запись была создана.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, newFieldError("email", "required", "admin email and password are required")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	now := s.now()
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return false, err
	}
	s.log.Info("admin user created", zap.String("email", email))
	return true, nil
}

// Authenticate проверяет bearer-токен и возвращает claims
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	c, err := s.tokens.ParseAndValidateAccess(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return c, nil
}
