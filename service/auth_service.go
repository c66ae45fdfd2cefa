package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"store-service/model"
	"store-service/repository"
)

type AuthService struct {
	users  repository.UserRepository
	secret string
	logger *zap.Logger
}

func NewAuthService(users repository.UserRepository, secret string, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, secret: secret, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, password, name, role string) (*model.User, error) {
	if role == "" {
		role = "user"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// Login checks the credentials and mints a signed token carrying the user's
// id, email and role for 72 hours.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Hour * 72).Unix(),
	})
	return token.SignedString([]byte(s.secret))
}

func (s *AuthService) Me(ctx context.Context, id uint) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
