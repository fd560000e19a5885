package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gamermatch/gamermatch-backend/internal/domain"
	"github.com/gamermatch/gamermatch-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UseCase struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	accessSecret  []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	accessSecret string,
	accessExpiry, refreshExpiry time.Duration,
) *UseCase {
	return &UseCase{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		accessSecret:  []byte(accessSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// SignupRequest creates an account. The profile comes later, through
// onboarding.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries both tokens. The refresh token is persisted
// server-side as a session.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         *domain.User `json:"user"`
}

func (uc *UseCase) Signup(ctx context.Context, req *SignupRequest, userAgent, ipAddress string) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: string(hash)}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issueTokens(ctx, user, userAgent, ipAddress)
}

func (uc *UseCase) Login(ctx context.Context, req *LoginRequest, userAgent, ipAddress string) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issueTokens(ctx, user, userAgent, ipAddress)
}

// Refresh rotates the session: the presented refresh token is consumed
// and a new pair is issued.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*AuthResponse, error) {
	session, err := uc.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = uc.sessionRepo.Delete(ctx, session.ID)
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessionRepo.Delete(ctx, session.ID); err != nil {
		return nil, err
	}
	return uc.issueTokens(ctx, user, userAgent, ipAddress)
}

func (uc *UseCase) Logout(ctx context.Context, refreshToken string) error {
	session, err := uc.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return uc.sessionRepo.Delete(ctx, session.ID)
}

func (uc *UseCase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// ValidateAccessToken verifies the JWT and returns the subject user id.
func (uc *UseCase) ValidateAccessToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return uc.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

func (uc *UseCase) issueTokens(ctx context.Context, user *domain.User, userAgent, ipAddress string) (*AuthResponse, error) {
	expiresAt := time.Now().Add(uc.accessExpiry)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken := uuid.NewString() + uuid.NewString()
	session := &domain.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    userAgent,
		IPAddress:    ipAddress,
		ExpiresAt:    time.Now().Add(uc.refreshExpiry),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}
