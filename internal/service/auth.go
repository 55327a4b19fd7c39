package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/identity"
	"bridgeseed-backend/internal/logger"
	"bridgeseed-backend/internal/repository"
	"bridgeseed-backend/internal/security"

	"github.com/google/uuid"
)

type authService struct {
	store          repository.Store
	verifier       identity.Verifier
	tokenManager   security.TokenManager
	allowedDomains []string
}

func NewAuthService(store repository.Store, verifier identity.Verifier, tokenManager security.TokenManager, allowedDomains []string) AuthService {
	return &authService{
		store:          store,
		verifier:       verifier,
		tokenManager:   tokenManager,
		allowedDomains: allowedDomains,
	}
}

// ExchangeIDToken verifies a provider ID token and issues API tokens.
// A profile is created on first contact; accounts outside the allowed
// email domains are turned away at that point.
func (s *authService) ExchangeIDToken(ctx context.Context, idToken string) (*domain.User, string, string, error) {
	if s.verifier == nil {
		return nil, "", "", &domain.ValidationError{Field: "id_token", Reason: "provider sign-in is not enabled"}
	}

	ident, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.store.Users().GetByID(ctx, ident.UID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.checkEmailDomain(ident.Email); err != nil {
			return nil, "", "", err
		}
		user = domain.NewProfile(ident.UID, ident.Email, ident.DisplayName)
		if err := s.store.Users().Create(ctx, user); err != nil {
			return nil, "", "", err
		}
		logger.Info("Created profile on first sign-in", "user_id", user.ID)
	} else if err != nil {
		return nil, "", "", err
	}

	return s.issueTokens(user)
}

func (s *authService) RegisterLocal(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &domain.ValidationError{Field: "email", Reason: "a valid email address is required"}
	}
	if err := s.checkEmailDomain(email); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if displayName == "" {
		return nil, &domain.ValidationError{Field: "display_name", Reason: "is required"}
	}

	if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
		return nil, &domain.ValidationError{Field: "email", Reason: "already registered"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewProfile(uuid.New().String(), email, displayName)
	user.PasswordHash = hash
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Registered local account", "user_id", user.ID)
	return user, nil
}

func (s *authService) LoginLocal(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.Users().GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", &domain.ValidationError{Field: "credentials", Reason: "invalid email or password"}
	} else if err != nil {
		return nil, "", "", err
	}
	if user.PasswordHash == "" || !security.CheckPassword(user.PasswordHash, password) {
		return nil, "", "", &domain.ValidationError{Field: "credentials", Reason: "invalid email or password"}
	}
	return s.issueTokens(user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	// The role may have changed since the refresh token was issued,
	// so reload the profile rather than trusting the claims.
	user, err := s.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}

	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *authService) issueTokens(user *domain.User) (*domain.User, string, string, error) {
	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return user, access, refresh, nil
}

func (s *authService) checkEmailDomain(email string) error {
	if len(s.allowedDomains) == 0 {
		return nil
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return &domain.ValidationError{Field: "email", Reason: "a valid email address is required"}
	}
	emailDomain := strings.ToLower(email[at+1:])
	for _, allowed := range s.allowedDomains {
		if emailDomain == strings.ToLower(allowed) {
			return nil
		}
	}
	return &domain.ValidationError{Field: "email", Reason: "domain " + emailDomain + " is not part of the campus community"}
}
