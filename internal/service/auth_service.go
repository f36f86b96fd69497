package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"voucherhub/internal/repository"
	"voucherhub/pkg/crypto"
	jwtpkg "voucherhub/pkg/jwt"
)

// TokenSet is returned after a successful login.
type TokenSet struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	Role        jwtpkg.Role `json:"role"`
	SubjectID   string      `json:"subject_id"`
	BranchID    string      `json:"branch_id,omitempty"`
}

type AuthService interface {
	AdminLogin(ctx context.Context, email, passcode string) (*TokenSet, error)
	AttendantLogin(ctx context.Context, email, passcode string) (*TokenSet, error)
	Logout(ctx context.Context, claims *jwtpkg.Claims) error
}

type authService struct {
	adminRepo     repository.AdminRepository
	attendantRepo repository.AttendantRepository
	revocations   repository.RevocationStore
	jwtManager    *jwtpkg.Manager
	logger        *zap.Logger
}

func NewAuthService(
	adminRepo repository.AdminRepository,
	attendantRepo repository.AttendantRepository,
	revocations repository.RevocationStore,
	jwtManager *jwtpkg.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		adminRepo:     adminRepo,
		attendantRepo: attendantRepo,
		revocations:   revocations,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

func (s *authService) AdminLogin(ctx context.Context, email, passcode string) (*TokenSet, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageFailure("load admin", err)
	}
	if !crypto.CheckPasscode(passcode, admin.PasscodeHash) {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwtManager.GenerateAdminToken(admin.ID, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("sign admin token: %w", err)
	}
	s.logger.Info("admin logged in", zap.String("admin_id", admin.ID.String()))
	return s.tokenSet(token, claims), nil
}

func (s *authService) AttendantLogin(ctx context.Context, email, passcode string) (*TokenSet, error) {
	attendant, err := s.attendantRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageFailure("load attendant", err)
	}
	if !crypto.CheckPasscode(passcode, attendant.PasscodeHash) {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwtManager.GenerateAttendantToken(attendant.ID, attendant.Email, attendant.BranchID)
	if err != nil {
		return nil, fmt.Errorf("sign attendant token: %w", err)
	}
	s.logger.Info("attendant logged in",
		zap.String("attendant_id", attendant.ID.String()),
		zap.String("branch_id", attendant.BranchID.String()))
	return s.tokenSet(token, claims), nil
}

// Logout revokes the token's JTI until the token expires.
func (s *authService) Logout(ctx context.Context, claims *jwtpkg.Claims) error {
	if claims == nil || claims.ID == "" {
		return fmt.Errorf("%w: token has no id", ErrInvalidInput)
	}
	ttl := claims.RemainingTTL(time.Now())
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return storageFailure("revoke token", err)
	}
	return nil
}

func (s *authService) tokenSet(token string, claims *jwtpkg.Claims) *TokenSet {
	return &TokenSet{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.AccessTokenTTL().Seconds()),
		Role:        claims.Role,
		SubjectID:   claims.Subject,
		BranchID:    claims.BranchID,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ensure authService implements AuthService
var _ AuthService = (*authService)(nil)
