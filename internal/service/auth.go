package service

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"lempek/internal/auth"
	"lempek/internal/domain"
	"lempek/internal/domain/models"
	"lempek/internal/domain/repositories"
	"lempek/internal/domain/services"
)

// authService implements the AuthService interface
type authService struct {
	users  repositories.UserRepository
	tokens repositories.TokenRepository
	perms  repositories.PermissionRepository
	txm    repositories.TransactionManager
	signer *auth.Tokens
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	tokens repositories.TokenRepository,
	perms repositories.PermissionRepository,
	txm repositories.TransactionManager,
	signer *auth.Tokens,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		perms:  perms,
		txm:    txm,
		signer: signer,
		logger: logger,
	}
}

// Register creates the account together with its root-namespace grant and
// opens a first session.
func (s *authService) Register(ctx context.Context, req *services.RegisterRequest, userAgent *string) (*models.Principal, *services.TokenPair, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Login, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 128)),
	); err != nil {
		return nil, nil, err
	}

	username := req.Username
	if username == "" {
		username = req.Login
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Login:    req.Login,
		Username: username,
		Password: hash,
	}

	err = s.txm.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}

		grant := &models.Permission{
			UserID:   user.ID,
			FolderID: nil, // root namespace
			Read:     true,
			Modify:   true,
			Edit:     true,
		}
		return s.perms.Grant(txCtx, grant)
	})
	if err != nil {
		return nil, nil, err
	}

	return s.openSession(ctx, user, userAgent)
}

// Login verifies credentials and opens a session. Unknown logins and wrong
// passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *services.LoginRequest, userAgent *string) (*models.Principal, *services.TokenPair, error) {
	user, err := s.users.GetByLogin(ctx, req.Login)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}

	if !auth.VerifyPassword(user.Password, req.Password) {
		return nil, nil, domain.ErrUnauthorized
	}

	return s.openSession(ctx, user, userAgent)
}

// Refresh validates a refresh token against its session row and issues a
// fresh access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.Principal, string, error) {
	claims, err := s.signer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	session, err := s.tokens.Find(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		return nil, "", err
	}
	if session == nil {
		return nil, "", domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	principal := principalOf(user)
	access, err := s.signer.SignAccess(principal)
	if err != nil {
		return nil, "", err
	}

	return principal, access, nil
}

// Logout revokes the session behind the refresh token. Invalid tokens are
// ignored; logout never fails visibly.
func (s *authService) Logout(ctx context.Context, refreshToken string) {
	claims, err := s.signer.VerifyRefresh(refreshToken)
	if err != nil {
		return
	}

	if err := s.tokens.DeleteByToken(ctx, claims.UserID, claims.TokenID); err != nil {
		s.logger.Error("failed to revoke session", "error", err)
	}
}

// Sessions lists the principal's live sessions
func (s *authService) Sessions(ctx context.Context, principal *models.Principal) ([]models.UserToken, error) {
	return s.tokens.ListByUser(ctx, principal.UserID)
}

// RevokeSession removes one of the principal's sessions
func (s *authService) RevokeSession(ctx context.Context, principal *models.Principal, id string) error {
	return s.tokens.Delete(ctx, principal.UserID, id)
}

// ChangePassword verifies the current password before storing a new hash
func (s *authService) ChangePassword(ctx context.Context, principal *models.Principal, req *services.ChangePasswordRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.NewPassword, validation.Required, validation.Length(8, 128)),
	); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(user.Password, req.CurrentPassword) {
		return domain.ErrUnauthorized
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// openSession creates a session row and signs the cookie token pair
func (s *authService) openSession(ctx context.Context, user *models.User, userAgent *string) (*models.Principal, *services.TokenPair, error) {
	tokenValue := uuid.NewString()
	expiresAt := time.Now().Add(s.signer.RefreshTTL())

	session := &models.UserToken{
		UserID:       user.ID,
		RefreshToken: tokenValue,
		UserAgent:    userAgent,
		ExpiresAt:    expiresAt,
	}
	if err := s.tokens.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	principal := principalOf(user)

	access, err := s.signer.SignAccess(principal)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.signer.SignRefresh(user.ID, tokenValue, expiresAt)
	if err != nil {
		return nil, nil, err
	}

	return principal, &services.TokenPair{Access: access, Refresh: refresh}, nil
}

func principalOf(user *models.User) *models.Principal {
	return &models.Principal{
		UserID:   user.ID,
		Login:    user.Login,
		Username: user.Username,
		Admin:    user.Admin,
	}
}
