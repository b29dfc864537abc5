package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"skill-directory/internal/domain"
	"skill-directory/internal/domain/user"
	"skill-directory/internal/observability"
	"skill-directory/internal/pkg/jwt"
	ucauth "skill-directory/internal/usecase/auth"
)

var ErrUnauthorized = domain.ErrUnauthorized

// Caller is the identity resolved from a request's authorization header.
type Caller = user.Public

type AuthUsecase interface {
	Register(ctx context.Context, username, password string) (user.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	IdentifyCaller(ctx context.Context, rawAuthorization string) (Caller, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	logger  *log.Logger
}

func NewAuthUsecase(authSvc *ucauth.Service, users user.Repository, jwtSvc jwt.Service, logger *log.Logger) *Auth {
	if logger == nil {
		logger = log.Default()
	}
	return &Auth{authSvc: authSvc, users: users, jwt: jwtSvc, logger: logger}
}

func (u *Auth) Register(ctx context.Context, username, password string) (user.User, error) {
	return u.authSvc.Register(ctx, username, password)
}

// Login verifies the credentials and issues a token. Every failure is
// ErrUnauthorized.
func (u *Auth) Login(ctx context.Context, username, password string) (string, error) {
	id, err := u.authSvc.VerifyCredentials(ctx, username, password)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			u.logger.Printf("[Auth] login lookup failed: %v", err)
			observability.RecordLogin(observability.ResultError)
		} else {
			observability.RecordLogin(observability.ResultDenied)
		}
		return "", ErrUnauthorized
	}

	token, err := u.jwt.IssueToken(id)
	if err != nil {
		u.logger.Printf("[Auth] issue token failed | user_id=%s err=%v", id, err)
		observability.RecordLogin(observability.ResultError)
		return "", ErrUnauthorized
	}

	observability.RecordLogin(observability.ResultSuccess)
	return token, nil
}

// IdentifyCaller resolves the user behind an authorization header value. The
// value is either the raw token or "Bearer <token>". The user is re-read from
// storage so tokens of removed accounts stop working. A storage failure is
// ErrInternal, not ErrUnauthorized.
func (u *Auth) IdentifyCaller(ctx context.Context, rawAuthorization string) (Caller, error) {
	token, ok := TokenFromAuthorization(rawAuthorization)
	if !ok {
		observability.RecordCallerCheck(observability.ResultDenied)
		return Caller{}, ErrUnauthorized
	}

	id, err := u.jwt.VerifyToken(token)
	if err != nil {
		observability.RecordCallerCheck(observability.ResultDenied)
		return Caller{}, ErrUnauthorized
	}

	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			u.logger.Printf("[Auth] caller lookup failed | user_id=%s err=%v", id, err)
			observability.RecordCallerCheck(observability.ResultError)
			return Caller{}, fmt.Errorf("%w: lookup caller: %v", domain.ErrInternal, err)
		}
		observability.RecordCallerCheck(observability.ResultDenied)
		return Caller{}, ErrUnauthorized
	}

	observability.RecordCallerCheck(observability.ResultSuccess)
	return usr.Public(), nil
}

// TokenFromAuthorization strips an optional "Bearer " scheme from an
// authorization header value.
func TokenFromAuthorization(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if scheme, rest, found := strings.Cut(raw, " "); found {
		if !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		raw = strings.TrimSpace(rest)
	}
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", false
	}
	return raw, true
}
