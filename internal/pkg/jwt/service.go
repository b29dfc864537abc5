package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSecret = errors.New("jwt signing secret is required")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

// Claims is the token payload. It is signed, not encrypted.
type Claims struct {
	UserID uuid.UUID `json:"id"`

	jwtlib.RegisteredClaims
}

type Service interface {
	IssueToken(userID uuid.UUID) (string, error)
	VerifyToken(tokenString string) (uuid.UUID, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	parser    *jwtlib.Parser

	now func() time.Time
}

// NewHMACService returns an HS256 signer. expiresIn of zero issues tokens
// without an exp claim.
func NewHMACService(secret string, expiresIn time.Duration) (*HMACService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if expiresIn < 0 {
		expiresIn = 0
	}
	s := &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
	s.parser = jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithStrictDecoding(),
		jwtlib.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s, nil
}

func (s *HMACService) IssueToken(userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt: jwtlib.NewNumericDate(now),
			Subject:  userID.String(),
		},
	}
	if s.expiresIn > 0 {
		c.ExpiresAt = jwtlib.NewNumericDate(now.Add(s.expiresIn))
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

// VerifyToken returns the user id carried by tokenString. Every failure is
// reported as ErrTokenInvalid or ErrTokenExpired; library errors are dropped.
func (s *HMACService) VerifyToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, ErrTokenInvalid
	}

	var c Claims
	tok, err := s.parser.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return uuid.Nil, ErrTokenInvalid
	}
	if c.UserID == uuid.Nil {
		return uuid.Nil, ErrTokenInvalid
	}
	if c.Subject != "" && c.Subject != c.UserID.String() {
		return uuid.Nil, ErrTokenInvalid
	}

	return c.UserID, nil
}
