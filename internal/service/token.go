package service

import (
	"errors"
	"fmt"
	"time"

	"quiz-master/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "quiz-master"

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrSessionTokenExpired = errors.New("session token has expired")
)

// SessionClaims binds a bearer token to one session. The session id is the subject.
type SessionClaims struct {
	QuizID string `json:"quiz_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session ownership tokens.
type TokenIssuer interface {
	Issue(sessionID, quizID string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*SessionClaims, error)
}

type hmacTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an HS256 issuer. An empty secret is rejected.
func NewTokenIssuer(secret string, ttl time.Duration) (TokenIssuer, error) {
	if secret == "" {
		return nil, domain.NewInvalidInputError("session token secret is not configured")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &hmacTokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (t *hmacTokenIssuer) Issue(sessionID, quizID string) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := SessionClaims{
		QuizID: quizID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, domain.NewInternalError("failed to sign session token", err)
	}
	return signed, expiresAt, nil
}

func (t *hmacTokenIssuer) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}
