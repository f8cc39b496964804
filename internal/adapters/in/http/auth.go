package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"carrierlink/internal/core/domain/model/kernel"
	"carrierlink/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "carrierlink.actor"

var errEmptySecret = errors.New("token secret must not be empty")

// Claims carried by access tokens. Subject is the decimal user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for the profile and its expiry time.
func (t *TokenIssuer) Issue(profile user.PublicProfile) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	claims := Claims{
		Role: profile.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies the signature and expiry and returns the actor.
func (t *TokenIssuer) Parse(token string) (user.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return user.Actor{}, err
	}

	raw, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return user.Actor{}, fmt.Errorf("subject: %w", err)
	}
	id, err := kernel.NewUserID(raw)
	if err != nil {
		return user.Actor{}, err
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Actor{}, err
	}
	return user.NewActor(id, role)
}

// RequireActor rejects requests without a valid bearer token and stores the
// authenticated actor in the echo context.
func (t *TokenIssuer) RequireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			actor, err := t.Parse(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token").SetInternal(err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (user.Actor, error) {
	actor, ok := c.Get(actorContextKey).(user.Actor)
	if !ok {
		return user.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	return actor, nil
}
