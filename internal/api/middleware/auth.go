package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmate/taskmate-api/internal/core/domain"
	"github.com/taskmate/taskmate-api/internal/core/ports"
)

// Context keys set by Authenticate.
const (
	PrincipalKey   = "principal"
	TokenIDKey     = "token_id"
	TokenExpiryKey = "token_expires_at"
)

// Authenticate resolves the request's principal from a bearer token.
// Requests without an Authorization header continue as anonymous; a header
// that is present but malformed, invalid, expired or revoked is rejected.
func Authenticate(jwtSecret string, revocations ports.TokenRevocationStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set(PrincipalKey, domain.Anonymous())
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims.GetSubject()
			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil || userID <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			jti, _ := claims["jti"].(string)
			if jti != "" {
				revoked, err := revocations.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					log.Error().Err(err).Msg("token revocation check failed")
					return echo.NewHTTPError(http.StatusServiceUnavailable, "authentication temporarily unavailable")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			var expiresAt time.Time
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				expiresAt = exp.Time
			}

			username, _ := claims["username"].(string)
			c.Set(PrincipalKey, domain.AuthenticatedAs(userID, username))
			c.Set(TokenIDKey, jti)
			c.Set(TokenExpiryKey, expiresAt)

			return next(c)
		}
	}
}

// PrincipalFrom returns the principal Authenticate stored on the context,
// or anonymous when the middleware did not run.
func PrincipalFrom(c echo.Context) domain.Principal {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	if !ok {
		return domain.Anonymous()
	}
	return p
}
