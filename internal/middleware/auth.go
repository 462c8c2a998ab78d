package middleware

import (
	"net/http"
	"strings"

	"candy-shop/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth validates the bearer token and stores the account id and role on
// the request context under "user_id" and "user_role".
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			role, _ := claims["role"].(string)
			c.Set("user_id", subject)
			c.Set("user_role", role)
			return next(c)
		}
	}
}

// StaffOnly rejects requests whose token does not carry the staff role.
// It must run after JWTAuth.
func StaffOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get("user_role").(string); role != domain.RoleStaff {
				return echo.NewHTTPError(http.StatusForbidden, "staff only")
			}
			return next(c)
		}
	}
}
