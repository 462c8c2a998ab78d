package handler

import (
	"errors"
	"net/http"

	"candy-shop/internal/domain"
	"candy-shop/internal/repository"
	"candy-shop/internal/service"

	"github.com/labstack/echo/v4"
)

// toHTTPError maps domain and service errors onto HTTP status codes; anything
// unrecognized falls through to echo's default 500 handling.
func toHTTPError(err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrNoSession):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrAccountNotFound),
		errors.Is(err, repository.ErrCandyNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return err
	}
}

func userIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing user id")
	}
	return userID, nil
}
