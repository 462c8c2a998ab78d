package handler

import (
	"net/http"

	"candy-shop/internal/dto"
	"candy-shop/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	account, err := h.userService.Register(ctx, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, account)
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	token, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.userService.ChangePassword(ctx, userID, req.NewPassword); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
