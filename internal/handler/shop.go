package handler

import (
	"net/http"

	"candy-shop/internal/dto"
	"candy-shop/internal/service"

	"github.com/labstack/echo/v4"
)

type ShopHandler struct {
	shopService service.ShopService
}

func NewShopHandler(shopService service.ShopService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
	}
}

func (h *ShopHandler) ListCandies(c echo.Context) error {
	ctx := c.Request().Context()

	candies, err := h.shopService.ListCandies(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, candies)
}

func (h *ShopHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.shopService.AddToCart(ctx, userID, req.SKU, req.Quantity); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ShopHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	cart, err := h.shopService.GetCart(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, cart)
}

// Checkout returns 200 with the outcome in the body even when the payment was
// declined; only an empty cart or a malformed request is an error.
func (h *ShopHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.shopService.Checkout(ctx, userID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *ShopHandler) Refund(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.RefundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.shopService.Refund(ctx, userID, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ShopHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	orders, err := h.shopService.ListOrders(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *ShopHandler) UpdateInventory(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := userIDFromContext(c); err != nil {
		return err
	}

	sku := c.Param("sku")

	var req dto.UpdateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.shopService.UpdateInventory(ctx, sku, req.Quantity); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
