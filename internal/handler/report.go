package handler

import (
	"net/http"

	"candy-shop/internal/service"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) SalesSummary(c echo.Context) error {
	ctx := c.Request().Context()

	report, err := h.reportService.SalesSummary(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, report)
}
