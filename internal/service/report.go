package service

import (
	"context"

	"candy-shop/internal/domain"
	"candy-shop/internal/dto"
	"candy-shop/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	SalesSummary(ctx context.Context) (*dto.SalesReportResponse, error)
}

type reportServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) ReportService {
	return &reportServiceImpl{
		orderRepo: orderRepo,
	}
}

// SalesSummary aggregates all recorded orders: count, gross total, average.
func (s *reportServiceImpl) SalesSummary(ctx context.Context) (*dto.SalesReportResponse, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	domainOrders := make([]*domain.Order, len(orders))
	for i, order := range orders {
		domainOrders[i] = &domain.Order{ID: order.OrderID, Total: order.TotalAmount}
	}

	total := decimal.Zero
	for _, order := range domainOrders {
		total = total.Add(order.Total)
	}
	avg := decimal.Zero
	if len(orders) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(orders))))
	}

	return &dto.SalesReportResponse{
		Orders:     len(orders),
		TotalSales: total.Round(2),
		AvgOrder:   avg.Round(2),
		Summary:    domain.SalesReport(domainOrders),
	}, nil
}
