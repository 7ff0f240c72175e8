package shop

import (
	"context"
	"math"

	"go.uber.org/zap"

	"moto-shop/internal/models"
)

const (
	productListLimit = 50
	orderListLimit   = 10
)

// DashboardStats son los totales de la cabecera del panel. Los agregados se
// calculan en el servidor de base de datos con pipelines, no en memoria.
type DashboardStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgPrice      float64 `json:"avg_price"`
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	revenue, err := s.orders.TotalRevenue(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	avgPrice, err := s.products.AveragePrice(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	return DashboardStats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalRevenue:  revenue,
		AvgPrice:      math.Round(avgPrice),
	}, nil
}

// ListProducts devuelve el catálogo limitado a 50 entradas; degrada a lista
// vacía si el store falla.
func (s *Service) ListProducts(ctx context.Context) []models.Product {
	products, err := s.products.List(ctx, productListLimit)
	if err != nil {
		s.log.Error("list products: scan failed", zap.Error(err))
		return []models.Product{}
	}
	return products
}

// ListOrders devuelve las 10 compras más recientes
func (s *Service) ListOrders(ctx context.Context) []models.Order {
	orders, err := s.orders.ListRecent(ctx, orderListLimit)
	if err != nil {
		s.log.Error("list orders: scan failed", zap.Error(err))
		return []models.Order{}
	}
	return orders
}
