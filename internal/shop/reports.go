package shop

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// BrandStats son las estadísticas agregadas de una marca
type BrandStats struct {
	Brand      string  `json:"brand"`
	Count      int     `json:"count"`
	AvgPrice   float64 `json:"avg_price"`
	TotalStock int     `json:"total_stock"`
	PriceRange string  `json:"price_range"`
}

// MonthlyStats agrupa las compras por (año, mes) de su fecha
type MonthlyStats struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	OrderCount int     `json:"orders_count"`
	Revenue    float64 `json:"revenue"`
}

// TopSeller es un producto con su número de ventas y facturación acumulada
type TopSeller struct {
	MotoID    string  `json:"moto_id"`
	TimesSold int     `json:"times_sold"`
	Revenue   float64 `json:"total_revenue"`
}

// BrandStatistics agrupa el catálogo por marca y calcula recuento, precio
// medio (redondeado a entero), stock total y rango de precios. Equivalente
// SQL: SELECT brand, COUNT(*), AVG(price), SUM(stock) GROUP BY brand
// ORDER BY COUNT(*) DESC. Proyección de sólo lectura: con catálogo vacío
// devuelve lista vacía, nunca error.
func (s *Service) BrandStatistics(ctx context.Context) []BrandStats {
	products, err := s.products.List(ctx, 0)
	if err != nil {
		s.log.Error("reports: product scan failed", zap.Error(err))
		return []BrandStats{}
	}

	order := []string{}
	prices := map[string][]float64{}
	stock := map[string]int{}
	for _, p := range products {
		if _, seen := prices[p.Brand]; !seen {
			order = append(order, p.Brand)
		}
		prices[p.Brand] = append(prices[p.Brand], p.Price)
		stock[p.Brand] += p.Stock
	}

	results := []BrandStats{}
	for _, brand := range order {
		group := prices[brand]
		avg, _ := stats.Mean(group)
		min, _ := stats.Min(group)
		max, _ := stats.Max(group)

		results = append(results, BrandStats{
			Brand:      brand,
			Count:      len(group),
			AvgPrice:   math.Round(avg),
			TotalStock: stock[brand],
			PriceRange: fmt.Sprintf("%.0f - %.0f €", min, max),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})
	return results
}

// OrderTimeStatistics agrupa las compras por año y mes, más recientes primero
func (s *Service) OrderTimeStatistics(ctx context.Context) []MonthlyStats {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		s.log.Error("reports: order scan failed", zap.Error(err))
		return []MonthlyStats{}
	}

	type bucket struct{ year, month int }
	order := []bucket{}
	grouped := map[bucket]*MonthlyStats{}
	for _, o := range orders {
		b := bucket{o.Date.Year(), int(o.Date.Month())}
		entry, seen := grouped[b]
		if !seen {
			entry = &MonthlyStats{Year: b.year, Month: b.month}
			grouped[b] = entry
			order = append(order, b)
		}
		entry.OrderCount++
		entry.Revenue += o.PriceSnapshot
	}

	results := []MonthlyStats{}
	for _, b := range order {
		results = append(results, *grouped[b])
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Year != results[j].Year {
			return results[i].Year > results[j].Year
		}
		return results[i].Month > results[j].Month
	})
	return results
}

// TopSellers devuelve los 5 productos más vendidos por número de compras
func (s *Service) TopSellers(ctx context.Context) []TopSeller {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		s.log.Error("reports: order scan failed", zap.Error(err))
		return []TopSeller{}
	}

	order := []string{}
	grouped := map[string]*TopSeller{}
	for _, o := range orders {
		entry, seen := grouped[o.MotoID]
		if !seen {
			entry = &TopSeller{MotoID: o.MotoID}
			grouped[o.MotoID] = entry
			order = append(order, o.MotoID)
		}
		entry.TimesSold++
		entry.Revenue += o.PriceSnapshot
	}

	results := []TopSeller{}
	for _, id := range order {
		results = append(results, *grouped[id])
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TimesSold > results[j].TimesSold
	})

	if len(results) > topResults {
		results = results[:topResults]
	}
	return results
}
