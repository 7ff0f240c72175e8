package shop

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"moto-shop/internal/models"
)

const shardCount = 3

// ShardInfo describe un shard lógico: sus marcas y cuántos productos caen en él
type ShardInfo struct {
	Name         string   `json:"name"`
	Brands       []string `json:"brands"`
	ProductCount int      `json:"products"`
}

// ShardReport es el resultado de la simulación de sharding
type ShardReport struct {
	TotalProducts int         `json:"total_products"`
	TotalBrands   int         `json:"total_brands"`
	Shards        []ShardInfo `json:"shards"`
}

// ShardSimulation simula la distribución del catálogo en 3 shards lógicos
// usando brand como shard key. En producción mongos enrutaría las queries;
// aquí la regla es determinista: marcas distintas ordenadas
// lexicográficamente, la marca en posición i cae en el shard i mod 3.
func (s *Service) ShardSimulation(ctx context.Context) ShardReport {
	products, err := s.products.List(ctx, 0)
	if err != nil {
		s.log.Error("sharding: product scan failed", zap.Error(err))
		return ShardReport{Shards: []ShardInfo{}}
	}
	return assignShards(products)
}

func assignShards(products []models.Product) ShardReport {
	seen := map[string]bool{}
	brands := []string{}
	countByBrand := map[string]int{}
	for _, p := range products {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
		countByBrand[p.Brand]++
	}
	sort.Strings(brands)

	byShard := map[string]*ShardInfo{}
	names := []string{}
	for i, brand := range brands {
		name := fmt.Sprintf("Shard %d", i%shardCount+1)
		info, ok := byShard[name]
		if !ok {
			info = &ShardInfo{Name: name}
			byShard[name] = info
			names = append(names, name)
		}
		info.Brands = append(info.Brands, brand)
		info.ProductCount += countByBrand[brand]
	}
	sort.Strings(names)

	shards := []ShardInfo{}
	for _, name := range names {
		shards = append(shards, *byShard[name])
	}

	return ShardReport{
		TotalProducts: len(products),
		TotalBrands:   len(brands),
		Shards:        shards,
	}
}
