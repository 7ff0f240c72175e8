package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moto-shop/internal/models"
)

func brandProduct(motoID, brand string) models.Product {
	return models.Product{MotoID: motoID, Brand: brand}
}

// Regla determinista: marcas ordenadas lexicográficamente, posición i → shard
// i mod 3. Para Yamaha/Honda/BMW: BMW → Shard 1, Honda → Shard 2, Yamaha → Shard 3.
func TestShardSimulation_DeterministicAssignment(t *testing.T) {
	products := newFakeProductStore(
		brandProduct("M100", "Yamaha"),
		brandProduct("M101", "Honda"),
		brandProduct("M102", "BMW"),
	)
	svc := newTestService(products, nil, nil)

	report := svc.ShardSimulation(context.Background())

	assert.Equal(t, 3, report.TotalProducts)
	assert.Equal(t, 3, report.TotalBrands)
	require.Len(t, report.Shards, 3)

	assert.Equal(t, "Shard 1", report.Shards[0].Name)
	assert.Equal(t, []string{"BMW"}, report.Shards[0].Brands)
	assert.Equal(t, "Shard 2", report.Shards[1].Name)
	assert.Equal(t, []string{"Honda"}, report.Shards[1].Brands)
	assert.Equal(t, "Shard 3", report.Shards[2].Name)
	assert.Equal(t, []string{"Yamaha"}, report.Shards[2].Brands)
}

func TestShardSimulation_WrapsAroundShards(t *testing.T) {
	products := newFakeProductStore(
		brandProduct("M100", "BMW"),
		brandProduct("M101", "Ducati"),
		brandProduct("M102", "Honda"),
		brandProduct("M103", "KTM"),
		brandProduct("M104", "Kawasaki"),
	)
	svc := newTestService(products, nil, nil)

	report := svc.ShardSimulation(context.Background())

	require.Len(t, report.Shards, 3)
	// Orden lexicográfico: BMW, Ducati, Honda, KTM, Kawasaki (K < Ka)
	assert.Equal(t, []string{"BMW", "KTM"}, report.Shards[0].Brands)
	assert.Equal(t, []string{"Ducati", "Kawasaki"}, report.Shards[1].Brands)
	assert.Equal(t, []string{"Honda"}, report.Shards[2].Brands)
}

func TestShardSimulation_CountsProductsPerShard(t *testing.T) {
	products := newFakeProductStore(
		brandProduct("M100", "BMW"),
		brandProduct("M101", "BMW"),
		brandProduct("M102", "BMW"),
		brandProduct("M103", "Honda"),
		brandProduct("M104", "Yamaha"),
		brandProduct("M105", "Yamaha"),
	)
	svc := newTestService(products, nil, nil)

	report := svc.ShardSimulation(context.Background())

	assert.Equal(t, 6, report.TotalProducts)
	assert.Equal(t, 3, report.TotalBrands)
	assert.Equal(t, 3, report.Shards[0].ProductCount)
	assert.Equal(t, 1, report.Shards[1].ProductCount)
	assert.Equal(t, 2, report.Shards[2].ProductCount)
}

func TestShardSimulation_FewerBrandsThanShards(t *testing.T) {
	products := newFakeProductStore(
		brandProduct("M100", "Honda"),
		brandProduct("M101", "Honda"),
	)
	svc := newTestService(products, nil, nil)

	report := svc.ShardSimulation(context.Background())

	assert.Equal(t, 1, report.TotalBrands)
	require.Len(t, report.Shards, 1)
	assert.Equal(t, "Shard 1", report.Shards[0].Name)
	assert.Equal(t, 2, report.Shards[0].ProductCount)
}

func TestShardSimulation_EmptyCatalog(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	report := svc.ShardSimulation(context.Background())

	assert.Zero(t, report.TotalProducts)
	assert.Zero(t, report.TotalBrands)
	assert.Empty(t, report.Shards)
}
