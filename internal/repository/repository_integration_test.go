package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moto-shop/internal/models"
)

// Tests de integración contra un MongoDB real en contenedor.
// Se activan con INTEGRATION=1 (requieren Docker).
func setupDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run MongoDB container tests")
	}

	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	return client.Database("moto_shop_test")
}

func TestProductRepository_DecrementStockIsAtomic(t *testing.T) {
	db := setupDatabase(t)
	repo := NewProductRepository(db.Collection("products"))
	ctx := context.Background()

	const initialStock = 3
	const attempts = 12

	require.NoError(t, repo.InsertMany(ctx, []models.Product{{
		MotoID:    "M100",
		Name:      "Yamaha Sport 600",
		Brand:     "Yamaha",
		Price:     9800,
		Stock:     initialStock,
		CreatedAt: time.Now(),
	}}))

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.DecrementStock(ctx, "M100")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrStockConflict)
		}
	}
	assert.Equal(t, initialStock, succeeded)

	prod, err := repo.FindByMotoID(ctx, "M100")
	require.NoError(t, err)
	assert.Equal(t, 0, prod.Stock, "stock must land at exactly zero, never negative")
}

func TestProductRepository_FindByMotoIDNotFound(t *testing.T) {
	db := setupDatabase(t)
	repo := NewProductRepository(db.Collection("products"))

	_, err := repo.FindByMotoID(context.Background(), "M999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_ScanPriceAboveWithAndWithoutIndex(t *testing.T) {
	db := setupDatabase(t)
	repo := NewProductRepository(db.Collection("products"))
	ctx := context.Background()

	seed := []models.Product{
		{MotoID: "M100", Brand: "Yamaha", Price: 9500, CreatedAt: time.Now()},
		{MotoID: "M101", Brand: "Honda", Price: 7200, CreatedAt: time.Now()},
		{MotoID: "M102", Brand: "BMW", Price: 12400, CreatedAt: time.Now()},
	}
	require.NoError(t, repo.InsertMany(ctx, seed))

	require.NoError(t, repo.DropIndexes(ctx))
	without, err := repo.ScanPriceAbove(ctx, 8000)
	require.NoError(t, err)

	require.NoError(t, repo.CreatePriceIndex(ctx))
	with, err := repo.ScanPriceAbove(ctx, 8000)
	require.NoError(t, err)

	assert.Equal(t, int64(2), without)
	assert.Equal(t, without, with, "the index must not change result semantics")
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	db := setupDatabase(t)
	repo := NewUserRepository(db.Collection("users"))
	ctx := context.Background()

	require.NoError(t, repo.EnsureIndexes(ctx))

	first := &models.User{UserID: "U1", Name: "Ana", Email: "ana@motoshop.ro", CreatedAt: time.Now()}
	require.NoError(t, repo.Insert(ctx, first))

	second := &models.User{UserID: "U2", Name: "Otra Ana", Email: "ana@motoshop.ro", CreatedAt: time.Now()}
	err := repo.Insert(ctx, second)
	assert.ErrorIs(t, err, ErrEmailTaken)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_MigrateLegacyAddresses(t *testing.T) {
	db := setupDatabase(t)
	repo := NewUserRepository(db.Collection("users"))
	ctx := context.Background()

	// Documento con el esquema antiguo: address singular, sin addresses
	_, err := db.Collection("users").InsertOne(ctx, bson.M{
		"user_id": "U1",
		"name":    "Legacy",
		"email":   "legacy@motoshop.ro",
		"address": bson.M{"city": "Iasi", "street": "Bd. Unirii 3", "zip": "700001"},
	})
	require.NoError(t, err)

	migrated, err := repo.MigrateLegacyAddresses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), migrated)

	user, err := repo.FindByUserID(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, user.Addresses, 1)
	assert.Equal(t, "Iasi", user.Addresses[0].City)

	// Idempotente: una segunda pasada no encuentra nada que migrar
	migrated, err = repo.MigrateLegacyAddresses(ctx)
	require.NoError(t, err)
	assert.Zero(t, migrated)
}

func TestOrderRepository_TotalRevenuePipeline(t *testing.T) {
	db := setupDatabase(t)
	repo := NewOrderRepository(db.Collection("orders"))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.Order{
		OrderCode: "ORD-1", MotoID: "M100", ProductName: "A", PriceSnapshot: 9800,
		Date: time.Now(), Status: "Confirmed",
	}))
	require.NoError(t, repo.Insert(ctx, &models.Order{
		OrderCode: "ORD-2", MotoID: "M101", ProductName: "B", PriceSnapshot: 7200,
		Date: time.Now(), Status: "Confirmed",
	}))

	total, err := repo.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17000.0, total)

	empty := NewOrderRepository(db.Collection("orders_empty"))
	total, err = empty.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}
