package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moto-shop/internal/models"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
	}
}

// FindByMotoID obtiene un producto por su moto_id
func (r *ProductRepository) FindByMotoID(ctx context.Context, motoID string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"moto_id": motoID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

// DecrementStock descuenta una unidad con una actualización condicional
// atómica: sólo si el stock sigue siendo > 0 en el momento del update.
// Dos compras concurrentes de la última unidad no pueden tener éxito ambas.
func (r *ProductRepository) DecrementStock(ctx context.Context, motoID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"moto_id": motoID, "stock": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"stock": -1}},
	)
	if err != nil {
		return err
	}

	if result.ModifiedCount == 0 {
		return ErrStockConflict
	}

	return nil
}

// List devuelve productos hasta el límite indicado
func (r *ProductRepository) List(ctx context.Context, limit int64) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.collection.CountDocuments(ctx, bson.M{})
}

// AveragePrice calcula el precio medio con un pipeline $group en el servidor
func (r *ProductRepository) AveragePrice(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$price"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Avg, nil
}

// ScanPriceAbove ejecuta el predicado del benchmark: cuenta y materializa
// todos los productos con precio mayor al umbral.
func (r *ProductRepository) ScanPriceAbove(ctx context.Context, threshold float64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"price": bson.M{"$gt": threshold}}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return 0, err
	}

	return count, nil
}

// Drop elimina la colección completa (usado por el reset de datos demo)
func (r *ProductRepository) Drop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.collection.Drop(ctx)
}

func (r *ProductRepository) InsertMany(ctx context.Context, products []models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// EnsureIndexes crea los índices de consulta: price y brand para las rutas
// de agregación y benchmark, moto_id único como clave natural.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{
			Keys:    bson.D{{Key: "moto_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// DropIndexes elimina todos los índices secundarios (deja sólo _id)
func (r *ProductRepository) DropIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().DropAll(ctx)
	return err
}

// CreatePriceIndex crea únicamente el índice sobre price, para la segunda
// pasada del benchmark.
func (r *ProductRepository) CreatePriceIndex(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "price", Value: 1}},
	})
	return err
}
