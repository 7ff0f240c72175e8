package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moto-shop/internal/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(collection *mongo.Collection) *UserRepository {
	return &UserRepository{
		collection: collection,
	}
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// NextUserID genera el siguiente id secuencial U1, U2, ... Se toma el máximo
// numérico real en lugar del máximo lexicográfico ("U9" > "U10" como string).
func (r *UserRepository) NextUserID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"user_id": 1}))
	if err != nil {
		return "", err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		UserID string `bson:"user_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return "", err
	}

	max := 0
	for _, d := range docs {
		n, err := strconv.Atoi(strings.TrimPrefix(d.UserID, "U"))
		if err == nil && n > max {
			max = n
		}
	}

	return "U" + strconv.Itoa(max+1), nil
}

// Insert inserta un usuario nuevo. El índice único de email convierte la
// carrera entre dos altas simultáneas con el mismo correo en ErrEmailTaken.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

// Update reemplaza nombre, email y direcciones de un usuario existente
func (r *UserRepository) Update(ctx context.Context, userID string, name, email string, addresses []models.Address) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"name":       name,
			"email":      email,
			"addresses":  addresses,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}

	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) Drop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.collection.Drop(ctx)
}

func (r *UserRepository) InsertMany(ctx context.Context, users []models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(users))
	for i := range users {
		docs[i] = users[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// EnsureIndexes crea el índice único sobre email
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// MigrateLegacyAddresses convierte documentos antiguos con un campo address
// singular al array addresses. Es idempotente: los documentos ya migrados no
// cumplen el filtro.
func (r *UserRepository) MigrateLegacyAddresses(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{
		"address":   bson.M{"$exists": true},
		"addresses": bson.M{"$exists": false},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var legacy []struct {
		ID      interface{} `bson:"_id"`
		Address struct {
			City   string `bson:"city"`
			Street string `bson:"street"`
			Zip    string `bson:"zip"`
		} `bson:"address"`
	}
	if err = cursor.All(ctx, &legacy); err != nil {
		return 0, err
	}

	var migrated int64
	for _, doc := range legacy {
		addresses := []models.Address{{
			Label:  "Casa",
			City:   doc.Address.City,
			Street: doc.Address.Street,
			Zip:    doc.Address.Zip,
		}}

		_, err := r.collection.UpdateOne(
			ctx,
			bson.M{"_id": doc.ID},
			bson.M{
				"$set":   bson.M{"addresses": addresses},
				"$unset": bson.M{"address": ""},
			},
		)
		if err != nil {
			return migrated, err
		}
		migrated++
	}

	// Limpia cualquier campo address residual
	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"address": bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{"address": ""}},
	)
	if err != nil {
		return migrated, err
	}

	return migrated, nil
}
