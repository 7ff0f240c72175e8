// Package shop contiene las operaciones de negocio de la tienda demo:
// compra con decremento atómico de stock, ranking por similitud de vectores,
// proyecciones analíticas, simulación de sharding y benchmark de índices.
package shop

import (
	"context"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"moto-shop/internal/models"
)

// EmbeddingDim es la dimensión fija de los vectores generados al sembrar el
// catálogo; el vector de consulta debe tener la misma dimensión.
const EmbeddingDim = 5

// ProductStore es la vista del servicio sobre la colección de productos
type ProductStore interface {
	FindByMotoID(ctx context.Context, motoID string) (*models.Product, error)
	DecrementStock(ctx context.Context, motoID string) error
	List(ctx context.Context, limit int64) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	AveragePrice(ctx context.Context) (float64, error)
	ScanPriceAbove(ctx context.Context, threshold float64) (int64, error)
	Drop(ctx context.Context) error
	InsertMany(ctx context.Context, products []models.Product) error
	EnsureIndexes(ctx context.Context) error
	DropIndexes(ctx context.Context) error
	CreatePriceIndex(ctx context.Context) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	ListRecent(ctx context.Context, limit int64) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	Drop(ctx context.Context) error
}

type UserStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	NextUserID(ctx context.Context) (string, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, userID string, name, email string, addresses []models.Address) error
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	Drop(ctx context.Context) error
	InsertMany(ctx context.Context, users []models.User) error
	EnsureIndexes(ctx context.Context) error
	MigrateLegacyAddresses(ctx context.Context) (int64, error)
}

// FailureKind clasifica el fallo de una operación mutadora para que el
// transporte elija el código HTTP; el cuerpo siempre lleva {success, message}.
type FailureKind int

const (
	KindNone FailureKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindStoreFailure
)

// Result es la forma estructurada que devuelve toda operación mutadora:
// nunca se propaga un fallo del store más allá del servicio.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Kind    FailureKind `json:"-"`
}

func failure(kind FailureKind, message string) Result {
	return Result{Success: false, Message: message, Kind: kind}
}

// Service agrupa las operaciones sobre los tres stores. La fuente de azar se
// inyecta para que los tests puedan fijar vectores y datos de demo.
type Service struct {
	products ProductStore
	orders   OrderStore
	users    UserStore
	log      *zap.Logger

	mu  sync.Mutex // protege rng, *rand.Rand no es seguro entre goroutines
	rng *rand.Rand
}

func New(products ProductStore, orders OrderStore, users UserStore, rng *rand.Rand, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		products: products,
		orders:   orders,
		users:    users,
		rng:      rng,
		log:      log,
	}
}

func (s *Service) randomVector(dim int) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]float64, dim)
	for i := range v {
		v[i] = s.rng.Float64()
	}
	return v
}

func (s *Service) randFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Service) randIntn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
