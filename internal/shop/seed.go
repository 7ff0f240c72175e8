package shop

import (
	"context"
	"fmt"
	"time"

	"moto-shop/internal/models"
)

const (
	seedProducts = 30
	seedUsers    = 5
)

var (
	seedBrands  = []string{"Yamaha", "Honda", "Ducati", "BMW", "KTM", "Kawasaki", "Harley-Davidson"}
	seedTypes   = []string{"Sport", "Naked", "Adventure", "Cruiser", "Enduro"}
	seedColors  = []string{"Red", "Black", "Blue", "White", "Matte Black", "Orange"}
	seedCCs     = []int{300, 600, 750, 1000, 1200}
	seedCities  = []string{"Bucuresti", "Cluj-Napoca", "Timisoara", "Iasi", "Constanta"}
	seedStreets = []string{"Str. Libertatii", "Bd. Unirii", "Calea Victoriei", "Str. Mihai Eminescu", "Aleea Rozelor"}
	seedLabels  = []string{"Casa", "Oficina", "Padres"}
)

// SeedResult resume el reset de datos de demostración
type SeedResult struct {
	ProductCount int `json:"products_count"`
	UserCount    int `json:"users_count"`
}

// ResetDemoData borra las tres colecciones y regenera el dataset de demo:
// 30 productos con specs embebidas y vector de dimensión fija, 5 usuarios con
// 1 a 3 direcciones embebidas. Recrea los índices sobre price, brand y
// moto_id, y el índice único de email.
func (s *Service) ResetDemoData(ctx context.Context) (SeedResult, error) {
	if err := s.products.Drop(ctx); err != nil {
		return SeedResult{}, err
	}
	if err := s.orders.Drop(ctx); err != nil {
		return SeedResult{}, err
	}
	if err := s.users.Drop(ctx); err != nil {
		return SeedResult{}, err
	}

	products := s.generateProducts(seedProducts)
	if err := s.products.InsertMany(ctx, products); err != nil {
		return SeedResult{}, err
	}

	users := s.generateUsers(seedUsers)
	if err := s.users.InsertMany(ctx, users); err != nil {
		return SeedResult{}, err
	}

	if err := s.products.EnsureIndexes(ctx); err != nil {
		return SeedResult{}, err
	}
	if err := s.users.EnsureIndexes(ctx); err != nil {
		return SeedResult{}, err
	}

	return SeedResult{ProductCount: len(products), UserCount: len(users)}, nil
}

// generateProducts construye el catálogo demo. Schema flexible en el origen,
// aquí tipos explícitos: el precio se deriva de la cilindrada más un jitter.
func (s *Service) generateProducts(n int) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		brand := seedBrands[s.randIntn(len(seedBrands))]
		motoType := seedTypes[s.randIntn(len(seedTypes))]
		cc := seedCCs[s.randIntn(len(seedCCs))]

		products = append(products, models.Product{
			MotoID: fmt.Sprintf("M%d", i+100),
			Name:   fmt.Sprintf("%s %s %d", brand, motoType, cc),
			Brand:  brand,
			Type:   motoType,
			CC:     cc,
			Price:  float64(5000 + cc*8 + s.randIntn(2501) - 500),
			Stock:  s.randIntn(9),
			Color:  seedColors[s.randIntn(len(seedColors))],
			Specs: models.Specs{
				WeightKg:      150 + s.randIntn(131),
				FuelTankL:     12 + s.randIntn(14),
				WarrantyYears: 1 + s.randIntn(3),
			},
			Embedding: s.randomVector(EmbeddingDim),
			CreatedAt: time.Now(),
		})
	}
	return products
}

func (s *Service) generateUsers(n int) []models.User {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		numAddresses := 1 + s.randIntn(3)
		addresses := make([]models.Address, 0, numAddresses)
		for j := 0; j < numAddresses; j++ {
			addresses = append(addresses, models.Address{
				Label:  seedLabels[j],
				City:   seedCities[s.randIntn(len(seedCities))],
				Street: fmt.Sprintf("%s %d", seedStreets[s.randIntn(len(seedStreets))], 1+s.randIntn(100)),
				Zip:    fmt.Sprintf("%d", 100000+s.randIntn(900000)),
			})
		}

		users = append(users, models.User{
			UserID:    fmt.Sprintf("U%d", i+1),
			Name:      fmt.Sprintf("Client %d", i+1),
			Email:     fmt.Sprintf("client%d@motoshop.ro", i+1),
			Addresses: addresses,
			CreatedAt: time.Now(),
		})
	}
	return users
}
