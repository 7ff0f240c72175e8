package shop

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"

	"moto-shop/internal/models"
	"moto-shop/internal/repository"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// Fakes en memoria de los tres stores. El decremento replica la semántica
// condicional atómica de MongoDB bajo un mutex.

type fakeProductStore struct {
	mu       sync.Mutex
	order    []string
	products map[string]*models.Product
	indexed  bool
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	s := &fakeProductStore{products: map[string]*models.Product{}}
	for i := range products {
		p := products[i]
		s.order = append(s.order, p.MotoID)
		s.products[p.MotoID] = &p
	}
	return s
}

func (s *fakeProductStore) FindByMotoID(ctx context.Context, motoID string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[motoID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copy := *p
	return &copy, nil
}

func (s *fakeProductStore) DecrementStock(ctx context.Context, motoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[motoID]
	if !ok || p.Stock <= 0 {
		return repository.ErrStockConflict
	}
	p.Stock--
	return nil
}

func (s *fakeProductStore) List(ctx context.Context, limit int64) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Product{}
	for _, id := range s.order {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		out = append(out, *s.products[id])
	}
	return out, nil
}

func (s *fakeProductStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.products)), nil
}

func (s *fakeProductStore) AveragePrice(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) == 0 {
		return 0, nil
	}
	var sum float64
	for _, p := range s.products {
		sum += p.Price
	}
	return sum / float64(len(s.products)), nil
}

func (s *fakeProductStore) ScanPriceAbove(ctx context.Context, threshold float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, p := range s.products {
		if p.Price > threshold {
			count++
		}
	}
	return count, nil
}

func (s *fakeProductStore) Drop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.products = map[string]*models.Product{}
	return nil
}

func (s *fakeProductStore) InsertMany(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range products {
		p := products[i]
		s.order = append(s.order, p.MotoID)
		s.products[p.MotoID] = &p
	}
	return nil
}

func (s *fakeProductStore) EnsureIndexes(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexed = true
	return nil
}

func (s *fakeProductStore) DropIndexes(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexed = false
	return nil
}

func (s *fakeProductStore) CreatePriceIndex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexed = true
	return nil
}

// setPrice muta el precio vivo de un producto, para probar que los snapshots
// de órdenes anteriores no cambian.
func (s *fakeProductStore) setPrice(motoID string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[motoID]; ok {
		p.Price = price
	}
}

func (s *fakeProductStore) stock(motoID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[motoID]; ok {
		return p.Stock
	}
	return -1
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func newFakeOrderStore(orders ...models.Order) *fakeOrderStore {
	return &fakeOrderStore{orders: orders}
}

func (s *fakeOrderStore) Insert(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, *order)
	return nil
}

func (s *fakeOrderStore) ListRecent(ctx context.Context, limit int64) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.ListRecent(ctx, 0)
}

func (s *fakeOrderStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.orders)), nil
}

func (s *fakeOrderStore) TotalRevenue(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, o := range s.orders {
		total += o.PriceSnapshot
	}
	return total, nil
}

func (s *fakeOrderStore) Drop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
	return nil
}

func (s *fakeOrderStore) all() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

type fakeUserStore struct {
	mu      sync.Mutex
	order   []string
	users   map[string]*models.User
	indexed bool
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]*models.User{}}
	for i := range users {
		u := users[i]
		s.order = append(s.order, u.UserID)
		s.users[u.UserID] = &u
	}
	return s
}

func (s *fakeUserStore) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copy := *u
	return &copy, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) NextUserID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := 0
	for id := range s.users {
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "U")); err == nil && n > max {
			max = n
		}
	}
	return "U" + strconv.Itoa(max+1), nil
}

func (s *fakeUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	copy := *user
	s.order = append(s.order, copy.UserID)
	s.users[copy.UserID] = &copy
	return nil
}

func (s *fakeUserStore) Update(ctx context.Context, userID, name, email string, addresses []models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	for id, other := range s.users {
		if id != userID && other.Email == email {
			return repository.ErrEmailTaken
		}
	}
	u.Name = name
	u.Email = email
	u.Addresses = addresses
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, userID)
	for i, id := range s.order {
		if id == userID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeUserStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.User{}
	for _, id := range s.order {
		out = append(out, *s.users[id])
	}
	return out, nil
}

func (s *fakeUserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) Drop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.users = map[string]*models.User{}
	return nil
}

func (s *fakeUserStore) InsertMany(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range users {
		u := users[i]
		s.order = append(s.order, u.UserID)
		s.users[u.UserID] = &u
	}
	return nil
}

func (s *fakeUserStore) EnsureIndexes(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexed = true
	return nil
}

func (s *fakeUserStore) MigrateLegacyAddresses(ctx context.Context) (int64, error) {
	return 0, nil
}
