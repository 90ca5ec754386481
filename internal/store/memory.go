package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"foolivery/internal/models"
)

// table is a keyed collection with its own autoincrement counter.
// Every mutation holds the write lock, so ids are unique and never reused.
type table[T any] struct {
	mu     sync.RWMutex
	lastID int64
	rows   map[int64]T
	ids    []int64
	clone  func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{rows: make(map[int64]T), clone: clone}
}

// insert runs guard against every stored row, then assigns the next id and stores v.
func (t *table[T]) insert(v T, assign func(*T, int64), guard func(T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if guard != nil {
		for _, id := range t.ids {
			if err := guard(t.rows[id]); err != nil {
				var zero T
				return zero, err
			}
		}
	}

	t.lastID++
	assign(&v, t.lastID)
	t.rows[t.lastID] = t.clone(v)
	t.ids = append(t.ids, t.lastID)
	return t.clone(v), nil
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	return t.clone(v), true
}

// filter returns matching rows in id order. A nil predicate matches everything.
func (t *table[T]) filter(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		v := t.rows[id]
		if pred == nil || pred(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *table[T]) update(id int64, mutate func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	mutate(&v)
	t.rows[id] = t.clone(v)
	return t.clone(v), true
}

// MemoryStore keeps every collection in process memory
type MemoryStore struct {
	users      *table[models.User]
	categories *table[models.Category]
	foods      *table[models.Food]
	orders     *table[models.Order]
	now        func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      newTable[models.User](nil),
		categories: newTable[models.Category](nil),
		foods:      newTable[models.Food](nil),
		orders:     newTable(func(o models.Order) models.Order { return *o.Clone() }),
		now:        time.Now,
	}
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}

// CreateUser stores a user, rejecting usernames that clash ignoring case
func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	stored, err := s.users.insert(*user,
		func(u *models.User, id int64) { u.ID = id },
		func(existing models.User) error {
			if strings.EqualFold(existing.Username, user.Username) {
				return ErrUsernameTaken
			}
			return nil
		})
	if err != nil {
		return err
	}
	*user = stored
	return nil
}

// GetUserByID retrieves a user by ID
func (s *MemoryStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users.get(id)
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username, ignoring case
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	matches := s.users.filter(func(u models.User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// CreateCategory stores a category
func (s *MemoryStore) CreateCategory(ctx context.Context, category *models.Category) error {
	stored, _ := s.categories.insert(*category, func(c *models.Category, id int64) { c.ID = id }, nil)
	*category = stored
	return nil
}

// ListCategories retrieves all categories
func (s *MemoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.filter(nil), nil
}

// CreateFood stores a food item
func (s *MemoryStore) CreateFood(ctx context.Context, food *models.Food) error {
	stored, _ := s.foods.insert(*food, func(f *models.Food, id int64) { f.ID = id }, nil)
	*food = stored
	return nil
}

// ListFoods retrieves all foods
func (s *MemoryStore) ListFoods(ctx context.Context) ([]models.Food, error) {
	return s.foods.filter(nil), nil
}

// GetFoodByID retrieves a food by ID
func (s *MemoryStore) GetFoodByID(ctx context.Context, id int64) (*models.Food, error) {
	food, ok := s.foods.get(id)
	if !ok {
		return nil, nil
	}
	return &food, nil
}

// ListFoodsByCategory retrieves foods whose category matches exactly
func (s *MemoryStore) ListFoodsByCategory(ctx context.Context, category string) ([]models.Food, error) {
	return s.foods.filter(func(f models.Food) bool { return f.Category == category }), nil
}

// UpdateFoodPrice changes the catalog price of a food
func (s *MemoryStore) UpdateFoodPrice(ctx context.Context, id, priceMinor int64) (*models.Food, error) {
	food, ok := s.foods.update(id, func(f *models.Food) { f.PriceMinor = priceMinor })
	if !ok {
		return nil, nil
	}
	return &food, nil
}

// CreateOrder stores an order and populates its ID
func (s *MemoryStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now()
	}
	stored, _ := s.orders.insert(*order, func(o *models.Order, id int64) { o.ID = id }, nil)
	*order = stored
	return nil
}

// GetOrderByID retrieves an order by ID
func (s *MemoryStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order, ok := s.orders.get(id)
	if !ok {
		return nil, nil
	}
	return &order, nil
}

// ListOrdersByUserID retrieves a user's orders, newest first
func (s *MemoryStore) ListOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	orders := s.orders.filter(func(o models.Order) bool { return o.UserID == userID })
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

// UpdateOrderStatus changes only the status of an order
func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	order, ok := s.orders.update(id, func(o *models.Order) { o.Status = status })
	if !ok {
		return nil, nil
	}
	return &order, nil
}
