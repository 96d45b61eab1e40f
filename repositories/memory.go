package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vasanthreddy12/e-commerce/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemoryStores keeps every collection in process memory. It backs
// STORE_DRIVER=memory and the tests; documents are copied in and out so callers
// never share state with the store.
func NewMemoryStores() Stores {
	return Stores{
		Products: &memoryProducts{docs: map[primitive.ObjectID]models.Product{}},
		Carts:    &memoryCarts{docs: map[primitive.ObjectID]models.Cart{}},
		Orders:   &memoryOrders{docs: map[primitive.ObjectID]models.Order{}},
		Users:    &memoryUsers{docs: map[primitive.ObjectID]models.User{}},
	}
}

type memoryProducts struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Product
}

func (r *memoryProducts) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.docs[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryProducts) List(_ context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	r.mu.RLock()
	matched := []models.Product{}
	search := strings.ToLower(q.Search)
	for _, p := range r.docs {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}
	r.mu.RUnlock()

	sortProducts(matched, q.Sort)

	total := int64(len(matched))
	skip, limit := pageBounds(q.Page, q.Limit)
	if skip >= total {
		return []models.Product{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

func sortProducts(products []models.Product, spec string) {
	field, dir, _ := strings.Cut(spec, ":")
	if !productSortFields[field] {
		field, dir = "createdAt", "desc"
	}
	less := func(a, b models.Product) bool {
		switch field {
		case "name":
			return a.Name < b.Name
		case "price":
			return a.Price.LessThan(b.Price)
		case "rating":
			return a.Rating < b.Rating
		case "stock":
			return a.Stock < b.Stock
		case "numReviews":
			return a.NumReviews < b.NumReviews
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if dir == "desc" {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func (r *memoryProducts) Insert(_ context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[p.ID]; exists {
		return ErrDuplicate
	}
	r.docs[p.ID] = *p
	return nil
}

func (r *memoryProducts) Update(_ context.Context, id primitive.ObjectID, u models.ProductUpdate) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	u.Apply(&p)
	r.docs[id] = p
	return p, nil
}

func (r *memoryProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *memoryProducts) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	if p.Stock < qty {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	r.docs[id] = p
	return nil
}

func (r *memoryProducts) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	p.Stock += qty
	r.docs[id] = p
	return nil
}

type memoryCarts struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Cart // keyed by user
}

func copyCart(c models.Cart) models.Cart {
	c.Items = append([]models.CartItem{}, c.Items...)
	return c
}

func (r *memoryCarts) FindByUser(_ context.Context, userID primitive.ObjectID) (models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.docs[userID]
	if !ok {
		return models.Cart{}, ErrNotFound
	}
	return copyCart(c), nil
}

func (r *memoryCarts) Save(_ context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	cart.UpdatedAt = time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[cart.UserID] = copyCart(*cart)
	return nil
}

type memoryOrders struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Order
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem{}, o.Items...)
	if o.PaymentResult != nil {
		result := *o.PaymentResult
		o.PaymentResult = &result
	}
	return o
}

func (r *memoryOrders) Insert(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[o.ID]; exists {
		return ErrDuplicate
	}
	o.Version = 1
	r.docs[o.ID] = copyOrder(*o)
	return nil
}

func (r *memoryOrders) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.docs[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *memoryOrders) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.docs {
		if gatewayOrderID != "" && o.GatewayOrderID == gatewayOrderID {
			return copyOrder(o), nil
		}
	}
	return models.Order{}, ErrNotFound
}

func (r *memoryOrders) List(_ context.Context, q models.OrderQuery) ([]models.Order, int64, error) {
	r.mu.RLock()
	matched := []models.Order{}
	for _, o := range r.docs {
		if !q.UserID.IsZero() && o.UserID != q.UserID {
			continue
		}
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		matched = append(matched, copyOrder(o))
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	skip, limit := pageBounds(q.Page, q.Limit)
	if skip >= total {
		return []models.Order{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

func (r *memoryOrders) Update(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.docs[o.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != o.Version {
		return ErrConflict
	}
	o.Version++
	r.docs[o.ID] = copyOrder(*o)
	return nil
}

type memoryUsers struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.User
}

func (r *memoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.docs[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range r.docs {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *memoryUsers) Insert(_ context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = strings.ToLower(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.docs {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	r.docs[u.ID] = *u
	return nil
}

func (r *memoryUsers) UpdateName(_ context.Context, id primitive.ObjectID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	u.Name = name
	r.docs[id] = u
	return nil
}
