package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
	"github.com/kusina/canteen-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. Each stub mirrors
// the guards the real Mongo queries apply.
// ---------------------------------------------------------------------------

type stubMenuRepo struct {
	items     map[string]*domain.MenuItem
	nextID    int
	insertErr error
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{items: make(map[string]*domain.MenuItem)}
}

func (r *stubMenuRepo) List(_ context.Context) ([]*domain.MenuItem, error) {
	out := make([]*domain.MenuItem, 0, len(r.items))
	for _, it := range r.items {
		clone := *it
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id string) (*domain.MenuItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *stubMenuRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.MenuItem, error) {
	out := make(map[string]*domain.MenuItem)
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			clone := *it
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubMenuRepo) Insert(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.nextID++
	clone := *item
	clone.ID = fmt.Sprintf("menu_%d", r.nextID)
	r.items[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubMenuRepo) Update(_ context.Context, id string, patch ports.MenuItemPatch) (*domain.MenuItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Price != nil {
		it.Price = *patch.Price
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		it.ImageURL = *patch.ImageURL
	}
	clone := *it
	return &clone, nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

// seedMenuItem inserts a catalog row directly, bypassing the service.
func (r *stubMenuRepo) seedMenuItem(name, price string) *domain.MenuItem {
	r.nextID++
	item := &domain.MenuItem{
		ID:        fmt.Sprintf("menu_%d", r.nextID),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		CreatedAt: time.Now().UTC(),
	}
	r.items[item.ID] = item
	return item
}

type stubOrderRepo struct {
	orders    map[string]*domain.Order
	nextID    int
	insertErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Insert(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("order_%d", r.nextID)
	r.orders[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, userID string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if userID != "" && o.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.OrderListFilter) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) UpdatePendingQuantity(_ context.Context, id, userID string, quantity int, total decimal.Decimal) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != domain.StatusPending {
		return nil, domain.ErrOrderNotPending
	}
	o.Quantity = quantity
	o.Total = total
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) DeletePending(_ context.Context, id, userID string) error {
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return domain.ErrOrderNotFound
	}
	if o.Status != domain.StatusPending {
		return domain.ErrOrderNotPending
	}
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) SettlePending(_ context.Context, userID string, before time.Time) ([]*domain.Order, error) {
	settled := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if o.UserID != userID || o.Status != domain.StatusPending {
			continue
		}
		if o.CreatedAt.After(before) {
			continue
		}
		o.Status = domain.StatusPaid
		clone := *o
		settled = append(settled, &clone)
	}
	return settled, nil
}

func (r *stubOrderRepo) MarkDone(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != domain.StatusPaid {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, o.Status, domain.StatusDone)
	}
	o.Status = domain.StatusDone
	clone := *o
	return &clone, nil
}

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindEmailsByIDs(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Email
		}
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.ID] = &clone
	result := clone
	return &result, nil
}

type stubStorage struct {
	uploads   map[string][]byte
	uploadErr error
	lastKey   string
}

func newStubStorage() *stubStorage {
	return &stubStorage{uploads: make(map[string][]byte)}
}

func (s *stubStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploads[key] = data
	s.lastKey = key
	return nil
}

func (s *stubStorage) PublicURL(key string) string {
	return "https://cdn.example.com/menu-images/" + key
}

type stubDenylist struct {
	revoked map[string]time.Duration
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	d.revoked[token] = ttl
	return nil
}
