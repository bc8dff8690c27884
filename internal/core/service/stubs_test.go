package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests. They mimic the
// storage contract: tenant-scoped misses and cross-tenant ids both read as
// not-found, and unique-field collisions return DuplicateKeyError.

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindInTenant(_ context.Context, id, customerID string) (*domain.User, error) {
	if u, ok := r.users[id]; ok && u.CustomerID == customerID {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByCustomer(_ context.Context, customerID string, page, limit int) (*ports.UserPage, error) {
	var docs []domain.User
	for _, u := range r.users {
		if u.CustomerID == customerID {
			docs = append(docs, *u)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	total := int64(len(docs))
	start := (page - 1) * limit
	if start > len(docs) {
		start = len(docs)
	}
	end := start + limit
	if end > len(docs) {
		end = len(docs)
	}

	pages := int(total) / limit
	if int(total)%limit != 0 || pages == 0 {
		pages++
	}
	return &ports.UserPage{Docs: docs[start:end], Total: total, Page: page, Limit: limit, Pages: pages}, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Login == user.Login {
			return nil, &domain.DuplicateKeyError{Field: "login"}
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("u%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) applyUpdate(u *domain.User, update ports.UserUpdate) error {
	if update.Login != nil {
		for _, other := range r.users {
			if other.ID != u.ID && other.Login == *update.Login {
				return &domain.DuplicateKeyError{Field: "login"}
			}
		}
		u.Login = *update.Login
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Admin != nil {
		u.Admin = *update.Admin
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if err := r.applyUpdate(u, update); err != nil {
		return nil, err
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateInTenant(_ context.Context, id, customerID string, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.CustomerID != customerID {
		return nil, domain.ErrUserNotFound
	}
	if err := r.applyUpdate(u, update); err != nil {
		return nil, err
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) DeleteInTenant(_ context.Context, id, customerID string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.CustomerID != customerID {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return u, nil
}

type stubCustomerRepo struct {
	seq       int
	customers map[string]*domain.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCustomerRepo) FindAll(_ context.Context) ([]domain.Customer, error) {
	var all []domain.Customer
	for _, c := range r.customers {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return cloneCustomer(c), nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.Email == customer.Email {
			return nil, &domain.DuplicateKeyError{Field: "email"}
		}
	}
	r.seq++
	created := cloneCustomer(customer)
	created.ID = fmt.Sprintf("c%d", r.seq)
	r.customers[created.ID] = cloneCustomer(created)
	return created, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, id string, update ports.CustomerUpdate) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if update.Email != nil {
		for _, other := range r.customers {
			if other.ID != id && other.Email == *update.Email {
				return nil, &domain.DuplicateKeyError{Field: "email"}
			}
		}
		c.Email = *update.Email
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return c, nil
}

type stubNotificationRepo struct {
	seq           int
	notifications []*domain.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{}
}

func (r *stubNotificationRepo) ListForUser(_ context.Context, customerID, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	// Newest first, matching the createdAt desc sort in the real repo.
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if n.CustomerID == customerID && n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) Create(_ context.Context, notification *domain.Notification) (*domain.Notification, error) {
	r.seq++
	created := *notification
	created.ID = fmt.Sprintf("n%d", r.seq)
	r.notifications = append(r.notifications, &created)
	clone := created
	return &clone, nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, id, customerID, userID string) (*domain.Notification, error) {
	for i, n := range r.notifications {
		if n.ID == id && n.CustomerID == customerID && n.UserID == userID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return n, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}
