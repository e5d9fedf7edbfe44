// Package memory provides in-memory repositories for handler and route tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"portal/database/repository"
	categoryRepo "portal/database/repository/category"
	reviewRepo "portal/database/repository/review"
	serviceRepo "portal/database/repository/service"
	"portal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ serviceRepo.ServiceRepository   = (*ServiceRepo)(nil)
	_ reviewRepo.ReviewRepository     = (*ReviewRepo)(nil)
	_ categoryRepo.CategoryRepository = (*CategoryRepo)(nil)
)

// ServiceRepo keeps services in insertion order.
type ServiceRepo struct {
	mu    sync.Mutex
	items []models.Service
	Err   error // returned by every call when set
}

func NewServiceRepo(seed ...models.Service) *ServiceRepo {
	r := &ServiceRepo{}
	for i := range seed {
		s := seed[i]
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		r.items = append(r.items, s)
	}
	return r
}

func (r *ServiceRepo) Create(_ context.Context, service *models.Service) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return primitive.NilObjectID, r.Err
	}
	now := time.Now().UTC()
	service.ID = primitive.NewObjectID()
	service.CreatedAt, service.UpdatedAt = now, now
	r.items = append(r.items, *service)
	return service.ID, nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.index(id)
	if err != nil {
		return nil, err
	}
	s := r.items[i]
	return &s, nil
}

func (r *ServiceRepo) List(_ context.Context, limit int64) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := append([]models.Service(nil), r.items...)
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ServiceRepo) ListByOwner(_ context.Context, email string) ([]models.Service, error) {
	return r.filter(func(s models.Service) bool { return s.UserEmail == email })
}

func (r *ServiceRepo) Search(_ context.Context, q models.ServiceQuery) ([]models.Service, error) {
	term := strings.ToLower(q.Search)
	return r.filter(func(s models.Service) bool {
		if term != "" && !strings.Contains(strings.ToLower(s.Title), term) {
			return false
		}
		return q.Category == "" || s.Category == q.Category
	})
}

func (r *ServiceRepo) Update(_ context.Context, id string, u models.ServiceUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.index(id)
	if err != nil {
		return err
	}
	s := &r.items[i]
	s.Title, s.CompanyName, s.Price, s.Category, s.Website = u.Title, u.CompanyName, u.Price, u.Category, u.Website
	if u.Description != nil {
		s.Description = *u.Description
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *ServiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.index(id)
	if err != nil {
		return err
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *ServiceRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), r.Err
}

func (r *ServiceRepo) CountOwners(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owners := map[string]struct{}{}
	for _, s := range r.items {
		if s.UserEmail != "" {
			owners[s.UserEmail] = struct{}{}
		}
	}
	return int64(len(owners)), r.Err
}

func (r *ServiceRepo) filter(keep func(models.Service) bool) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.Service
	for _, s := range r.items {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

// index must be called with mu held.
func (r *ServiceRepo) index(id string) (int, error) {
	if r.Err != nil {
		return -1, r.Err
	}
	oid, err := repository.ParseID(id)
	if err != nil {
		return -1, err
	}
	for i, s := range r.items {
		if s.ID == oid {
			return i, nil
		}
	}
	return -1, fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
}

// ReviewRepo keeps reviews in insertion order.
type ReviewRepo struct {
	mu    sync.Mutex
	items []models.Review
	Err   error
}

func NewReviewRepo(seed ...models.Review) *ReviewRepo {
	r := &ReviewRepo{}
	for i := range seed {
		rv := seed[i]
		if rv.ID.IsZero() {
			rv.ID = primitive.NewObjectID()
		}
		r.items = append(r.items, rv)
	}
	return r
}

func (r *ReviewRepo) Create(_ context.Context, review *models.Review) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return primitive.NilObjectID, r.Err
	}
	now := time.Now().UTC()
	review.ID = primitive.NewObjectID()
	review.CreatedAt, review.UpdatedAt = now, now
	r.items = append(r.items, *review)
	return review.ID, nil
}

func (r *ReviewRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.index(id)
	if err != nil {
		return nil, err
	}
	rv := r.items[i]
	return &rv, nil
}

func (r *ReviewRepo) ListByReviewer(_ context.Context, email string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.ReviewerEmail == email })
}

func (r *ReviewRepo) ListByService(_ context.Context, serviceID string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.ServiceID == serviceID })
}

func (r *ReviewRepo) Update(_ context.Context, id string, u models.ReviewUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.index(id)
	if err != nil {
		return err
	}
	rv := &r.items[i]
	if u.Rating != nil {
		rv.Rating = *u.Rating
	}
	if u.Text != nil {
		rv.Text = *u.Text
	}
	rv.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *ReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, err := r.index(id)
	if err != nil {
		return err
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *ReviewRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), r.Err
}

func (r *ReviewRepo) filter(keep func(models.Review) bool) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.Review
	for _, rv := range r.items {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *ReviewRepo) index(id string) (int, error) {
	if r.Err != nil {
		return -1, r.Err
	}
	oid, err := repository.ParseID(id)
	if err != nil {
		return -1, err
	}
	for i, rv := range r.items {
		if rv.ID == oid {
			return i, nil
		}
	}
	return -1, fmt.Errorf("review %s: %w", id, repository.ErrNotFound)
}

// CategoryRepo serves a fixed category list.
type CategoryRepo struct {
	Items []models.Category
	Err   error
}

func (r *CategoryRepo) List(context.Context) ([]models.Category, error) {
	return r.Items, r.Err
}
