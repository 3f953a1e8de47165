package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"item-finder-be/internal/entity"
	"item-finder-be/internal/repository/specification"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("connection refused")

// fakeCategoryRepo keeps rows in insertion order (oldest first) and
// interprets the lookup specifications the services actually use.
type fakeCategoryRepo struct {
	mu          sync.Mutex
	rows        []entity.Category
	failing     bool
	insertCalls int
	updateCalls int
}

func newFakeCategoryRepo(rows ...entity.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{}
	now := time.Now()
	for i, row := range rows {
		if row.Id == uuid.Nil {
			row.Id = uuid.New()
		}
		row.CreatedAt = now.Add(time.Duration(i) * time.Second)
		repo.rows = append(repo.rows, row)
	}
	return repo
}

func (r *fakeCategoryRepo) InsertIfAbsent(ctx context.Context, category *entity.Category) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertCalls++
	if r.failing {
		return false, errStoreDown
	}
	for _, row := range r.rows {
		if row.Category == category.Category {
			return false, nil
		}
	}
	category.Id = uuid.New()
	r.rows = append(r.rows, *category)
	return true, nil
}

func (r *fakeCategoryRepo) UpdateAisle(ctx context.Context, category, aisle string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.failing {
		return 0, errStoreDown
	}
	var affected int64
	for i := range r.rows {
		if r.rows[i].Category == category {
			r.rows[i].Aisle = aisle
			affected++
		}
	}
	return affected, nil
}

func (r *fakeCategoryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errStoreDown
	}
	for _, row := range r.rows {
		if matchesSpecs(row, specs) {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errStoreDown
	}
	out := make([]*entity.Category, 0, len(r.rows))
	for _, row := range r.rows {
		if matchesSpecs(row, specs) {
			found := row
			out = append(out, &found)
		}
	}

	// Rows are kept oldest first; ordering and limiting apply afterwards.
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			if s.Desc {
				for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
					out[i], out[j] = out[j], out[i]
				}
			}
		case specification.Limit:
			if s.N < len(out) {
				out = out[:s.N]
			}
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func matchesSpecs(row entity.Category, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.CategoryContains:
			category := strings.ToLower(row.Category)
			fragment := strings.ToLower(s.Fragment)
			if !strings.Contains(category, fragment) && !strings.Contains(fragment, category) {
				return false
			}
		case specification.ByCategory:
			if row.Category != s.Category {
				return false
			}
		case specification.ByID:
			if row.Id != s.ID {
				return false
			}
		case specification.CategoryIn:
			found := false
			for _, c := range s.Categories {
				if row.Category == c {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeVisionProvider maps image payloads (as strings) to canned candidates.
type fakeVisionProvider struct {
	responses map[string][]entity.ProductCandidate
	errs      map[string]error
}

func (p *fakeVisionProvider) ExtractProducts(ctx context.Context, image []byte, mimeType string) ([]entity.ProductCandidate, error) {
	key := string(image)
	if err, ok := p.errs[key]; ok {
		return nil, err
	}
	return p.responses[key], nil
}
