package catalog

import (
	"context"
	"sort"
	"sync"

	"inventory/models"

	"github.com/google/uuid"
)

// --- Mock Stores ---

type mockCategoryStore struct {
	mu      sync.Mutex
	byID    map[string]models.Category
	Err     error
	updated *models.Category
	deleted []string
	creates int
}

func newMockCategoryStore(categories ...models.Category) *mockCategoryStore {
	m := &mockCategoryStore{byID: make(map[string]models.Category)}
	for _, c := range categories {
		m.byID[c.ID] = c
	}
	return m
}

func (m *mockCategoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Category, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCategoryStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.byID[id]
	if !ok {
		return nil, models.ErrCategoryNotFound
	}
	return &c, nil
}

func (m *mockCategoryStore) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.byID {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *mockCategoryStore) CreateCategory(ctx context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	c.ID = uuid.NewString()
	m.byID[c.ID] = *c
	m.creates++
	return nil
}

func (m *mockCategoryStore) UpdateCategory(ctx context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[c.ID]; !ok {
		return models.ErrCategoryNotFound
	}
	m.byID[c.ID] = *c
	m.updated = c
	return nil
}

func (m *mockCategoryStore) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCategoryStore) CountCategories(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.byID)), nil
}

type mockProductStore struct {
	mu      sync.Mutex
	byID    map[string]models.Product
	Err     error
	deleted []string
}

func newMockProductStore(products ...models.Product) *mockProductStore {
	m := &mockProductStore{byID: make(map[string]models.Product)}
	for _, p := range products {
		m.byID[p.ID] = p
	}
	return m
}

func (m *mockProductStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockProductStore) ListProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	all, err := m.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	for _, p := range all {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.byID[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductStore) CreateProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p.ID = uuid.NewString()
	m.byID[p.ID] = *p
	return nil
}

func (m *mockProductStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return models.ErrProductNotFound
	}
	m.byID[p.ID] = *p
	return nil
}

func (m *mockProductStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockProductStore) CountProducts(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.byID)), nil
}
