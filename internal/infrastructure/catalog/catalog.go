package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/shopfront/backend/internal/domain/shop"
)

// FileCatalog serves the product list from a JSON file loaded at
// startup. Reload swaps the whole product set atomically, so readers
// never observe a partially applied file.
type FileCatalog struct {
	path string

	mu       sync.RWMutex
	products map[int]shop.Product
	ordered  []shop.Product
}

// NewFileCatalog loads the catalog from the given JSON file.
func NewFileCatalog(path string) (*FileCatalog, error) {
	c := &FileCatalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the catalog file and replaces the in-memory product
// set. On error the previous set is kept.
func (c *FileCatalog) Reload() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read catalog file %s: %w", c.path, err)
	}

	var items []shop.Product
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parse catalog file %s: %w", c.path, err)
	}

	products := make(map[int]shop.Product, len(items))
	for _, p := range items {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("catalog file %s: product %d: %w", c.path, p.ID, err)
		}
		if _, ok := products[p.ID]; ok {
			return fmt.Errorf("catalog file %s: duplicate product id %d", c.path, p.ID)
		}
		products[p.ID] = p
	}

	ordered := make([]shop.Product, 0, len(products))
	for _, p := range products {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	c.mu.Lock()
	c.products = products
	c.ordered = ordered
	c.mu.Unlock()
	return nil
}

// Get returns the product with the given id.
func (c *FileCatalog) Get(id int) (shop.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return shop.Product{}, shop.ErrProductNotFound
	}
	return p, nil
}

// Products returns all products ordered by id.
func (c *FileCatalog) Products() []shop.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]shop.Product, len(c.ordered))
	copy(out, c.ordered)
	return out
}
