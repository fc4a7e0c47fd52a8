package seed

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"revivedgoods/internal/domain"
)

// defaultProducts is the sample catalog a new profile starts with.
// Ids are fixed so two fresh profiles hold the same catalog.
var defaultProducts = []domain.Product{
	{ID: "id_chair01", Title: "Vintage Wooden Chair", Images: []string{"https://picsum.photos/seed/chair/800/600"}, Price: 2500, Category: "Furniture", Condition: domain.Vintage, Type: domain.Sell, Description: "Solid teak, great patina."},
	{ID: "id_phone11", Title: "Used iPhone 11", Images: []string{"https://picsum.photos/seed/phone/800/600"}, Price: 12000, Category: "Electronics", Condition: domain.Good, Type: domain.Sell, Description: "Battery 85%."},
	{ID: "id_books01", Title: "Box of Books", Images: []string{"https://picsum.photos/seed/books/800/600"}, Price: 0, Category: "Books", Condition: domain.Good, Type: domain.Donate, Description: "Assorted fiction."},
	{ID: "id_shoes08", Title: "Nike Running Shoes", Images: []string{"https://picsum.photos/seed/shoes/800/600"}, Price: 2500, Category: "Fashion", Condition: domain.LikeNew, Type: domain.Sell, Description: "Lightly used, size 8."},
}

// Catalog is the set of products new profiles are seeded with.
type Catalog struct {
	products []domain.Product
}

// Default returns the built-in sample catalog.
func Default() *Catalog {
	return &Catalog{products: defaultProducts}
}

type file struct {
	Products []domain.Product `yaml:"products"`
}

// LoadFile reads a YAML catalog. Products without an id get one.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	seen := make(map[string]bool, len(f.Products))
	for i := range f.Products {
		p := &f.Products[i]
		if strings.TrimSpace(p.ID) == "" {
			p.ID = NewID()
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id in seed file: %s", p.ID)
		}
		seen[p.ID] = true
		if !p.Condition.Valid() {
			p.Condition = domain.Good
		}
		if !p.Type.Valid() {
			p.Type = domain.Sell
		}
		if p.Type == domain.Donate || p.Price < 0 {
			p.Price = 0
		}
	}
	return &Catalog{products: f.Products}, nil
}

// State is the default state: the catalog and empty cart, saved and wishlist.
func (c *Catalog) State() domain.State {
	return domain.State{Products: c.products}.Clone()
}

// NewID returns an opaque product id.
func NewID() string {
	return "id_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
