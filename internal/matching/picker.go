package matching

import (
	"errors"

	"github.com/inma-labs/inma-matcher/internal/inma"
)

var ErrUnknownProduct = errors.New("product is not in the loaded list")

// Picker tracks the single current product selection. The selection is
// ephemeral workflow state and is never persisted.
type Picker struct {
	products *inma.Products
	current  *inma.Product
}

func NewPicker(products *inma.Products) *Picker {
	return &Picker{products: products}
}

// Select sets the current selection to the product with the given id.
// Selecting the already selected product is a no-op.
func (p *Picker) Select(id string) (*inma.Product, error) {
	product := p.products.FindByID(id)
	if product == nil {
		return nil, ErrUnknownProduct
	}

	if p.current != nil && p.current.ID == product.ID {
		return p.current, nil
	}

	p.current = product
	return product, nil
}

func (p *Picker) Current() *inma.Product {
	return p.current
}

func (p *Picker) HasSelection() bool {
	return p.current != nil
}
