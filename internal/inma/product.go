package inma

const ProductsPath = "/products"

type Products struct {
	Items []*Product
}

// Product is a single entry of the backend product catalog. Price is kept as
// scraped, the backend does not normalize it.
type Product struct {
	ID    string `json:"_id,omitempty"`
	Title string `json:"title,omitempty"`
	Brand string `json:"brand,omitempty"`
	Price string `json:"price,omitempty"`
	URL   string `json:"url,omitempty"`
}

// GetProducts returns the full product catalog. The backend sends the whole
// list in one response, there is no pagination.
func (c *Client) GetProducts() (*Products, error) {
	var items []interface{}
	if err := c.getJSON(ProductsPath, nil, &items); err != nil {
		return nil, err
	}

	var products []*Product
	if err := decodeItems(items, &products); err != nil {
		return nil, err
	}

	return &Products{
		Items: products,
	}, nil
}

func (p *Products) Len() int {
	return len(p.Items)
}

func (p *Products) FindByID(id string) *Product {
	for _, product := range p.Items {
		if product.ID == id {
			return product
		}
	}
	return nil
}

func (p *Products) Titles() []string {
	titles := make([]string, 0, len(p.Items))

	for _, product := range p.Items {
		titles = append(titles, product.Title)
	}

	return titles
}
