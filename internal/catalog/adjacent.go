package catalog

import "github.com/nikolayk812/figurestore/internal/domain"

// Adjacent returns the products before and after id, wrapping around at both ends.
func Adjacent(products []domain.Product, id int64) (prev, next domain.Product, err error) {
	for i, p := range products {
		if p.ID != id {
			continue
		}

		n := len(products)
		return products[(i-1+n)%n], products[(i+1)%n], nil
	}

	return domain.Product{}, domain.Product{}, domain.ErrProductNotFound
}
