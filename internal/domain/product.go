package domain

// Product is a catalog entry. Stock is the only field mutated after seeding.
type Product struct {
	ID          int64
	Name        string
	Description string
	// Price in minor currency units.
	Price int64
	Image string
	Stock int
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// StockDecrement is a single step of a checkout commit.
type StockDecrement struct {
	ProductID int64
	Quantity  int
}
