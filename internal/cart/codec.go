package cart

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/figurestore/internal/domain"
)

type snapshotLine struct {
	Product  snapshotProduct `json:"product"`
	Quantity int             `json:"quantity"`
}

type snapshotProduct struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"`
}

func encodeLines(lines []domain.CartLine) ([]byte, error) {
	dto := make([]snapshotLine, 0, len(lines))

	for _, l := range lines {
		dto = append(dto, snapshotLine{
			Product: snapshotProduct{
				ID:          l.Product.ID,
				Name:        l.Product.Name,
				Description: l.Product.Description,
				Price:       l.Product.Price,
				Image:       l.Product.Image,
				Stock:       l.Product.Stock,
			},
			Quantity: l.Quantity,
		})
	}

	return json.Marshal(dto)
}

func decodeLines(payload []byte) ([]domain.CartLine, error) {
	var dto []snapshotLine
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	lines := make([]domain.CartLine, 0, len(dto))
	seen := make(map[int64]struct{}, len(dto))

	for i, l := range dto {
		if l.Product.ID <= 0 {
			return nil, fmt.Errorf("line[%d]: product id[%d] is not positive", i, l.Product.ID)
		}
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("line[%d]: quantity[%d] is not positive", i, l.Quantity)
		}
		if _, ok := seen[l.Product.ID]; ok {
			return nil, fmt.Errorf("line[%d]: product id[%d] is duplicated", i, l.Product.ID)
		}
		seen[l.Product.ID] = struct{}{}

		lines = append(lines, domain.CartLine{
			Product: domain.Product{
				ID:          l.Product.ID,
				Name:        l.Product.Name,
				Description: l.Product.Description,
				Price:       l.Product.Price,
				Image:       l.Product.Image,
				Stock:       l.Product.Stock,
			},
			Quantity: l.Quantity,
		})
	}

	return lines, nil
}
