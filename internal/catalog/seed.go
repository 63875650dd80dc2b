package catalog

import "github.com/nikolayk812/figurestore/internal/domain"

const imageBaseURL = "https://dragonball-api.com/characters/"

// Seed returns a fresh copy of the fixed catalog, ordered by id.
func Seed() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Figura Goku",
			Description: "Figura de acción de Goku, con detalles precisos y alta calidad de materiales.",
			Price:       2999,
			Image:       imageBaseURL + "goku_normal.webp",
			Stock:       12,
		},
		{ID: 2, Name: "Figura de Piccolo", Price: 599, Image: imageBaseURL + "picolo_normal.webp", Stock: 8},
		{ID: 3, Name: "Figura de Freezer", Price: 1499, Image: imageBaseURL + "Freezer.webp", Stock: 5},
		{
			ID:          4,
			Name:        "Funko Pop! Vegeta",
			Description: "Figura coleccionable Funko Pop! de Vegeta en su pose característica.",
			Price:       399,
			Image:       imageBaseURL + "vegeta_normal.webp",
			Stock:       20,
		},
		{ID: 5, Name: "Figura de Gohan", Price: 349, Image: imageBaseURL + "gohan.webp", Stock: 15},
		{ID: 6, Name: "Figura de Krillin", Price: 249, Image: imageBaseURL + "Krilin_Universo7.webp", Stock: 10},
		{ID: 7, Name: "Figura de Android 17", Price: 2499, Image: imageBaseURL + "17_Artwork.webp", Stock: 3},
		{ID: 8, Name: "Figura de Bills", Price: 899, Image: imageBaseURL + "Beerus_DBS_Broly_Artwork.webp", Stock: 7},
		{ID: 9, Name: "Figura de Whis", Price: 7999, Image: imageBaseURL + "Whis_DBS_Broly_Artwork.webp", Stock: 2},
		{ID: 10, Name: "Figura de Zeno", Price: 2799, Image: imageBaseURL + "Zeno_Artwork.webp", Stock: 4},
		{ID: 11, Name: "Figura de Jiren", Price: 349, Image: imageBaseURL + "Jiren.webp", Stock: 9},
		{
			ID:          12,
			Name:        "Figura Majin Buu",
			Description: "Figura de Majin Buu con detalles precisos y acabado de alta calidad.",
			Price:       2599,
			Image:       imageBaseURL + "BuuGordo_Universo7.webp",
			Stock:       6,
		},
		{ID: 13, Name: "Figura de Marcarita", Price: 199, Image: imageBaseURL + "Marcarita.webp", Stock: 18},
		{ID: 14, Name: "Figura de Kaio-shin del Este", Price: 899, Image: imageBaseURL + "Kaio-shin_del_este_Artwork.webp", Stock: 11},
		{
			ID:          15,
			Name:        "Figura Cell",
			Description: "Figura de Cell en su forma perfecta, con base especial y efectos de energía.",
			Price:       2699,
			Image:       imageBaseURL + "celula.webp",
			Stock:       5,
		},
	}
}
