package brands

// Brand is a product brand within a category.
type Brand struct {
	ID            int64  `json:"id_marca,omitempty"`
	Name          string `json:"nombre" validate:"required"`
	CategoryID    int64  `json:"id_categoria" validate:"required"`
	CountryOrigin string `json:"pais_origen,omitempty"`
	ImageURL      string `json:"imagen_url,omitempty"`
	Status        string `json:"estado"`
}
