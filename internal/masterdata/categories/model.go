package categories

// Category groups products and brands. It is switched off through the
// boolean activo flag rather than an estado code.
type Category struct {
	ID          int64  `json:"id_categoria,omitempty"`
	Name        string `json:"nombre" validate:"required"`
	Description string `json:"descripcion,omitempty"`
	Active      bool   `json:"activo"`
}
