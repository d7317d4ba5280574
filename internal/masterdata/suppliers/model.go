package suppliers

// Supplier provides the products bought through purchase orders.
type Supplier struct {
	ID          int64  `json:"id_proveedor,omitempty"`
	Name        string `json:"nombre" validate:"required"`
	RUC         string `json:"ruc" validate:"required"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"telefono,omitempty"`
	Address     string `json:"direccion,omitempty"`
	CityID      string `json:"id_ciudad,omitempty"`
	ContactName string `json:"nombre_contacto,omitempty"`
	Status      string `json:"estado"`
}
