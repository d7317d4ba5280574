package customers

import "strings"

// Customer is a retail client identified by RUC or cédula.
type Customer struct {
	ID          int64  `json:"id_cliente,omitempty"`
	TaxID       string `json:"ruc_cedula" validate:"required"`
	FirstName   string `json:"nombre1" validate:"required"`
	MiddleName  string `json:"nombre2,omitempty"`
	LastName    string `json:"apellido1" validate:"required"`
	SecondLast  string `json:"apellido2,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"telefono,omitempty"`
	Address     string `json:"direccion,omitempty"`
	CityID      string `json:"id_ciudad,omitempty"`
}

// FullName joins the non-empty name parts.
func (c Customer) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName, c.SecondLast} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
