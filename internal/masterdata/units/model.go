package units

// Unit is a unit of measure from the read-only catalog.
type Unit struct {
	ID           int64  `json:"id_unidad_medida"`
	Name         string `json:"nombre"`
	Abbreviation string `json:"abreviatura"`
}
