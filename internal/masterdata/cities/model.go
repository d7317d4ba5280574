package cities

// City is identified by a three-letter code such as "UIO".
type City struct {
	ID          string `json:"id_ciudad" validate:"required"`
	Description string `json:"descripcion" validate:"required"`
}
