package paymentmethods

// Method is a payment method and the channels it is offered on.
type Method struct {
	ID                int64  `json:"id_metodo_pago,omitempty"`
	Code              string `json:"codigo" validate:"required"`
	Name              string `json:"nombre" validate:"required"`
	AvailablePOS      bool   `json:"disponible_pos"`
	AvailableWeb      bool   `json:"disponible_web"`
	RequiresReference bool   `json:"requiere_referencia"`
	Status            string `json:"estado"`
}
