package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field campo del borrador que no pasó la validación.
	Field string `json:"field,omitempty"`
	// BlockedBy comprobante que impide la operación sobre la factura.
	BlockedBy *DocumentRef `json:"blocked_by,omitempty"`
}

// DocumentRef referencia mínima a un comprobante.
type DocumentRef struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Type   string `json:"type,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
