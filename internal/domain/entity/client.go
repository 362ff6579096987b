package entity

import "time"

// PlaceholderClientCode es el código centinela de "cliente sin seleccionar".
// Un comprobante nunca puede emitirse contra él.
const PlaceholderClientCode = "INDICAR"

// Client representa un cliente del padrón. Code es único e inmutable tras la creación.
// Los campos *2 corresponden a un cotitular opcional.
type Client struct {
	ID        string
	Code      string
	Name      string
	Phone     string
	Email     string
	Address   string
	City      string
	Name2     string
	Phone2    string
	Email2    string
	Address2  string
	City2     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPlaceholder indica si el cliente no es uno concreto y persistido.
func (c *Client) IsPlaceholder() bool {
	return c == nil || c.ID == "" || c.Name == "" || c.Code == PlaceholderClientCode
}
