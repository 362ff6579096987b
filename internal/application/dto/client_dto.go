package dto

import "time"

// ClientRequest body para POST/PUT /api/clients. En PUT, Code debe omitirse o coincidir.
type ClientRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Name2    string `json:"name2,omitempty"`
	Phone2   string `json:"phone2,omitempty"`
	Email2   string `json:"email2,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City2    string `json:"city2,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Name2     string    `json:"name2,omitempty"`
	Phone2    string    `json:"phone2,omitempty"`
	Email2    string    `json:"email2,omitempty"`
	Address2  string    `json:"address2,omitempty"`
	City2     string    `json:"city2,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImportRowError fila del padrón que no se pudo importar. Row cuenta desde 2 (la 1 es la cabecera).
type ImportRowError struct {
	Row     int    `json:"row"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ImportResult resumen de la importación del padrón.
type ImportResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}
