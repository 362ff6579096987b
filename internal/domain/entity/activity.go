package entity

import "time"

// Eventos registrados en la actividad de usuarios.
const (
	ActivityLogin  = "login"
	ActivityLogout = "logout"
)

// UserActivity registro de ingreso/salida de un usuario.
type UserActivity struct {
	ID              string
	UserID          string
	Username        string
	Event           string
	IP              string
	UserAgent       string
	DurationSeconds *int64 // sólo en logout, desde el último login
	CreatedAt       time.Time
}
