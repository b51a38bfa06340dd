package auth

// Claims representa el usuario de la sesión, tal como lo devuelve el auth hosteado.
type Claims struct {
	UserID string
	Email  string
	Role   string // rol del proveedor ("authenticated"); no es el rol admin del portal
}
