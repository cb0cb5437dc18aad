package dto

// RegisterRequest entrada para POST /usuarios (password en texto, se hashea en el use case).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=45"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
}

// LoginRequest formulario OAuth2 "password" de POST /token.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// TokenResponse salida de POST /token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
