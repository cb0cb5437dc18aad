package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con un mensaje para el usuario.
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}
