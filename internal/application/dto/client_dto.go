package dto

// ClientRequest body para POST/PUT /clientes. Todos los campos obligatorios se reemplazan en PUT.
type ClientRequest struct {
	DNI       int64   `json:"dni"`
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        int64   `json:"id"`
	DNI       int64   `json:"dni"`
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
}
