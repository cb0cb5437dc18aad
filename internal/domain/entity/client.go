package entity

// Client representa un cliente al que se le emiten facturas.
// DNI es único entre todos los clientes.
type Client struct {
	ID        int64
	DNI       int64
	Nombre    string
	Apellido  string
	Direccion *string // opcional
	Telefono  *string // opcional
}
