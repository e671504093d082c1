package entity

import "time"

// Product representa un producto identificado por su código externo único (EAN, SKU...).
// La identidad es el Code; una vez creado no se modifica.
type Product struct {
	ID        string
	Code      string
	CreatedAt time.Time
}

// String devuelve el código, suficiente para mensajes de error y logs.
func (p *Product) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.Code
}
