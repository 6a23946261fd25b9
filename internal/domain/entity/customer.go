package entity

import "time"

// Customer representa el cliente deudor de la factura.
// Inkassogram exige móvil, email, SSN/TIN y dos líneas de dirección.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // SSN/TIN; va en el elemento ssn del request
	Email     string
	Mobile    string
	Street    string
	Street2   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
