package entity

import "time"

// Company representa la empresa emisora de las facturas.
//
// Los campos Inkasso* son la configuración del integrador Inkassogram:
// se leen en el momento del envío y nunca se mutan desde el flujo de envío.
type Company struct {
	ID      string
	Name    string
	Address string
	Phone   string
	Email   string

	InkassoCustNumber string // Número de cliente asignado por Inkassogram
	InkassoCustKey    string // Clave secreta compartida (entra en el hash MD5)
	InkassoPublicIP   string // IP pública registrada ante Inkassogram
	InkassoTestMode   bool   // true = testInvoice en el request

	CreatedAt time.Time
	UpdatedAt time.Time
}
