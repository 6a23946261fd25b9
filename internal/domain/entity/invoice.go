package entity

import "time"

// Estados del ciclo de vida de la factura. Este módulo solo transiciona
// hacia StatusInkasso (aceptada por Inkassogram) o StatusError.
const (
	StatusDraft     = "draft"     // Factura nueva sin confirmar
	StatusProforma  = "proforma"  // Sin número de factura asignado
	StatusProforma2 = "proforma2" // Variante pro-forma (compatibilidad)
	StatusOpen      = "open"      // Numerada, pendiente de pago
	StatusInkasso   = "inkasso"   // Enviada y aceptada por Inkassogram
	StatusError     = "error"     // Inkassogram rechazó el envío
	StatusPaid      = "paid"      // Pagada
	StatusCancel    = "cancel"    // Cancelada
)

// Invoice representa la cabecera de una factura.
//
// InkassoCode y XMLData los escribe únicamente el flujo de envío a Inkassogram:
// InkassoCode guarda el último statusCode/errorCode recibido del API y
// XMLData el último payload XML enviado (auditoría), incluso si el envío falló.
type Invoice struct {
	ID          string
	CompanyID   string
	CustomerID  string
	Number      string // Número de factura (vacío en pro-forma)
	Origin      string // Documento origen (pedido, contrato); va en invoiceRef
	Comment     string // Nota libre; va en comments
	Date        time.Time
	DueDate     *time.Time // nil = sin vencimiento; el XML omite dueDate
	State       string     // ver constantes Status*
	InkassoCode string
	XMLData     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
