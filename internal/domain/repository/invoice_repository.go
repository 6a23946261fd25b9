package repository

import "github.com/jhoicas/Facturacion-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// La implementación vive en infrastructure.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	// UpdateInkasso actualiza de forma atómica los campos que escribe el flujo
	// de envío: state, inkasso_code, xml_data y updated_at.
	UpdateInkasso(invoice *entity.Invoice) error
}
