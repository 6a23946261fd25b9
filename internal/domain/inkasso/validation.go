// Package inkasso contiene las reglas de dominio del envío a Inkassogram:
// qué datos debe tener una factura antes de poder transmitirse al API.
package inkasso

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoiceContext agrupa una factura con los registros relacionados que el
// flujo de envío necesita leer (empresa, cliente y líneas).
type InvoiceContext struct {
	Invoice  *entity.Invoice
	Company  *entity.Company
	Customer *entity.Customer
	Lines    []*entity.InvoiceLine
}

// ValidateBatch comprueba los requisitos de Inkassogram sobre todas las
// facturas del lote y acumula todas las violaciones (no corta en la primera).
// Si existe al menos una violación, el lote completo se rechaza con
// domain.ErrValidation y el mensaje agregado; ninguna factura se envía.
// No tiene efectos secundarios.
func ValidateBatch(items []*InvoiceContext) error {
	var errs []error
	for _, it := range items {
		errs = append(errs, validateOne(it)...)
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrValidation}, errs...)...)
	}
	return nil
}

func validateOne(it *InvoiceContext) []error {
	var errs []error
	inv, company, customer := it.Invoice, it.Company, it.Customer

	label := inv.Number
	if label == "" {
		label = inv.ID
		errs = append(errs, fmt.Errorf("factura %s: no tiene número de factura", inv.ID))
	}
	if company.InkassoCustNumber == "" {
		errs = append(errs, fmt.Errorf("factura %s: la empresa %s no tiene número de cliente Inkassogram configurado", label, company.Name))
	}
	if company.InkassoCustKey == "" {
		errs = append(errs, fmt.Errorf("factura %s: la empresa %s no tiene clave de cliente Inkassogram configurada", label, company.Name))
	}
	if customer.Mobile == "" {
		errs = append(errs, fmt.Errorf("factura %s: el cliente %s no tiene número de móvil", label, customer.Name))
	}
	if customer.TaxID == "" {
		errs = append(errs, fmt.Errorf("factura %s: el cliente %s no tiene SSN/TIN", label, customer.Name))
	}
	if customer.Email == "" {
		errs = append(errs, fmt.Errorf("factura %s: el cliente %s no tiene email", label, customer.Name))
	}
	if len(it.Lines) == 0 {
		errs = append(errs, fmt.Errorf("factura %s: no tiene líneas de factura", label))
	}
	if customer.Street == "" {
		errs = append(errs, fmt.Errorf("factura %s: el cliente %s no tiene dirección (street)", label, customer.Name))
	}
	if customer.Street2 == "" {
		errs = append(errs, fmt.Errorf("factura %s: el cliente %s no tiene segunda línea de dirección (street2)", label, customer.Name))
	}
	for _, line := range it.Lines {
		if line.Description == "" {
			errs = append(errs, fmt.Errorf("factura %s, línea %s: no tiene descripción", label, line.ID))
		}
		if line.UnitPrice.IsZero() {
			errs = append(errs, fmt.Errorf("factura %s, línea %s: no tiene precio", label, line.ID))
		}
	}
	return errs
}
