package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea de detalle de una factura.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	ProductID   string
	CompanyID   string // Unidad de negocio dueña de la línea; va en profitUnit
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal // Sin IVA
	Discount    decimal.Decimal // Porcentaje; 0 = sin descuento
	AccountID   string          // Cuenta contable; va en bookkeepingAccount
	AnalyticID  string          // Cuenta analítica / proyecto; va en project
}
