package dto

import "github.com/shopspring/decimal"

// SendToInkassoRequest body para POST /api/invoices/inkasso (envío por lote).
type SendToInkassoRequest struct {
	InvoiceIDs []string `json:"invoice_ids"`
}

// SendToInkassoResponse resultado del envío.
type SendToInkassoResponse struct {
	Sent []InvoiceStatusResponse `json:"sent"`
}

// InvoiceStatusResponse estado Inkassogram de una factura.
type InvoiceStatusResponse struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	State       string `json:"state"`
	InkassoCode string `json:"inkasso_code,omitempty"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID          string                `json:"id"`
	CompanyID   string                `json:"company_id"`
	CustomerID  string                `json:"customer_id"`
	Number      string                `json:"number"`
	Origin      string                `json:"origin,omitempty"`
	Date        string                `json:"date"`
	DueDate     string                `json:"due_date,omitempty"`
	State       string                `json:"state"`
	InkassoCode string                `json:"inkasso_code,omitempty"`
	XMLData     string                `json:"xml_data,omitempty"` // Último payload enviado (auditoría)
	Lines       []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea de factura en la respuesta.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// InkassoSettingsRequest body para PUT /api/companies/:id/inkasso.
type InkassoSettingsRequest struct {
	CustNumber string `json:"cust_number"`
	CustKey    string `json:"cust_key"`
	PublicIP   string `json:"public_ip,omitempty"`
	TestMode   bool   `json:"test_mode"`
}
