package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.State == "" {
		invoice.State = entity.StatusDraft
	}
	query := `
		INSERT INTO invoices (id, company_id, customer_id, number, origin, comment, date, due_date, state, inkasso_code, xml_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID,
		nullIfEmpty(invoice.Number), nullIfEmpty(invoice.Origin), nullIfEmpty(invoice.Comment),
		invoice.Date, invoice.DueDate, invoice.State,
		nullIfEmpty(invoice.InkassoCode), nullIfEmpty(invoice.XMLData),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("el número de factura ya existe: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de factura.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_lines (id, invoice_id, product_id, company_id, description, quantity, unit_price, discount, account_id, analytic_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, nullIfEmpty(line.CompanyID),
		line.Description, line.Quantity, line.UnitPrice, line.Discount,
		nullIfEmpty(line.AccountID), nullIfEmpty(line.AnalyticID),
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve nil sin error si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, company_id, customer_id, COALESCE(number, ''), COALESCE(origin, ''), COALESCE(comment, ''),
		       date, due_date, state, COALESCE(inkasso_code, ''), COALESCE(xml_data, ''), created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Origin, &inv.Comment,
		&inv.Date, &inv.DueDate, &inv.State, &inv.InkassoCode, &inv.XMLData,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetLinesByInvoiceID obtiene las líneas de una factura en orden de inserción.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, product_id, COALESCE(company_id, ''), description, quantity, unit_price, discount,
		       COALESCE(account_id, ''), COALESCE(analytic_id, '')
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.ProductID, &l.CompanyID, &l.Description,
			&l.Quantity, &l.UnitPrice, &l.Discount, &l.AccountID, &l.AnalyticID,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateInkasso actualiza de forma atómica los campos que escribe el flujo de
// envío a Inkassogram: state, inkasso_code, xml_data y updated_at.
func (r *InvoiceRepo) UpdateInkasso(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET state        = $2,
		    inkasso_code = $3,
		    xml_data     = $4,
		    updated_at   = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.State,
		nullIfEmpty(invoice.InkassoCode), nullIfEmpty(invoice.XMLData),
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice inkasso: %w", err)
	}
	return nil
}
