package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP del envío a Inkassogram (protegido).
type InvoiceHandler struct {
	orchestrator *billing.InkassoOrchestrator
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(orchestrator *billing.InkassoOrchestrator) *InvoiceHandler {
	return &InvoiceHandler{orchestrator: orchestrator}
}

// SendToInkasso envía un lote de facturas a Inkassogram.
// POST /api/invoices/inkasso
func (h *InvoiceHandler) SendToInkasso(c *fiber.Ctx) error {
	if GetCompanyID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SendToInkassoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.InvoiceIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoice_ids requerido"})
	}
	return h.send(c, in.InvoiceIDs)
}

// SendOneToInkasso envía una sola factura a Inkassogram.
// POST /api/invoices/:id/inkasso
func (h *InvoiceHandler) SendOneToInkasso(c *fiber.Ctx) error {
	if GetCompanyID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	return h.send(c, []string{id})
}

func (h *InvoiceHandler) send(c *fiber.Ctx, ids []string) error {
	sent, err := h.orchestrator.SendToInkasso(c.Context(), ids)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrTransport):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "TRANSPORT", Message: err.Error()})
		case errors.Is(err, domain.ErrProtocol):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PROTOCOL", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	out := dto.SendToInkassoResponse{Sent: make([]dto.InvoiceStatusResponse, len(sent))}
	for i, inv := range sent {
		out.Sent[i] = dto.InvoiceStatusResponse{
			ID:          inv.ID,
			Number:      inv.Number,
			State:       inv.State,
			InkassoCode: inv.InkassoCode,
		}
	}
	return c.JSON(out)
}

// GetByID obtiene una factura con sus líneas (estado Inkasso y payload incluidos).
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	if GetCompanyID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	inv, lines, err := h.orchestrator.GetInvoice(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toInvoiceResponse(inv, lines))
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine) dto.InvoiceResponse {
	out := dto.InvoiceResponse{
		ID:          inv.ID,
		CompanyID:   inv.CompanyID,
		CustomerID:  inv.CustomerID,
		Number:      inv.Number,
		Origin:      inv.Origin,
		Date:        inv.Date.Format("2006-01-02"),
		State:       inv.State,
		InkassoCode: inv.InkassoCode,
		XMLData:     inv.XMLData,
		Lines:       make([]dto.InvoiceLineResponse, len(lines)),
	}
	if inv.DueDate != nil {
		out.DueDate = inv.DueDate.Format("2006-01-02")
	}
	for i, l := range lines {
		out.Lines[i] = dto.InvoiceLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
		}
	}
	return out
}
