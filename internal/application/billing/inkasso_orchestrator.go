package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	dominkasso "github.com/jhoicas/Facturacion-api/internal/domain/inkasso"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	infrainkasso "github.com/jhoicas/Facturacion-api/internal/infrastructure/inkasso"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// InkassoOrchestrator orquesta el ciclo completo de envío a Inkassogram:
//
//	Validar lote → XML → persistir xml_data → POST → interpretar → actualizar estado
//
// El flujo es síncrono y secuencial: cada factura completa su ciclo (o falla)
// antes de que empiece la siguiente, en el orden recibido. No hay estado
// mutable compartido entre facturas más allá de sus propios campos.
type InkassoOrchestrator struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	xmlBuilder   *infrainkasso.XMLBuilderService
	sender       infrainkasso.Sender
	log          *logger.Logger
}

// NewInkassoOrchestrator construye el orquestador con todas sus dependencias.
func NewInkassoOrchestrator(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	xmlBuilder *infrainkasso.XMLBuilderService,
	sender infrainkasso.Sender,
	log *logger.Logger,
) *InkassoOrchestrator {
	return &InkassoOrchestrator{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		xmlBuilder:   xmlBuilder,
		sender:       sender,
		log:          log,
	}
}

// SendToInkasso envía el lote de facturas indicado a Inkassogram.
//
// Primero valida el lote completo: una sola violación en cualquier factura
// rechaza el lote con domain.ErrValidation sin hacer llamadas HTTP. Después,
// por cada factura: construye el XML, lo persiste en xml_data (antes de la
// llamada, para que el último intento quede auditable aunque falle), entrega
// el payload y aplica la respuesta sobre state e inkasso_code.
func (o *InkassoOrchestrator) SendToInkasso(ctx context.Context, invoiceIDs []string) ([]*entity.Invoice, error) {
	items, err := o.loadBatch(invoiceIDs)
	if err != nil {
		return nil, err
	}
	if err := dominkasso.ValidateBatch(items); err != nil {
		return nil, err
	}

	sent := make([]*entity.Invoice, 0, len(items))
	for _, it := range items {
		if err := o.sendOne(ctx, it); err != nil {
			return sent, err
		}
		sent = append(sent, it.Invoice)
	}
	return sent, nil
}

// loadBatch carga cada factura con su empresa, cliente y líneas.
func (o *InkassoOrchestrator) loadBatch(invoiceIDs []string) ([]*dominkasso.InvoiceContext, error) {
	items := make([]*dominkasso.InvoiceContext, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		inv, err := o.invoiceRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
		}
		company, err := o.companyRepo.GetByID(inv.CompanyID)
		if err != nil || company == nil {
			return nil, fmt.Errorf("%w: empresa %s de la factura %s", domain.ErrNotFound, inv.CompanyID, id)
		}
		customer, err := o.customerRepo.GetByID(inv.CustomerID)
		if err != nil || customer == nil {
			return nil, fmt.Errorf("%w: cliente %s de la factura %s", domain.ErrNotFound, inv.CustomerID, id)
		}
		lines, err := o.invoiceRepo.GetLinesByInvoiceID(id)
		if err != nil {
			return nil, err
		}
		items = append(items, &dominkasso.InvoiceContext{
			Invoice:  inv,
			Company:  company,
			Customer: customer,
			Lines:    lines,
		})
	}
	return items, nil
}

// sendOne ejecuta el ciclo completo para una factura ya validada.
func (o *InkassoOrchestrator) sendOne(ctx context.Context, it *dominkasso.InvoiceContext) error {
	inv := it.Invoice

	xmlBytes, err := o.xmlBuilder.Build(&infrainkasso.BuildContext{
		Invoice:  inv,
		Company:  it.Company,
		Customer: it.Customer,
		Lines:    o.enrichLines(it.Lines),
	})
	if err != nil {
		return fmt.Errorf("generar XML de la factura %s: %w", inv.Number, err)
	}

	// El payload se persiste antes de la llamada: si el transporte o la
	// respuesta fallan, el último intento sigue siendo inspeccionable.
	inv.XMLData = string(xmlBytes)
	inv.UpdatedAt = time.Now()
	if err := o.invoiceRepo.UpdateInkasso(inv); err != nil {
		return fmt.Errorf("persistir xml_data de la factura %s: %w", inv.Number, err)
	}

	body, err := o.sender.Send(ctx, xmlBytes, infrainkasso.Credentials{
		CustNumber: it.Company.InkassoCustNumber,
		CustKey:    it.Company.InkassoCustKey,
		PublicIP:   it.Company.InkassoPublicIP,
	})
	if err != nil {
		o.log.Error().Err(err).Str("invoice", inv.Number).Msg("envío a Inkassogram fallido")
		return err
	}

	res, err := infrainkasso.ParseResponse(body)
	if err != nil {
		// Envío indeterminado: el estado de la factura no se toca.
		o.log.Error().Err(err).Str("invoice", inv.Number).Msg("respuesta de Inkassogram sin statusCode")
		return err
	}

	if res.Accepted() {
		inv.State = entity.StatusInkasso
	} else {
		inv.State = entity.StatusError
	}
	inv.InkassoCode = res.Code()
	inv.UpdatedAt = time.Now()
	if err := o.invoiceRepo.UpdateInkasso(inv); err != nil {
		return fmt.Errorf("persistir estado Inkasso de la factura %s: %w", inv.Number, err)
	}

	o.log.Info().
		Str("invoice", inv.Number).
		Str("state", inv.State).
		Str("inkasso_code", inv.InkassoCode).
		Msg("factura procesada por Inkassogram")
	return nil
}

// enrichLines completa cada línea con la referencia de artículo y la unidad
// de medida del producto. Si el producto no existe se usa el ID como artículo.
func (o *InkassoOrchestrator) enrichLines(lines []*entity.InvoiceLine) []infrainkasso.LineForXML {
	out := make([]infrainkasso.LineForXML, len(lines))
	for i, l := range lines {
		articleNo, unitName := l.ProductID, ""
		if product, err := o.productRepo.GetByID(l.ProductID); err == nil && product != nil {
			if product.SKU != "" {
				articleNo = product.SKU
			}
			unitName = product.UnitMeasure
		}
		out[i] = infrainkasso.LineForXML{Line: l, ArticleNo: articleNo, UnitName: unitName}
	}
	return out
}

// GetInvoice devuelve una factura con sus líneas (inspección de estado y payload).
func (o *InkassoOrchestrator) GetInvoice(ctx context.Context, id string) (*entity.Invoice, []*entity.InvoiceLine, error) {
	inv, err := o.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := o.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, nil, err
	}
	return inv, lines, nil
}
