package inkasso

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Esquema del request createInvoiceBookkeeping de Inkassogram.
const (
	xmlns          = "https://api.inkassogram.se/API/createInvoiceBookkeeping"
	nsXsi          = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "https://api.inkassogram.se/API/createInvoiceBookkeeping https://api.inkassogram.se/API/createInvoiceBookkeepingSchema1.0.xsd"

	// Longitud máxima que acepta Inkassogram en el elemento text de cada fila.
	maxLineTextLen = 120
)

// LineForXML es una línea de factura enriquecida con los datos de producto
// que el XML necesita (referencia de artículo y unidad de medida).
type LineForXML struct {
	Line      *entity.InvoiceLine
	ArticleNo string // SKU del producto, o su ID si no tiene SKU
	UnitName  string // Nombre de la unidad de medida; "" = elemento unit vacío
}

// BuildContext agrupa los datos de entrada del builder.
type BuildContext struct {
	Invoice  *entity.Invoice
	Company  *entity.Company
	Customer *entity.Customer
	Lines    []LineForXML
}

// XMLBuilderService construye el XML createInvoiceBookkeeping para Inkassogram.
// Es una función pura de sus entradas salvo por invoiceDate, que toma el reloj.
type XMLBuilderService struct {
	now func() time.Time
}

// NewXMLBuilderService crea el servicio con el reloj del sistema.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{now: time.Now}
}

// NewXMLBuilderServiceWithClock crea el servicio con un reloj inyectado.
func NewXMLBuilderServiceWithClock(now func() time.Time) *XMLBuilderService {
	return &XMLBuilderService{now: now}
}

// Build genera el documento XML con declaración, UTF-8 e indentación.
//
// El orden de los elementos y cuáles se emiten vacíos frente a cuáles se
// omiten por completo (dueDate, discount) es parte del contrato con el
// esquema del proveedor; no reordenar ni "normalizar".
func (s *XMLBuilderService) Build(ctx *BuildContext) ([]byte, error) {
	if ctx == nil || ctx.Invoice == nil || ctx.Company == nil || ctx.Customer == nil {
		return nil, fmt.Errorf("inkasso: faltan invoice, company o customer en el contexto")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("methodCall")
	root.CreateAttr("xmlns", xmlns)
	root.CreateAttr("xmlns:xsi", nsXsi)
	root.CreateAttr("xsi:schemaLocation", schemaLocation)

	root.CreateElement("methodName").SetText("createInvoice")

	req := root.CreateElement("request")
	testInvoice := req.CreateElement("testInvoice")
	if ctx.Company.InkassoTestMode {
		testInvoice.SetText("true")
	} else {
		testInvoice.SetText("false")
	}
	req.CreateElement("makeInvoiceReservation").SetText("0")
	req.CreateElement("forceToSend").SetText("0")
	req.CreateElement("service").SetText("1")
	req.CreateElement("printSetup").SetText("1")
	req.CreateElement("ssn").SetText(ctx.Customer.TaxID)

	invoiceRef := req.CreateElement("invoiceRef")
	if ctx.Invoice.Origin != "" {
		invoiceRef.SetText(ctx.Invoice.Origin)
	}
	invoiceOrderNo := req.CreateElement("invoiceOrderNo")
	if ctx.Invoice.Number != "" {
		invoiceOrderNo.SetText(ctx.Invoice.Number)
	}

	req.CreateElement("invoiceDate").SetText(strconv.FormatInt(s.now().Unix(), 10))
	if ctx.Invoice.DueDate != nil {
		// Medianoche local de la fecha de vencimiento, como timestamp Unix.
		d := *ctx.Invoice.DueDate
		midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
		req.CreateElement("dueDate").SetText(strconv.FormatInt(midnight.Unix(), 10))
	}

	req.CreateElement("callback") // reservado; Inkassogram lo admite vacío
	req.CreateElement("mobile").SetText(ctx.Customer.Mobile)
	req.CreateElement("email").SetText(ctx.Customer.Email)
	req.CreateElement("orderNo").SetText(ctx.Invoice.Number)
	req.CreateElement("ourRef")
	req.CreateElement("yourRef")

	rows := req.CreateElement("invoiceRows")
	for _, line := range ctx.Lines {
		s.writeRow(rows, line)
	}

	comments := req.CreateElement("comments")
	if ctx.Invoice.Comment != "" {
		comments.SetText(ctx.Invoice.Comment)
	}
	req.CreateElement("billingVar")
	req.CreateElement("attachedDocument")
	req.CreateElement("attachedDocumentMd5")

	doc.Indent(2)
	return doc.WriteToBytes()
}

func (s *XMLBuilderService) writeRow(rows *etree.Element, l LineForXML) {
	row := rows.CreateElement("row")
	row.CreateElement("articleNo").SetText(l.ArticleNo)
	row.CreateElement("text").SetText(truncate(l.Line.Description, maxLineTextLen))
	row.CreateElement("desc")

	// TODO: tomar la tarifa de IVA de la configuración de impuestos de la línea
	// en lugar del 25 fijo.
	row.CreateElement("vat").SetText("25")

	quantity := row.CreateElement("quantity")
	if !l.Line.Quantity.IsZero() {
		quantity.SetText(l.Line.Quantity.String())
	}

	// TODO: el precio debería incluir IVA; hoy se envía sin IVA y truncado a entero.
	row.CreateElement("price").SetText(strconv.FormatInt(l.Line.UnitPrice.IntPart(), 10))

	unit := row.CreateElement("unit")
	if l.UnitName != "" {
		unit.SetText(l.UnitName)
	}
	if !l.Line.Discount.IsZero() {
		row.CreateElement("discount").SetText(l.Line.Discount.String())
	}
	account := row.CreateElement("bookkeepingAccount")
	if l.Line.AccountID != "" {
		account.SetText(l.Line.AccountID)
	}
	profitUnit := row.CreateElement("profitUnit")
	if l.Line.CompanyID != "" {
		profitUnit.SetText(l.Line.CompanyID)
	}
	project := row.CreateElement("project")
	if l.Line.AnalyticID != "" {
		project.SetText(l.Line.AnalyticID)
	}
}

// truncate corta s a max caracteres (runas, no bytes).
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
