package inkasso_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/inkasso"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testClock = func() time.Time {
	return time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
}

func buildTestContext() *inkasso.BuildContext {
	return &inkasso.BuildContext{
		Invoice: &entity.Invoice{
			ID:        "inv-1",
			CompanyID: "co-1",
			Number:    "FA-2026-0001",
			Origin:    "SO-889",
			Comment:   "Entrega parcial",
			Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			State:     entity.StatusOpen,
		},
		Company: &entity.Company{
			ID:              "co-1",
			Name:            "Nordica AB",
			InkassoTestMode: true,
		},
		Customer: &entity.Customer{
			ID:     "cu-1",
			Name:   "Sven Svensson",
			TaxID:  "19800101-1234",
			Email:  "sven@example.com",
			Mobile: "+46701234567",
		},
		Lines: []inkasso.LineForXML{
			{
				Line: &entity.InvoiceLine{
					ID:          "line-1",
					InvoiceID:   "inv-1",
					ProductID:   "prod-1",
					CompanyID:   "co-1",
					Description: "Servicio mensual",
					Quantity:    decimal.NewFromInt(2),
					UnitPrice:   decimal.RequireFromString("123.99"),
					AccountID:   "3010",
					AnalyticID:  "PRJ-7",
				},
				ArticleNo: "SKU-001",
				UnitName:  "Unidad",
			},
		},
	}
}

func buildXML(t *testing.T, ctx *inkasso.BuildContext) *etree.Document {
	t.Helper()
	svc := inkasso.NewXMLBuilderServiceWithClock(testClock)
	out, err := svc.Build(ctx)
	require.NoError(t, err, "Build no debe fallar con un contexto completo")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "la salida debe ser XML válido")
	return doc
}

func elementText(t *testing.T, doc *etree.Document, path string) string {
	t.Helper()
	el := doc.FindElement(path)
	require.NotNil(t, el, "debe existir el elemento %s", path)
	return el.Text()
}

// ──────────────────────────────────────────────────────────────────────────────
// Estructura del documento
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_EstructuraBase(t *testing.T) {
	doc := buildXML(t, buildTestContext())

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "methodCall", root.Tag)
	require.NotNil(t, root.SelectAttr("xmlns"), "la raíz debe declarar el namespace por defecto")
	assert.Equal(t, "https://api.inkassogram.se/API/createInvoiceBookkeeping",
		root.SelectAttr("xmlns").Value)
	require.NotNil(t, root.SelectAttr("xsi:schemaLocation"), "la raíz debe declarar schemaLocation")

	assert.Equal(t, "createInvoice", elementText(t, doc, "//methodName"))
	assert.Equal(t, "true", elementText(t, doc, "//request/testInvoice"))
	assert.Equal(t, "0", elementText(t, doc, "//request/makeInvoiceReservation"))
	assert.Equal(t, "0", elementText(t, doc, "//request/forceToSend"))
	assert.Equal(t, "1", elementText(t, doc, "//request/service"))
	assert.Equal(t, "1", elementText(t, doc, "//request/printSetup"))
	assert.Equal(t, "19800101-1234", elementText(t, doc, "//request/ssn"))
	assert.Equal(t, "SO-889", elementText(t, doc, "//request/invoiceRef"))
	assert.Equal(t, "FA-2026-0001", elementText(t, doc, "//request/invoiceOrderNo"))
	assert.Equal(t, "+46701234567", elementText(t, doc, "//request/mobile"))
	assert.Equal(t, "sven@example.com", elementText(t, doc, "//request/email"))
	assert.Equal(t, "FA-2026-0001", elementText(t, doc, "//request/orderNo"))
	assert.Equal(t, "Entrega parcial", elementText(t, doc, "//request/comments"))

	// Reservados: presentes pero vacíos
	for _, path := range []string{"//request/callback", "//request/ourRef", "//request/yourRef",
		"//request/billingVar", "//request/attachedDocument", "//request/attachedDocumentMd5"} {
		assert.Equal(t, "", elementText(t, doc, path), "%s debe emitirse vacío", path)
	}
}

func TestBuild_TestInvoiceFalse(t *testing.T) {
	ctx := buildTestContext()
	ctx.Company.InkassoTestMode = false
	doc := buildXML(t, ctx)
	assert.Equal(t, "false", elementText(t, doc, "//request/testInvoice"))
}

func TestBuild_DeclaracionXML(t *testing.T) {
	svc := inkasso.NewXMLBuilderServiceWithClock(testClock)
	out, err := svc.Build(buildTestContext())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<?xml"), "la salida debe llevar declaración XML")
}

func TestBuild_ContextoIncompleto(t *testing.T) {
	svc := inkasso.NewXMLBuilderServiceWithClock(testClock)
	_, err := svc.Build(nil)
	assert.Error(t, err, "Build con contexto nil debe retornar error")

	ctx := buildTestContext()
	ctx.Customer = nil
	_, err = svc.Build(ctx)
	assert.Error(t, err, "Build sin customer debe retornar error")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_InvoiceDateDelReloj(t *testing.T) {
	doc := buildXML(t, buildTestContext())
	assert.Equal(t, strconv.FormatInt(testClock().Unix(), 10),
		elementText(t, doc, "//request/invoiceDate"),
		"invoiceDate debe ser el Unix timestamp del reloj en el momento del build")
}

// TestBuild_DueDatePresenteSoloSiHayVencimiento verifica que dueDate se emite
// si y solo si la factura tiene fecha de vencimiento, con el timestamp de la
// medianoche local de esa fecha.
func TestBuild_DueDatePresenteSoloSiHayVencimiento(t *testing.T) {
	ctx := buildTestContext()
	doc := buildXML(t, ctx)
	assert.Nil(t, doc.FindElement("//request/dueDate"),
		"sin fecha de vencimiento no debe existir dueDate")

	due := time.Date(2026, 4, 15, 10, 45, 0, 0, time.UTC)
	ctx.Invoice.DueDate = &due
	doc = buildXML(t, ctx)
	midnight := time.Date(2026, 4, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, strconv.FormatInt(midnight.Unix(), 10),
		elementText(t, doc, "//request/dueDate"),
		"dueDate debe ser la medianoche local de la fecha de vencimiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Filas
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_Fila(t *testing.T) {
	doc := buildXML(t, buildTestContext())

	assert.Equal(t, "SKU-001", elementText(t, doc, "//invoiceRows/row/articleNo"))
	assert.Equal(t, "Servicio mensual", elementText(t, doc, "//invoiceRows/row/text"))
	assert.Equal(t, "25", elementText(t, doc, "//invoiceRows/row/vat"))
	assert.Equal(t, "2", elementText(t, doc, "//invoiceRows/row/quantity"))
	assert.Equal(t, "123", elementText(t, doc, "//invoiceRows/row/price"),
		"el precio se envía sin IVA y truncado a entero")
	assert.Equal(t, "Unidad", elementText(t, doc, "//invoiceRows/row/unit"))
	assert.Equal(t, "3010", elementText(t, doc, "//invoiceRows/row/bookkeepingAccount"))
	assert.Equal(t, "co-1", elementText(t, doc, "//invoiceRows/row/profitUnit"))
	assert.Equal(t, "PRJ-7", elementText(t, doc, "//invoiceRows/row/project"))
}

// TestBuild_TextoTruncadoA120 verifica el límite de longitud del proveedor
// sobre el elemento text.
func TestBuild_TextoTruncadoA120(t *testing.T) {
	ctx := buildTestContext()
	long := strings.Repeat("á", 200) // runas multibyte: el corte es por caracteres
	ctx.Lines[0].Line.Description = long

	doc := buildXML(t, ctx)
	got := elementText(t, doc, "//invoiceRows/row/text")
	assert.Equal(t, 120, len([]rune(got)), "text debe truncarse a exactamente 120 caracteres")
	assert.Equal(t, string([]rune(long)[:120]), got)

	ctx.Lines[0].Line.Description = "corta"
	doc = buildXML(t, ctx)
	assert.Equal(t, "corta", elementText(t, doc, "//invoiceRows/row/text"),
		"una descripción corta se conserva íntegra")
}

func TestBuild_DiscountSoloSiNoEsCero(t *testing.T) {
	ctx := buildTestContext()
	doc := buildXML(t, ctx)
	assert.Nil(t, doc.FindElement("//invoiceRows/row/discount"),
		"sin descuento no debe existir el elemento discount")

	ctx.Lines[0].Line.Discount = decimal.NewFromInt(10)
	doc = buildXML(t, ctx)
	assert.Equal(t, "10", elementText(t, doc, "//invoiceRows/row/discount"))
}

func TestBuild_QuantityVaciaSiEsCero(t *testing.T) {
	ctx := buildTestContext()
	ctx.Lines[0].Line.Quantity = decimal.Zero
	doc := buildXML(t, ctx)
	assert.Equal(t, "", elementText(t, doc, "//invoiceRows/row/quantity"),
		"quantity se emite vacío cuando la cantidad es cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinismo
// ──────────────────────────────────────────────────────────────────────────────

// TestBuild_Determinista verifica que el builder es una función pura de sus
// entradas y el reloj: dos builds con el mismo reloj son byte a byte iguales.
func TestBuild_Determinista(t *testing.T) {
	svc := inkasso.NewXMLBuilderServiceWithClock(testClock)
	out1, err1 := svc.Build(buildTestContext())
	out2, err2 := svc.Build(buildTestContext())
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, string(out1), string(out2),
		"el mismo input y el mismo reloj deben producir XML idéntico")
}

// TestBuild_SoloCambiaInvoiceDate verifica que con relojes distintos la única
// diferencia es el elemento invoiceDate.
func TestBuild_SoloCambiaInvoiceDate(t *testing.T) {
	later := func() time.Time { return testClock().Add(time.Hour) }

	out1, err1 := inkasso.NewXMLBuilderServiceWithClock(testClock).Build(buildTestContext())
	out2, err2 := inkasso.NewXMLBuilderServiceWithClock(later).Build(buildTestContext())
	require.NoError(t, err1)
	require.NoError(t, err2)

	normalized := strings.Replace(string(out2),
		strconv.FormatInt(later().Unix(), 10),
		strconv.FormatInt(testClock().Unix(), 10), 1)
	assert.Equal(t, string(out1), normalized,
		"fuera de invoiceDate el documento debe ser idéntico")
}
