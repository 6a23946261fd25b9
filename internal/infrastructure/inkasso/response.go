package inkasso

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// Las respuestas de Inkassogram declaran un namespace por defecto sin prefijo
// que algunas librerías XML no resuelven; se elimina la primera declaración
// antes de parsear. Es un workaround del sistema externo, no una decisión de
// diseño: aplica solo a cuerpos de respuesta.
var defaultNSRe = regexp.MustCompile(`\sxmlns="[^"]+"`)

// Result es el veredicto extraído de una respuesta createInvoiceBookkeeping.
type Result struct {
	StatusCode string // response/statusCode; "1" = aceptada
	ErrorCode  string // response/errorCode; vacío si el proveedor no lo envió
}

// Accepted indica si Inkassogram aceptó la factura.
func (r *Result) Accepted() bool { return r.StatusCode == "1" }

// Code devuelve el código a persistir en la factura: el errorCode específico
// cuando existe, si no el statusCode.
func (r *Result) Code() string {
	if !r.Accepted() && r.ErrorCode != "" {
		return r.ErrorCode
	}
	return r.StatusCode
}

// ParseResponse interpreta el cuerpo crudo de la respuesta del API.
// Si el statusCode no está presente devuelve domain.ErrProtocol: el envío
// queda indeterminado y el llamador no debe tocar el estado de la factura.
func ParseResponse(body []byte) (*Result, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(stripDefaultNamespace(body)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProtocol, err)
	}
	status := doc.FindElement("//response/statusCode")
	if status == nil {
		return nil, fmt.Errorf("%w: no se recibió statusCode", domain.ErrProtocol)
	}
	res := &Result{StatusCode: strings.TrimSpace(status.Text())}
	if ec := doc.FindElement("//response/errorCode"); ec != nil {
		res.ErrorCode = strings.TrimSpace(ec.Text())
	}
	return res, nil
}

// stripDefaultNamespace elimina solo la primera declaración xmlns="…".
func stripDefaultNamespace(body []byte) []byte {
	loc := defaultNSRe.FindIndex(body)
	if loc == nil {
		return body
	}
	out := make([]byte, 0, len(body)-(loc[1]-loc[0]))
	out = append(out, body[:loc[0]]...)
	out = append(out, body[loc[1]:]...)
	return out
}
