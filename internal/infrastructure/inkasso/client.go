package inkasso

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// DefaultAPIURL es el endpoint productivo de Inkassogram.
const DefaultAPIURL = "https://api.inkassogram.se/API/createInvoiceBookkeeping"

// Política de reintentos: 5 intentos en total, backoff exponencial desde
// 200 ms, solo sobre los códigos HTTP transitorios del proveedor y solo POST.
const (
	maxAttempts    = 5
	retryBaseWait  = 200 * time.Millisecond
	retryMaxWait   = 3200 * time.Millisecond
	defaultTimeout = 60 * time.Second
)

var retryableStatus = map[int]bool{
	404: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// Credentials son las credenciales Inkassogram de la empresa emisora.
type Credentials struct {
	CustNumber string
	CustKey    string
	PublicIP   string
}

// Sender define el puerto de salida hacia el API de Inkassogram.
// La implementación concreta usa HTTP; para tests se puede inyectar un mock.
type Sender interface {
	// Send entrega el payload XML y devuelve el cuerpo crudo de la respuesta.
	Send(ctx context.Context, payload []byte, creds Credentials) ([]byte, error)
}

// Client implementa Sender contra el endpoint createInvoiceBookkeeping.
type Client struct {
	rc  *resty.Client
	url string
	now func() time.Time
}

var _ Sender = (*Client)(nil)

// NewClient construye el cliente HTTP. apiURL vacío usa el endpoint
// productivo; timeout cero usa 60 s (el API puede tardar varios segundos).
func NewClient(apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(maxAttempts - 1).
		SetRetryWaitTime(retryBaseWait).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true // caída de red: reintentar
			}
			return retryableStatus[r.StatusCode()]
		})
	return &Client{rc: rc, url: apiURL, now: time.Now}
}

// Send autentica con el hash del día y hace el POST con reintentos.
// Un estado HTTP fuera de la lista de transitorios no es error de transporte:
// el cuerpo se devuelve tal cual para que el intérprete lo procese.
func (c *Client) Send(ctx context.Context, payload []byte, creds Credentials) ([]byte, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/xml").
		SetHeader("customerNo", creds.CustNumber).
		SetHeader("key", AuthKey(creds.PublicIP, creds.CustKey, c.now())).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	if retryableStatus[resp.StatusCode()] {
		return nil, fmt.Errorf("%w: reintentos agotados, último estado HTTP %d", domain.ErrTransport, resp.StatusCode())
	}
	return resp.Body(), nil
}

// AuthKey calcula la clave de autenticación del día:
// hex(md5(IP pública + fecha AAAAMMDD + clave de cliente)).
func AuthKey(publicIP, custKey string, day time.Time) string {
	sum := md5.Sum([]byte(publicIP + day.Format("20060102") + custKey))
	return hex.EncodeToString(sum[:])
}
