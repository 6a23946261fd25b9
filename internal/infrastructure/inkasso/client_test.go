package inkasso_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/inkasso"
)

var testCreds = inkasso.Credentials{
	CustNumber: "10045",
	CustKey:    "secreto",
	PublicIP:   "203.0.113.10",
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthKey_VectorConocido(t *testing.T) {
	day := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	got := inkasso.AuthKey("203.0.113.10", "secreto", day)
	assert.Equal(t, "aaaa0e8b013b7e3c594a9fcd005bc4b1", got,
		"la clave debe ser md5(IP + AAAAMMDD + clave) en hexadecimal")
}

func TestAuthKey_CambiaPorDia(t *testing.T) {
	hoy := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	manana := hoy.Add(time.Minute)
	assert.NotEqual(t,
		inkasso.AuthKey("203.0.113.10", "secreto", hoy),
		inkasso.AuthKey("203.0.113.10", "secreto", manana),
		"la clave rota al cambiar el día")
}

func TestSend_CabecerasDeAutenticacion(t *testing.T) {
	var gotContentType, gotCustomerNo, gotKey, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotCustomerNo = r.Header.Get("customerNo")
		gotKey = r.Header.Get("key")
		w.Write([]byte("<methodResponse/>"))
	}))
	defer srv.Close()

	client := inkasso.NewClient(srv.URL, 5*time.Second)
	_, err := client.Send(context.Background(), []byte("<methodCall/>"), testCreds)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "text/xml", gotContentType)
	assert.Equal(t, "10045", gotCustomerNo)
	assert.Equal(t, inkasso.AuthKey(testCreds.PublicIP, testCreds.CustKey, time.Now()), gotKey,
		"la cabecera key debe ser el hash del día")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos
// ──────────────────────────────────────────────────────────────────────────────

// TestSend_ReintentaEstadosTransitorios verifica que un 503 persistente se
// reintenta hasta agotar los 5 intentos y termina en error de transporte.
func TestSend_ReintentaEstadosTransitorios(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := inkasso.NewClient(srv.URL, 30*time.Second)
	_, err := client.Send(context.Background(), []byte("<methodCall/>"), testCreds)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.EqualValues(t, 5, attempts.Load(), "debe hacer exactamente 5 intentos")
}

func TestSend_RecuperaTrasTransitorio(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("<methodResponse/>"))
	}))
	defer srv.Close()

	client := inkasso.NewClient(srv.URL, 30*time.Second)
	body, err := client.Send(context.Background(), []byte("<methodCall/>"), testCreds)

	require.NoError(t, err)
	assert.Equal(t, "<methodResponse/>", string(body))
	assert.EqualValues(t, 3, attempts.Load())
}

// TestSend_NoReintentaOtrosEstados verifica que un 400 no se reintenta: el
// cuerpo se devuelve tal cual para que el intérprete lo procese.
func TestSend_NoReintentaOtrosEstados(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("<fault/>"))
	}))
	defer srv.Close()

	client := inkasso.NewClient(srv.URL, 5*time.Second)
	body, err := client.Send(context.Background(), []byte("<methodCall/>"), testCreds)

	require.NoError(t, err, "un 400 no es error de transporte")
	assert.Equal(t, "<fault/>", string(body))
	assert.EqualValues(t, 1, attempts.Load(), "no debe reintentar estados no transitorios")
}

func TestSend_ErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor caído

	client := inkasso.NewClient(srv.URL, 2*time.Second)
	_, err := client.Send(context.Background(), []byte("<methodCall/>"), testCreds)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
}
