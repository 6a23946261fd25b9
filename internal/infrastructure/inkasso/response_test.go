package inkasso_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/inkasso"
)

func TestParseResponse_Aceptada(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<methodResponse xmlns="https://api.inkassogram.se/API/createInvoiceBookkeeping">
  <response>
    <statusCode>1</statusCode>
    <invoiceNo>778899</invoiceNo>
  </response>
</methodResponse>`)

	res, err := inkasso.ParseResponse(body)
	require.NoError(t, err)
	assert.True(t, res.Accepted())
	assert.Equal(t, "1", res.Code())
}

// TestParseResponse_RechazadaConErrorCode verifica que el errorCode específico
// prevalece sobre el statusCode como código a persistir.
func TestParseResponse_RechazadaConErrorCode(t *testing.T) {
	body := []byte(`<methodResponse>
  <response>
    <statusCode>0</statusCode>
    <errorCode>42</errorCode>
  </response>
</methodResponse>`)

	res, err := inkasso.ParseResponse(body)
	require.NoError(t, err)
	assert.False(t, res.Accepted())
	assert.Equal(t, "42", res.Code())
}

func TestParseResponse_RechazadaSinErrorCode(t *testing.T) {
	body := []byte(`<methodResponse><response><statusCode>0</statusCode></response></methodResponse>`)

	res, err := inkasso.ParseResponse(body)
	require.NoError(t, err)
	assert.False(t, res.Accepted())
	assert.Equal(t, "0", res.Code(), "sin errorCode se persiste el statusCode")
}

func TestParseResponse_SinStatusCode(t *testing.T) {
	body := []byte(`<methodResponse><response><invoiceNo>1</invoiceNo></response></methodResponse>`)

	_, err := inkasso.ParseResponse(body)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProtocol,
		"sin statusCode el envío queda indeterminado")
}

func TestParseResponse_CuerpoInvalido(t *testing.T) {
	_, err := inkasso.ParseResponse([]byte("no soy xml <"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProtocol)
}

// TestParseResponse_NamespacePorDefecto verifica el workaround sobre la
// declaración xmlns sin prefijo: solo se elimina la primera ocurrencia.
func TestParseResponse_NamespacePorDefecto(t *testing.T) {
	body := []byte(`<methodResponse xmlns="https://api.inkassogram.se/API/createInvoiceBookkeeping">` +
		`<response><statusCode>1</statusCode></response></methodResponse>`)

	res, err := inkasso.ParseResponse(body)
	require.NoError(t, err)
	assert.True(t, res.Accepted())
}
