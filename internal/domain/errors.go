package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Taxonomía del envío a Inkassogram. ErrValidation bloquea el lote
	// completo antes de cualquier llamada HTTP; ErrTransport y ErrProtocol
	// ocurren por factura con el payload ya persistido en xml_data.
	ErrValidation = errors.New("la factura no cumple los requisitos de Inkassogram")
	ErrTransport  = errors.New("fallo de comunicación con Inkassogram")
	ErrProtocol   = errors.New("respuesta de Inkassogram incompleta o malformada")
)
