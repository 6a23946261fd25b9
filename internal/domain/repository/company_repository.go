package repository

import "github.com/jhoicas/Facturacion-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	// UpdateInkassoSettings actualiza solo la configuración Inkassogram
	// (número de cliente, clave, IP pública y modo de pruebas).
	UpdateInkassoSettings(company *entity.Company) error
}
