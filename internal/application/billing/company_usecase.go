package billing

import (
	"time"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// CompanyUseCase casos de uso de configuración Inkassogram de la empresa.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// UpdateInkassoSettings guarda las credenciales y el modo de pruebas.
// El número y la clave de cliente son obligatorios; la IP pública puede ir
// vacía (entra vacía al hash de autenticación, como admite el proveedor).
func (uc *CompanyUseCase) UpdateInkassoSettings(companyID string, in dto.InkassoSettingsRequest) error {
	if in.CustNumber == "" || in.CustKey == "" {
		return domain.ErrInvalidInput
	}
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	company.InkassoCustNumber = in.CustNumber
	company.InkassoCustKey = in.CustKey
	company.InkassoPublicIP = in.PublicIP
	company.InkassoTestMode = in.TestMode
	company.UpdatedAt = time.Now()
	return uc.repo.UpdateInkassoSettings(company)
}
