package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	query := `
		INSERT INTO companies (id, name, address, phone, email, inkasso_cust_number, inkasso_cust_key, inkasso_public_ip, inkasso_test_mode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, nullIfEmpty(company.Address),
		nullIfEmpty(company.Phone), nullIfEmpty(company.Email),
		nullIfEmpty(company.InkassoCustNumber), nullIfEmpty(company.InkassoCustKey),
		nullIfEmpty(company.InkassoPublicIP), company.InkassoTestMode,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve nil sin error si no existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       COALESCE(inkasso_cust_number, ''), COALESCE(inkasso_cust_key, ''),
		       COALESCE(inkasso_public_ip, ''), inkasso_test_mode, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email,
		&c.InkassoCustNumber, &c.InkassoCustKey, &c.InkassoPublicIP, &c.InkassoTestMode,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// UpdateInkassoSettings actualiza solo la configuración Inkassogram.
func (r *CompanyRepo) UpdateInkassoSettings(company *entity.Company) error {
	query := `
		UPDATE companies
		SET inkasso_cust_number = $2,
		    inkasso_cust_key    = $3,
		    inkasso_public_ip   = $4,
		    inkasso_test_mode   = $5,
		    updated_at          = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID,
		nullIfEmpty(company.InkassoCustNumber), nullIfEmpty(company.InkassoCustKey),
		nullIfEmpty(company.InkassoPublicIP), company.InkassoTestMode,
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company inkasso settings: %w", err)
	}
	return nil
}
