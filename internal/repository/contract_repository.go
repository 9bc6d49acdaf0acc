package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advisio/crm-console/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) List(ctx context.Context) ([]model.Contract, error) {
	var rows []model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, registration_number, institution, client_id, administrator_id,
			conclusion_date, validity_date, ending_date
		FROM contracts
		ORDER BY created_at ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var row model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, registration_number, institution, client_id, administrator_id,
			conclusion_date, validity_date, ending_date
		FROM contracts
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// FindByRegistrationNumber returns the contract holding a registration
// number, or gorm.ErrRecordNotFound when it is unused.
func (r *ContractRepository) FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.Contract, error) {
	var row model.Contract
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, registration_number, institution, client_id, administrator_id,
			conclusion_date, validity_date, ending_date
		FROM contracts
		WHERE registration_number = ?
		LIMIT 1
	`, registrationNumber).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract model.Contract) (*model.Contract, error) {
	var id uuid.UUID
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO contracts (registration_number, institution, client_id, administrator_id,
			conclusion_date, validity_date, ending_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, contract.RegistrationNumber, string(contract.Institution), contract.ClientID,
		contract.AdministratorID, contract.ConclusionDate, contract.ValidityDate,
		contract.EndingDate).Scan(&id).Error; err != nil {
		return nil, err
	}
	contract.ID = id
	return &contract, nil
}

func (r *ContractRepository) Update(ctx context.Context, id uuid.UUID, contract model.Contract) (*model.Contract, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE contracts
		SET registration_number = ?, institution = ?, client_id = ?, administrator_id = ?,
			conclusion_date = ?, validity_date = ?, ending_date = ?
		WHERE id = ?
	`, contract.RegistrationNumber, string(contract.Institution), contract.ClientID,
		contract.AdministratorID, contract.ConclusionDate, contract.ValidityDate,
		contract.EndingDate, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	contract.ID = id
	return &contract, nil
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contracts WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractRepository) ListRelations(ctx context.Context) ([]model.ContractAdvisor, error) {
	var rows []model.ContractAdvisor
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, advisor_id
		FROM contract_advisors
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ContractRepository) ListRelationsByContract(ctx context.Context, contractID uuid.UUID) ([]model.ContractAdvisor, error) {
	var rows []model.ContractAdvisor
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, advisor_id
		FROM contract_advisors
		WHERE contract_id = ?
	`, contractID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ContractRepository) CreateRelation(ctx context.Context, contractID, advisorID uuid.UUID) (*model.ContractAdvisor, error) {
	var id uuid.UUID
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO contract_advisors (contract_id, advisor_id)
		VALUES (?, ?)
		RETURNING id
	`, contractID, advisorID).Scan(&id).Error; err != nil {
		return nil, err
	}
	return &model.ContractAdvisor{ID: id, ContractID: contractID, AdvisorID: advisorID}, nil
}

func (r *ContractRepository) DeleteRelation(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contract_advisors WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
