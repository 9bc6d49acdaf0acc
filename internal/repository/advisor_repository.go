package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advisio/crm-console/internal/model"
)

type AdvisorRepository struct {
	db *gorm.DB
}

func NewAdvisorRepository(db *gorm.DB) *AdvisorRepository {
	return &AdvisorRepository{db: db}
}

func (r *AdvisorRepository) List(ctx context.Context) ([]model.Advisor, error) {
	var rows []model.Advisor
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, surname, email, phone, national_id, age, is_admin
		FROM advisors
		ORDER BY created_at ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AdvisorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Advisor, error) {
	var row model.Advisor
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, surname, email, phone, national_id, age, is_admin
		FROM advisors
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

func (r *AdvisorRepository) Create(ctx context.Context, advisor model.Advisor) (*model.Advisor, error) {
	var id uuid.UUID
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO advisors (name, surname, email, phone, national_id, age, is_admin)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, advisor.Name, advisor.Surname, advisor.Email, advisor.Phone, advisor.NationalID, advisor.Age, advisor.IsAdmin).Scan(&id).Error; err != nil {
		return nil, err
	}
	advisor.ID = id
	return &advisor, nil
}

func (r *AdvisorRepository) Update(ctx context.Context, id uuid.UUID, advisor model.Advisor) (*model.Advisor, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE advisors
		SET name = ?, surname = ?, email = ?, phone = ?, national_id = ?, age = ?, is_admin = ?
		WHERE id = ?
	`, advisor.Name, advisor.Surname, advisor.Email, advisor.Phone, advisor.NationalID, advisor.Age, advisor.IsAdmin, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	advisor.ID = id
	return &advisor, nil
}

func (r *AdvisorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM advisors WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
