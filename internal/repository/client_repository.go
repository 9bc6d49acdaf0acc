package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advisio/crm-console/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	var rows []model.Client
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, surname, email, phone, national_id, age
		FROM clients
		ORDER BY created_at ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var row model.Client
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, surname, email, phone, national_id, age
		FROM clients
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

func (r *ClientRepository) Create(ctx context.Context, client model.Client) (*model.Client, error) {
	var id uuid.UUID
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO clients (name, surname, email, phone, national_id, age)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, client.Name, client.Surname, client.Email, client.Phone, client.NationalID, client.Age).Scan(&id).Error; err != nil {
		return nil, err
	}
	client.ID = id
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, id uuid.UUID, client model.Client) (*model.Client, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE clients
		SET name = ?, surname = ?, email = ?, phone = ?, national_id = ?, age = ?
		WHERE id = ?
	`, client.Name, client.Surname, client.Email, client.Phone, client.NationalID, client.Age, id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	client.ID = id
	return &client, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM clients WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
