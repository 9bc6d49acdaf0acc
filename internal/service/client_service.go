package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advisio/crm-console/internal/listing"
	"github.com/advisio/crm-console/internal/model"
	"github.com/advisio/crm-console/internal/validate"
)

// PersonInput is the shared form payload for clients and advisors.
type PersonInput struct {
	Name       string `json:"name" validate:"required"`
	Surname    string `json:"surname" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,phone"`
	NationalID string `json:"nationalId" validate:"required,national_id"`
	Age        int    `json:"age" validate:"min=18,max=120"`
}

type ClientStore interface {
	List(ctx context.Context) ([]model.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	Create(ctx context.Context, client model.Client) (*model.Client, error)
	Update(ctx context.Context, id uuid.UUID, client model.Client) (*model.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClientService struct {
	store     ClientStore
	validator *validate.Validator
}

func NewClientService(store ClientStore, validator *validate.Validator) *ClientService {
	return &ClientService{store: store, validator: validator}
}

func (s *ClientService) List(ctx context.Context, sortState listing.SortState) ([]model.Client, error) {
	clients, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.SortClients(clients, sortState), nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, input PersonInput) (*model.Client, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	return s.store.Create(ctx, clientFromInput(input))
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, input PersonInput) (*model.Client, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	client, err := s.store.Update(ctx, id, clientFromInput(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func clientFromInput(input PersonInput) model.Client {
	return model.Client{
		Name:       input.Name,
		Surname:    input.Surname,
		Email:      input.Email,
		Phone:      input.Phone,
		NationalID: input.NationalID,
		Age:        input.Age,
	}
}
