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

type AdvisorInput struct {
	PersonInput
	IsAdmin bool `json:"isAdmin"`
}

type AdvisorStore interface {
	List(ctx context.Context) ([]model.Advisor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Advisor, error)
	Create(ctx context.Context, advisor model.Advisor) (*model.Advisor, error)
	Update(ctx context.Context, id uuid.UUID, advisor model.Advisor) (*model.Advisor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdvisorService mutates the advisor book. Mutations are restricted to
// admin principals; reads are open to any authenticated operator.
type AdvisorService struct {
	store     AdvisorStore
	validator *validate.Validator
}

func NewAdvisorService(store AdvisorStore, validator *validate.Validator) *AdvisorService {
	return &AdvisorService{store: store, validator: validator}
}

func (s *AdvisorService) List(ctx context.Context, sortState listing.SortState) ([]model.Advisor, error) {
	advisors, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.SortAdvisors(advisors, sortState), nil
}

func (s *AdvisorService) Get(ctx context.Context, id uuid.UUID) (*model.Advisor, error) {
	advisor, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return advisor, nil
}

func (s *AdvisorService) Create(ctx context.Context, principal model.Principal, input AdvisorInput) (*model.Advisor, error) {
	if !principal.IsAdmin {
		return nil, ErrPermissionDenied
	}
	if fields := s.validator.Struct(input); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	return s.store.Create(ctx, advisorFromInput(input))
}

func (s *AdvisorService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input AdvisorInput) (*model.Advisor, error) {
	if !principal.IsAdmin {
		return nil, ErrPermissionDenied
	}
	if fields := s.validator.Struct(input); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	advisor, err := s.store.Update(ctx, id, advisorFromInput(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return advisor, nil
}

func (s *AdvisorService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin {
		return ErrPermissionDenied
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func advisorFromInput(input AdvisorInput) model.Advisor {
	return model.Advisor{
		Name:       input.Name,
		Surname:    input.Surname,
		Email:      input.Email,
		Phone:      input.Phone,
		NationalID: input.NationalID,
		Age:        input.Age,
		IsAdmin:    input.IsAdmin,
	}
}
