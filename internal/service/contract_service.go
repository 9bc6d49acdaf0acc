package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advisio/crm-console/internal/listing"
	"github.com/advisio/crm-console/internal/model"
	"github.com/advisio/crm-console/internal/reconcile"
	"github.com/advisio/crm-console/internal/validate"
)

const dateLayout = "2006-01-02"

// ContractInput is the contract form payload. AdvisorIDs is the full
// desired assignment set; it must be non-empty and contain the
// administrator.
type ContractInput struct {
	RegistrationNumber string   `json:"registrationNumber" validate:"required"`
	Institution        string   `json:"institution" validate:"required"`
	ClientID           string   `json:"clientId" validate:"required"`
	AdministratorID    string   `json:"administratorId" validate:"required"`
	ConclusionDate     string   `json:"conclusionDate" validate:"required"`
	ValidityDate       string   `json:"validityDate" validate:"required"`
	EndingDate         string   `json:"endingDate" validate:"required"`
	AdvisorIDs         []string `json:"advisorIds" validate:"required,min=1"`
}

type ContractStore interface {
	List(ctx context.Context) ([]model.Contract, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.Contract, error)
	Create(ctx context.Context, contract model.Contract) (*model.Contract, error)
	Update(ctx context.Context, id uuid.UUID, contract model.Contract) (*model.Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListRelations(ctx context.Context) ([]model.ContractAdvisor, error)
	ListRelationsByContract(ctx context.Context, contractID uuid.UUID) ([]model.ContractAdvisor, error)
	CreateRelation(ctx context.Context, contractID, advisorID uuid.UUID) (*model.ContractAdvisor, error)
	DeleteRelation(ctx context.Context, id uuid.UUID) error
}

type ContractService struct {
	contracts ContractStore
	clients   ClientStore
	advisors  AdvisorStore
	validator *validate.Validator
}

func NewContractService(contracts ContractStore, clients ClientStore, advisors AdvisorStore, validator *validate.Validator) *ContractService {
	return &ContractService{
		contracts: contracts,
		clients:   clients,
		advisors:  advisors,
		validator: validator,
	}
}

// List returns display rows for the contract book, filtered then sorted.
func (s *ContractService) List(ctx context.Context, filter listing.ContractFilter, sortState listing.SortState) ([]listing.ContractRow, error) {
	contracts, err := s.contracts.List(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listing.FilterContracts(contracts, dir, filter)
	rows := listing.BuildContractRows(filtered, dir)
	return listing.SortContractRows(rows, sortState), nil
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*listing.ContractRow, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	rows := listing.BuildContractRows([]model.Contract{*contract}, dir)
	return &rows[0], nil
}

// Relations returns the persisted advisor-assignment rows for one contract.
func (s *ContractService) Relations(ctx context.Context, contractID uuid.UUID) ([]model.ContractAdvisor, error) {
	if _, err := s.contracts.GetByID(ctx, contractID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.contracts.ListRelationsByContract(ctx, contractID)
}

func (s *ContractService) Create(ctx context.Context, input ContractInput) (*model.Contract, error) {
	contract, advisorIDs, err := s.parseInput(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.checkRegistrationNumber(ctx, input.RegistrationNumber, uuid.Nil); err != nil {
		return nil, err
	}

	created, err := s.contracts.Create(ctx, contract)
	if err != nil {
		return nil, err
	}

	plan := reconcile.Diff(nil, advisorIDs)
	if err := s.applyPlan(ctx, created.ID, plan); err != nil {
		return created, fmt.Errorf("contract created but advisor assignments incomplete: %w", err)
	}
	return created, nil
}

func (s *ContractService) Update(ctx context.Context, id uuid.UUID, input ContractInput) (*model.Contract, error) {
	contract, advisorIDs, err := s.parseInput(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.checkRegistrationNumber(ctx, input.RegistrationNumber, id); err != nil {
		return nil, err
	}

	updated, err := s.contracts.Update(ctx, id, contract)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing, err := s.contracts.ListRelationsByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	plan := reconcile.Diff(relationRecords(existing), advisorIDs)
	if err := s.applyPlan(ctx, id, plan); err != nil {
		return updated, fmt.Errorf("contract updated but advisor assignments incomplete: %w", err)
	}
	return updated, nil
}

// Delete removes a contract's relation rows first, then the contract
// itself. A relation delete failure leaves the contract in place.
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	relations, err := s.contracts.ListRelationsByContract(ctx, id)
	if err != nil {
		return err
	}

	var errs []error
	for _, rel := range relations {
		if err := s.contracts.DeleteRelation(ctx, rel.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete relation %s: %w", rel.ID, err))
		}
	}
	if joined := errors.Join(errs...); joined != nil {
		return joined
	}

	if err := s.contracts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// applyPlan issues every delete, then every create. All operations in a
// phase are attempted even after a failure; the collected errors surface to
// the caller and no rollback is performed.
func (s *ContractService) applyPlan(ctx context.Context, contractID uuid.UUID, plan reconcile.Plan) error {
	var errs []error

	for _, rec := range plan.ToDelete {
		relID, err := uuid.Parse(rec.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("relation id %q: %w", rec.ID, err))
			continue
		}
		if err := s.contracts.DeleteRelation(ctx, relID); err != nil {
			errs = append(errs, fmt.Errorf("delete relation %s: %w", rec.ID, err))
		}
	}

	for _, advisorID := range plan.ToCreate {
		aid, err := uuid.Parse(advisorID)
		if err != nil {
			errs = append(errs, fmt.Errorf("advisor id %q: %w", advisorID, err))
			continue
		}
		if _, err := s.contracts.CreateRelation(ctx, contractID, aid); err != nil {
			errs = append(errs, fmt.Errorf("create relation for advisor %s: %w", advisorID, err))
		}
	}

	return errors.Join(errs...)
}

// parseInput validates the form payload and resolves its references. It
// never touches the relation rows; all checks here precede any write.
func (s *ContractService) parseInput(ctx context.Context, input ContractInput) (model.Contract, []string, error) {
	fields := s.validator.Struct(input)
	if fields == nil {
		fields = validate.FieldErrors{}
	}

	institution, ok := model.ParseInstitution(input.Institution)
	if !ok {
		fields["institution"] = "Please select an institution"
	}

	clientID, err := uuid.Parse(input.ClientID)
	if err != nil {
		fields["clientId"] = "Client is required"
	}
	administratorID, err := uuid.Parse(input.AdministratorID)
	if err != nil {
		fields["administratorId"] = "Administrator is required"
	}

	conclusion, err := time.Parse(dateLayout, input.ConclusionDate)
	if err != nil {
		fields["conclusionDate"] = "Conclusion date is required"
	}
	validity, err := time.Parse(dateLayout, input.ValidityDate)
	if err != nil {
		fields["validityDate"] = "Validity date is required"
	}
	ending, err := time.Parse(dateLayout, input.EndingDate)
	if err != nil {
		fields["endingDate"] = "Ending date is required"
	}
	if len(fields) == 0 {
		for f, msg := range validate.ContractDates(conclusion, validity, ending) {
			fields[f] = msg
		}
	}

	// The administrator is always a member of the desired advisor set; a
	// form that drops it never reaches the reconciler.
	if len(input.AdvisorIDs) > 0 && !containsID(input.AdvisorIDs, input.AdministratorID) {
		fields["advisorIds"] = "Cannot remove the administrator from advisors"
	}

	if len(fields) > 0 {
		return model.Contract{}, nil, &ValidationError{Fields: fields}
	}

	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Contract{}, nil, fmt.Errorf("%w: client not found", ErrInvalidInput)
		}
		return model.Contract{}, nil, err
	}
	administrator, err := s.advisors.GetByID(ctx, administratorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Contract{}, nil, fmt.Errorf("%w: administrator not found", ErrInvalidInput)
		}
		return model.Contract{}, nil, err
	}
	if !administrator.IsAdmin {
		return model.Contract{}, nil, fmt.Errorf("%w: administrator must be an admin advisor", ErrInvalidInput)
	}

	contract := model.Contract{
		RegistrationNumber: input.RegistrationNumber,
		Institution:        institution,
		ClientID:           clientID,
		AdministratorID:    administratorID,
		ConclusionDate:     conclusion,
		ValidityDate:       validity,
		EndingDate:         ending,
	}
	return contract, input.AdvisorIDs, nil
}

func (s *ContractService) checkRegistrationNumber(ctx context.Context, registrationNumber string, selfID uuid.UUID) error {
	existing, err := s.contracts.FindByRegistrationNumber(ctx, registrationNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrDuplicateRegistration
	}
	return nil
}

func (s *ContractService) directory(ctx context.Context) (*listing.Directory, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	advisors, err := s.advisors.List(ctx)
	if err != nil {
		return nil, err
	}
	relations, err := s.contracts.ListRelations(ctx)
	if err != nil {
		return nil, err
	}
	return listing.NewDirectory(clients, advisors, relations), nil
}

func relationRecords(relations []model.ContractAdvisor) []reconcile.RelationRecord {
	records := make([]reconcile.RelationRecord, 0, len(relations))
	for _, rel := range relations {
		records = append(records, reconcile.RelationRecord{
			ID:        rel.ID.String(),
			AdvisorID: rel.AdvisorID.String(),
		})
	}
	return records
}

func containsID(ids []string, target string) bool {
	canonical := reconcile.CanonicalID(target)
	for _, id := range ids {
		if reconcile.CanonicalID(id) == canonical {
			return true
		}
	}
	return false
}
