package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/advisio/crm-console/internal/model"
	"github.com/advisio/crm-console/internal/validate"
)

func advisorPayload() AdvisorInput {
	return AdvisorInput{
		PersonInput: PersonInput{
			Name:       "Petr",
			Surname:    "Maly",
			Email:      "petr@example.com",
			Phone:      "+420777888999",
			NationalID: "123456/7890",
			Age:        42,
		},
	}
}

func TestAdvisorMutations_RequireAdminPrincipal(t *testing.T) {
	store := &fakeAdvisorStore{}
	svc := NewAdvisorService(store, validate.New())
	operator := model.Principal{UserID: uuid.New(), Username: "operator"}

	if _, err := svc.Create(context.Background(), operator, advisorPayload()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("create: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.Update(context.Background(), operator, uuid.New(), advisorPayload()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("update: expected ErrPermissionDenied, got %v", err)
	}
	if err := svc.Delete(context.Background(), operator, uuid.New()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("delete: expected ErrPermissionDenied, got %v", err)
	}
	if len(store.advisors) != 0 {
		t.Fatalf("store was touched by a denied mutation")
	}
}

func TestAdvisorCreate_AdminPrincipalPersists(t *testing.T) {
	store := &fakeAdvisorStore{}
	svc := NewAdvisorService(store, validate.New())
	admin := model.Principal{UserID: uuid.New(), Username: "root", IsAdmin: true}

	input := advisorPayload()
	input.IsAdmin = true
	created, err := svc.Create(context.Background(), admin, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created.IsAdmin {
		t.Fatalf("admin flag lost on create")
	}
	if len(store.advisors) != 1 {
		t.Fatalf("expected 1 stored advisor, got %d", len(store.advisors))
	}
}

func TestAdvisorCreate_InvalidPayloadRejected(t *testing.T) {
	svc := NewAdvisorService(&fakeAdvisorStore{}, validate.New())
	admin := model.Principal{UserID: uuid.New(), Username: "root", IsAdmin: true}

	input := advisorPayload()
	input.Phone = "not a phone"
	_, err := svc.Create(context.Background(), admin, input)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, present := verr.Fields["phone"]; !present {
		t.Fatalf("expected phone field error, got %v", verr.Fields)
	}
}

func TestAdvisorGet_UnknownID(t *testing.T) {
	svc := NewAdvisorService(&fakeAdvisorStore{}, validate.New())
	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
