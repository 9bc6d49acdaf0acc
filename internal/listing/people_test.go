package listing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/advisio/crm-console/internal/model"
)

func TestSortClients_ByFullName(t *testing.T) {
	clients := []model.Client{
		{ID: uuid.New(), Name: "Zora", Surname: "Adam"},
		{ID: uuid.New(), Name: "Adam", Surname: "Zeman"},
	}

	sorted := SortClients(clients, SortState{Field: "name", Direction: SortAsc})
	if sorted[0].Name != "Adam" {
		t.Fatalf("expected Adam first, got %q", sorted[0].Name)
	}

	sorted = SortClients(clients, SortState{Field: "name", Direction: SortDesc})
	if sorted[0].Name != "Zora" {
		t.Fatalf("expected Zora first, got %q", sorted[0].Name)
	}
}

func TestSortClients_ByAge(t *testing.T) {
	clients := []model.Client{
		{ID: uuid.New(), Name: "A", Age: 40},
		{ID: uuid.New(), Name: "B", Age: 25},
	}

	sorted := SortClients(clients, SortState{Field: "age", Direction: SortAsc})
	if sorted[0].Age != 25 {
		t.Fatalf("expected youngest first, got %d", sorted[0].Age)
	}
}

func TestSortAdvisors_AdminFlagSortsAsNumber(t *testing.T) {
	advisors := []model.Advisor{
		{ID: uuid.New(), Name: "A", IsAdmin: false},
		{ID: uuid.New(), Name: "B", IsAdmin: true},
		{ID: uuid.New(), Name: "C", IsAdmin: false},
	}

	sorted := SortAdvisors(advisors, SortState{Field: "isAdmin", Direction: SortDesc})
	if !sorted[0].IsAdmin {
		t.Fatalf("expected admin first when descending")
	}

	sorted = SortAdvisors(advisors, SortState{Field: "isAdmin", Direction: SortAsc})
	if sorted[len(sorted)-1].Name != "B" {
		t.Fatalf("expected admin last when ascending, got %q", sorted[len(sorted)-1].Name)
	}
}

func TestSortAdvisors_InactiveKeepsFetchOrder(t *testing.T) {
	advisors := []model.Advisor{
		{ID: uuid.New(), Name: "C"},
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
	}

	sorted := SortAdvisors(advisors, SortState{})
	for i := range advisors {
		if sorted[i].ID != advisors[i].ID {
			t.Fatalf("position %d changed without an active sort", i)
		}
	}
}
