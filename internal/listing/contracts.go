package listing

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/advisio/crm-console/internal/model"
	"github.com/advisio/crm-console/internal/reconcile"
)

// AdvisorRef is one assigned advisor as shown on a contract row.
type AdvisorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ContractRow is the display projection of a contract: the record itself
// plus resolved names and the assigned-advisor list.
type ContractRow struct {
	model.Contract
	ClientName        string       `json:"clientName"`
	AdministratorName string       `json:"administratorName"`
	AssignedAdvisors  []AdvisorRef `json:"assignedAdvisors"`
}

func BuildContractRows(contracts []model.Contract, dir *Directory) []ContractRow {
	rows := make([]ContractRow, 0, len(contracts))
	for _, c := range contracts {
		rels := dir.Relations(c.ID)
		assigned := make([]AdvisorRef, 0, len(rels))
		for _, rel := range rels {
			assigned = append(assigned, AdvisorRef{
				ID:   rel.AdvisorID,
				Name: dir.AdvisorName(rel.AdvisorID),
			})
		}
		rows = append(rows, ContractRow{
			Contract:          c,
			ClientName:        dir.ClientName(c.ClientID),
			AdministratorName: dir.AdvisorName(c.AdministratorID),
			AssignedAdvisors:  assigned,
		})
	}
	return rows
}

func (r ContractRow) advisorNames() string {
	names := make([]string, 0, len(r.AssignedAdvisors))
	for _, ref := range r.AssignedAdvisors {
		names = append(names, ref.Name)
	}
	return strings.Join(names, ", ")
}

// SortContractRows orders a copy of rows per the sort state; the input is
// never mutated. An inactive state returns the rows in fetch order.
func SortContractRows(rows []ContractRow, state SortState) []ContractRow {
	sorted := make([]ContractRow, len(rows))
	copy(sorted, rows)
	if !state.Active() {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch state.Field {
		case "registrationNumber":
			return lessString(a.RegistrationNumber, b.RegistrationNumber, state.Direction)
		case "institution":
			return lessString(string(a.Institution), string(b.Institution), state.Direction)
		case "clientName":
			return lessString(a.ClientName, b.ClientName, state.Direction)
		case "administratorName":
			return lessString(a.AdministratorName, b.AdministratorName, state.Direction)
		case "assignedAdvisors":
			return lessString(a.advisorNames(), b.advisorNames(), state.Direction)
		case "validityDate":
			return lessFloat(float64(a.ValidityDate.UnixMilli()), float64(b.ValidityDate.UnixMilli()), state.Direction)
		default:
			return false
		}
	})
	return sorted
}

// ContractFilter selects contracts matching every active dimension; within
// one dimension the selected values are alternatives and an empty selection
// passes everything.
type ContractFilter struct {
	Institutions []string
	ClientIDs    []string
	AdvisorIDs   []string
}

func (f ContractFilter) Empty() bool {
	return len(f.Institutions) == 0 && len(f.ClientIDs) == 0 && len(f.AdvisorIDs) == 0
}

func (f ContractFilter) Matches(c model.Contract, dir *Directory) bool {
	if !matchValue(string(c.Institution), f.Institutions) {
		return false
	}
	if !matchValue(c.ClientID.String(), f.ClientIDs) {
		return false
	}
	if len(f.AdvisorIDs) > 0 {
		matched := false
		for _, rel := range dir.Relations(c.ID) {
			if matchValue(rel.AdvisorID.String(), f.AdvisorIDs) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func FilterContracts(contracts []model.Contract, dir *Directory, f ContractFilter) []model.Contract {
	if f.Empty() {
		return contracts
	}
	filtered := make([]model.Contract, 0, len(contracts))
	for _, c := range contracts {
		if f.Matches(c, dir) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func matchValue(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	canonical := reconcile.CanonicalID(value)
	for _, s := range selected {
		if reconcile.CanonicalID(s) == canonical {
			return true
		}
	}
	return false
}
