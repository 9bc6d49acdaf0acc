package model

import (
	"time"

	"github.com/google/uuid"
)

type Institution string

const (
	InstitutionCSOB  Institution = "ČSOB"
	InstitutionAegon Institution = "AEGON"
	InstitutionAxa   Institution = "Axa"
	InstitutionOther Institution = "Other"
)

// Institutions lists the allowed values in display order.
func Institutions() []Institution {
	return []Institution{InstitutionCSOB, InstitutionAegon, InstitutionAxa, InstitutionOther}
}

func ParseInstitution(raw string) (Institution, bool) {
	for _, inst := range Institutions() {
		if string(inst) == raw {
			return inst, true
		}
	}
	return "", false
}

type Contract struct {
	ID                 uuid.UUID   `json:"id"`
	RegistrationNumber string      `json:"registrationNumber"`
	Institution        Institution `json:"institution"`
	ClientID           uuid.UUID   `json:"clientId"`
	AdministratorID    uuid.UUID   `json:"administratorId"`
	ConclusionDate     time.Time   `json:"conclusionDate"`
	ValidityDate       time.Time   `json:"validityDate"`
	EndingDate         time.Time   `json:"endingDate"`
}

// ContractAdvisor is a join row linking one contract to one assigned advisor.
// Rows are never updated in place; membership changes are applied as a
// reconciled set of creates and deletes.
type ContractAdvisor struct {
	ID         uuid.UUID `json:"id"`
	ContractID uuid.UUID `json:"contractId"`
	AdvisorID  uuid.UUID `json:"advisorId"`
}
