package listing

import (
	"github.com/google/uuid"

	"github.com/advisio/crm-console/internal/model"
	"github.com/advisio/crm-console/internal/reconcile"
)

// UnknownName replaces any display name whose foreign key no longer
// resolves. Dangling references render, they never fail.
const UnknownName = "Unknown"

// Directory holds id-keyed indexes over one fetch of the clients, advisors
// and relation collections. It is rebuilt whenever the inputs are refetched
// and never mutated afterwards.
type Directory struct {
	clients   map[string]model.Client
	advisors  map[string]model.Advisor
	relations map[string][]model.ContractAdvisor
}

func NewDirectory(clients []model.Client, advisors []model.Advisor, relations []model.ContractAdvisor) *Directory {
	d := &Directory{
		clients:   make(map[string]model.Client, len(clients)),
		advisors:  make(map[string]model.Advisor, len(advisors)),
		relations: make(map[string][]model.ContractAdvisor),
	}
	for _, c := range clients {
		d.clients[key(c.ID)] = c
	}
	for _, a := range advisors {
		d.advisors[key(a.ID)] = a
	}
	for _, rel := range relations {
		k := key(rel.ContractID)
		d.relations[k] = append(d.relations[k], rel)
	}
	return d
}

func (d *Directory) ClientName(id uuid.UUID) string {
	if c, ok := d.clients[key(id)]; ok {
		return c.FullName()
	}
	return UnknownName
}

func (d *Directory) AdvisorName(id uuid.UUID) string {
	if a, ok := d.advisors[key(id)]; ok {
		return a.FullName()
	}
	return UnknownName
}

// Relations returns the persisted relation rows for a contract in fetch order.
func (d *Directory) Relations(contractID uuid.UUID) []model.ContractAdvisor {
	return d.relations[key(contractID)]
}

func key(id uuid.UUID) string {
	return reconcile.CanonicalID(id.String())
}
