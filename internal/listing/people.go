package listing

import (
	"sort"

	"github.com/advisio/crm-console/internal/model"
)

// SortClients orders a copy of the client list; an inactive state keeps
// fetch order.
func SortClients(clients []model.Client, state SortState) []model.Client {
	sorted := make([]model.Client, len(clients))
	copy(sorted, clients)
	if !state.Active() {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch state.Field {
		case "name":
			return lessString(a.FullName(), b.FullName(), state.Direction)
		case "email":
			return lessString(a.Email, b.Email, state.Direction)
		case "phone":
			return lessString(a.Phone, b.Phone, state.Direction)
		case "nationalId":
			return lessString(a.NationalID, b.NationalID, state.Direction)
		case "age":
			return lessFloat(float64(a.Age), float64(b.Age), state.Direction)
		default:
			return false
		}
	})
	return sorted
}

// SortAdvisors orders a copy of the advisor list; the admin flag sorts as
// 0/1 so admins group together.
func SortAdvisors(advisors []model.Advisor, state SortState) []model.Advisor {
	sorted := make([]model.Advisor, len(advisors))
	copy(sorted, advisors)
	if !state.Active() {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch state.Field {
		case "name":
			return lessString(a.FullName(), b.FullName(), state.Direction)
		case "email":
			return lessString(a.Email, b.Email, state.Direction)
		case "phone":
			return lessString(a.Phone, b.Phone, state.Direction)
		case "isAdmin":
			return lessFloat(boolValue(a.IsAdmin), boolValue(b.IsAdmin), state.Direction)
		default:
			return false
		}
	})
	return sorted
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
