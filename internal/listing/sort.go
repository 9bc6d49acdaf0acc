package listing

// Sort state for a list view. A column click cycles none → asc → desc → none;
// clicking a different column always restarts at asc for that column.

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SortState struct {
	Field     string
	Direction SortDirection
}

// Active reports whether any ordering should be applied. When inactive the
// collection keeps the order it was fetched in.
func (s SortState) Active() bool {
	return s.Field != "" && (s.Direction == SortAsc || s.Direction == SortDesc)
}

// Toggle advances the state for a click on the given field.
func (s SortState) Toggle(field string) SortState {
	if field == "" {
		return s
	}
	if s.Field != field {
		return SortState{Field: field, Direction: SortAsc}
	}
	switch s.Direction {
	case SortAsc:
		return SortState{Field: field, Direction: SortDesc}
	case SortDesc:
		return SortState{}
	default:
		return SortState{Field: field, Direction: SortAsc}
	}
}

// Equal-key order is whatever the input order produces; callers needing a
// deterministic tie-break must sort on a secondary key themselves.
func lessString(a, b string, dir SortDirection) bool {
	if dir == SortDesc {
		return a > b
	}
	return a < b
}

func lessFloat(a, b float64, dir SortDirection) bool {
	if dir == SortDesc {
		return a > b
	}
	return a < b
}
