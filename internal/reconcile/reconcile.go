// Package reconcile computes the minimal set of relation-row creates and
// deletes that moves a contract's persisted advisor assignments to a desired
// membership set. It is pure: callers validate the desired set and apply the
// resulting plan themselves.
package reconcile

import "strings"

// RelationRecord is a persisted contract-advisor row as seen by the planner.
// Only the row id (needed for deletion) and the advisor foreign key matter.
type RelationRecord struct {
	ID        string
	AdvisorID string
}

// Plan is the outcome of a diff: rows to delete and advisor ids to create
// rows for. Deletes are applied before creates.
type Plan struct {
	ToCreate []string
	ToDelete []RelationRecord
}

// Empty reports whether applying the plan would be a no-op.
func (p Plan) Empty() bool {
	return len(p.ToCreate) == 0 && len(p.ToDelete) == 0
}

// CanonicalID normalizes an identifier to the single textual form used for
// every membership and equality check. Identifiers arrive from multiple
// sources (path params, JSON payloads, database scans) and must not compare
// differently because of case or surrounding whitespace.
func CanonicalID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Diff computes the minimal plan. Desired ids already present are untouched,
// duplicate desired ids collapse to one create, and existing rows whose
// advisor is no longer desired are scheduled for deletion.
func Diff(existing []RelationRecord, desiredAdvisorIDs []string) Plan {
	existingSet := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		existingSet[CanonicalID(rec.AdvisorID)] = struct{}{}
	}

	desiredSet := make(map[string]struct{}, len(desiredAdvisorIDs))
	var toCreate []string
	for _, id := range desiredAdvisorIDs {
		canonical := CanonicalID(id)
		if _, seen := desiredSet[canonical]; seen {
			continue
		}
		desiredSet[canonical] = struct{}{}
		if _, ok := existingSet[canonical]; !ok {
			toCreate = append(toCreate, canonical)
		}
	}

	var toDelete []RelationRecord
	for _, rec := range existing {
		if _, ok := desiredSet[CanonicalID(rec.AdvisorID)]; !ok {
			toDelete = append(toDelete, rec)
		}
	}

	return Plan{ToCreate: toCreate, ToDelete: toDelete}
}
