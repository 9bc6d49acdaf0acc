package reconcile

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestDiff_CreatesOnlyMissing(t *testing.T) {
	existing := []RelationRecord{
		{ID: "r1", AdvisorID: "a1"},
		{ID: "r2", AdvisorID: "a2"},
	}
	plan := Diff(existing, []string{"a2", "a3"})

	if len(plan.ToCreate) != 1 || plan.ToCreate[0] != "a3" {
		t.Fatalf("expected toCreate=[a3], got %v", plan.ToCreate)
	}
	if len(plan.ToDelete) != 1 || plan.ToDelete[0].ID != "r1" {
		t.Fatalf("expected toDelete=[r1], got %v", plan.ToDelete)
	}
}

func TestDiff_IdenticalSetsAreNoOp(t *testing.T) {
	existing := []RelationRecord{
		{ID: "r1", AdvisorID: "a1"},
		{ID: "r2", AdvisorID: "a2"},
	}
	plan := Diff(existing, []string{"a1", "a2"})

	if !plan.Empty() {
		t.Fatalf("expected empty plan, got create=%v delete=%v", plan.ToCreate, plan.ToDelete)
	}
}

func TestDiff_NormalizesIdentifierForm(t *testing.T) {
	existing := []RelationRecord{
		{ID: "r1", AdvisorID: "ABC-123"},
	}
	plan := Diff(existing, []string{"  abc-123 "})

	if !plan.Empty() {
		t.Fatalf("expected normalized ids to match, got create=%v delete=%v", plan.ToCreate, plan.ToDelete)
	}
}

func TestDiff_DuplicateDesiredIDsCollapse(t *testing.T) {
	plan := Diff(nil, []string{"a1", "a1", "A1"})

	if len(plan.ToCreate) != 1 {
		t.Fatalf("expected one create, got %v", plan.ToCreate)
	}
}

func TestDiff_EmptyDesiredDeletesEverything(t *testing.T) {
	existing := []RelationRecord{
		{ID: "r1", AdvisorID: "a1"},
		{ID: "r2", AdvisorID: "a2"},
	}
	plan := Diff(existing, nil)

	if len(plan.ToCreate) != 0 {
		t.Fatalf("expected no creates, got %v", plan.ToCreate)
	}
	if len(plan.ToDelete) != 2 {
		t.Fatalf("expected two deletes, got %v", plan.ToDelete)
	}
}

// Applying the plan to any random existing/desired pair must land exactly on
// the desired set, and a second pass from that state must be a no-op.
func TestDiff_RandomizedApplyReachesDesired(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		existing := randomRelations(rng)
		desired := randomIDSet(rng)

		plan := Diff(existing, desired)
		applied := apply(existing, plan)

		got := make(map[string]struct{}, len(applied))
		for _, rec := range applied {
			if _, dup := got[CanonicalID(rec.AdvisorID)]; dup {
				t.Fatalf("iter %d: duplicate advisor %q after apply", iter, rec.AdvisorID)
			}
			got[CanonicalID(rec.AdvisorID)] = struct{}{}
		}

		want := make(map[string]struct{}, len(desired))
		for _, id := range desired {
			want[CanonicalID(id)] = struct{}{}
		}
		if len(got) != len(want) {
			t.Fatalf("iter %d: applied set size %d, want %d", iter, len(got), len(want))
		}
		for id := range want {
			if _, ok := got[id]; !ok {
				t.Fatalf("iter %d: desired advisor %q missing after apply", iter, id)
			}
		}

		second := Diff(applied, desired)
		if !second.Empty() {
			t.Fatalf("iter %d: second pass not a no-op: create=%v delete=%v", iter, second.ToCreate, second.ToDelete)
		}
	}
}

func apply(existing []RelationRecord, plan Plan) []RelationRecord {
	deleted := make(map[string]struct{}, len(plan.ToDelete))
	for _, rec := range plan.ToDelete {
		deleted[rec.ID] = struct{}{}
	}

	var result []RelationRecord
	for _, rec := range existing {
		if _, gone := deleted[rec.ID]; !gone {
			result = append(result, rec)
		}
	}
	for i, advisorID := range plan.ToCreate {
		result = append(result, RelationRecord{
			ID:        fmt.Sprintf("new-%d", i),
			AdvisorID: advisorID,
		})
	}
	return result
}

func randomRelations(rng *rand.Rand) []RelationRecord {
	ids := randomIDSet(rng)
	records := make([]RelationRecord, 0, len(ids))
	for i, id := range ids {
		records = append(records, RelationRecord{
			ID:        fmt.Sprintf("rel-%d", i),
			AdvisorID: id,
		})
	}
	return records
}

func randomIDSet(rng *rand.Rand) []string {
	size := rng.Intn(8)
	seen := make(map[string]struct{}, size)
	var ids []string
	for len(ids) < size {
		id := fmt.Sprintf("a%d", rng.Intn(12))
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
