package scheduler

import (
	"testing"
	"time"

	"schedgen/internal/model"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func weekendRule() model.SchedulingRule {
	return model.SchedulingRule{
		ID: "weekends", Enabled: true, Kind: model.RuleHoliday,
		Holiday: &model.HolidayPayload{
			Variant:  model.HolidayWeekdaySet,
			Weekdays: []time.Weekday{time.Sunday, time.Saturday},
		},
	}
}

func updateFor(updates []model.FeatureUpdate, id string) (model.FeatureUpdate, bool) {
	for _, u := range updates {
		if u.ID == id {
			return u, true
		}
	}
	return model.FeatureUpdate{}, false
}

// S1 — FS chain, no rules.
func TestRecalculateS1FSChainNoRules(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 5)},
		{ID: "B", StartAt: d(2026, 1, 10), EndAt: d(2026, 1, 12)},
		{ID: "C", StartAt: d(2026, 1, 20), EndAt: d(2026, 1, 25)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
		{ID: "d2", SourceID: "B", TargetID: "C", Type: model.FinishToStart},
	}

	updates := Recalculate(features, deps, nil)

	b, ok := updateFor(updates, "B")
	if !ok || !b.StartAt.Equal(d(2026, 1, 5)) || !b.EndAt.Equal(d(2026, 1, 7)) {
		t.Errorf("B update = %+v, want [Jan5, Jan7]", b)
	}

	c, ok := updateFor(updates, "C")
	if !ok || !c.StartAt.Equal(d(2026, 1, 7)) || !c.EndAt.Equal(d(2026, 1, 12)) {
		t.Errorf("C update = %+v, want [Jan7, Jan12]", c)
	}
}

// S2 — move root under FS chain via AutoSchedule.
func TestAutoScheduleS2MoveRoot(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 5)},
		{ID: "B", StartAt: d(2026, 1, 10), EndAt: d(2026, 1, 12)},
		{ID: "C", StartAt: d(2026, 1, 20), EndAt: d(2026, 1, 25)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
		{ID: "d2", SourceID: "B", TargetID: "C", Type: model.FinishToStart},
	}

	updates := AutoSchedule("A", Dates{StartAt: d(2026, 1, 10), EndAt: d(2026, 1, 15)}, features, deps)

	a, _ := updateFor(updates, "A")
	if !a.StartAt.Equal(d(2026, 1, 10)) || !a.EndAt.Equal(d(2026, 1, 15)) {
		t.Errorf("A update = %+v, want [Jan10, Jan15]", a)
	}
	b, _ := updateFor(updates, "B")
	if !b.StartAt.Equal(d(2026, 1, 15)) || !b.EndAt.Equal(d(2026, 1, 17)) {
		t.Errorf("B update = %+v, want [Jan15, Jan17]", b)
	}
	c, _ := updateFor(updates, "C")
	if !c.StartAt.Equal(d(2026, 1, 17)) || !c.EndAt.Equal(d(2026, 1, 22)) {
		t.Errorf("C update = %+v, want [Jan17, Jan22]", c)
	}
}

// Weekend holiday skip: source ends on a non-working day, the target must
// anchor forward to the next working day before the FS constraint applies.
// See DESIGN.md for why this case (rather than a source that already ends
// on a working day) is the one exercised here.
func TestRecalculateWeekendSkipOnNonWorkingSourceEnd(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 2), EndAt: d(2026, 1, 3)}, // ends Saturday
		{ID: "B", StartAt: d(2026, 1, 10), EndAt: d(2026, 1, 12)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
	}

	updates := Recalculate(features, deps, []model.SchedulingRule{weekendRule()})

	b, ok := updateFor(updates, "B")
	if !ok || !b.StartAt.Equal(d(2026, 1, 5)) { // Monday
		t.Errorf("B update = %+v, want start Jan5 (Monday)", b)
	}
}

// S4 — slack of 2 days.
func TestRecalculateS4Slack(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 10)},
		{ID: "B", StartAt: d(2026, 1, 20), EndAt: d(2026, 1, 22)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
	}
	ruleSet := []model.SchedulingRule{
		{ID: "s1", Enabled: true, Kind: model.RuleSlack, Slack: &model.SlackPayload{Days: 2}},
	}

	updates := Recalculate(features, deps, ruleSet)

	b, ok := updateFor(updates, "B")
	if !ok || !b.StartAt.Equal(d(2026, 1, 12)) {
		t.Errorf("B.start = %v, want Jan12", b.StartAt)
	}
}

// S5 — fixed-end constraint blocks move.
func TestRecalculateS5FixedEndBlocksUpdate(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 10)},
		{ID: "B", StartAt: d(2026, 1, 20), EndAt: d(2026, 1, 22)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
	}
	ruleSet := []model.SchedulingRule{
		{ID: "c1", Enabled: true, Kind: model.RuleConstraint, Constraint: &model.ConstraintPayload{
			Kind: model.ConstraintFixedEnd, FeatureIDs: []string{"B"},
		}},
	}

	updates := Recalculate(features, deps, ruleSet)

	if _, ok := updateFor(updates, "B"); ok {
		t.Error("expected no update for B under a fixed_end constraint")
	}
}

// S6 — capacity warning.
func TestCheckCapacityS6Warning(t *testing.T) {
	features := []model.Feature{
		{ID: "F1", Name: "Feature One", OwnerID: "u1", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 10)},
		{ID: "F2", Name: "Feature Two", OwnerID: "u1", StartAt: d(2026, 1, 5), EndAt: d(2026, 1, 15)},
	}
	ruleSet := []model.SchedulingRule{
		{ID: "cap1", Enabled: true, Kind: model.RuleCapacity, Capacity: &model.CapacityPayload{
			MaxConcurrent: 1, GroupBy: model.CapacityByOwner,
		}},
	}

	warnings := CheckCapacity(features, ruleSet)
	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1", len(warnings))
	}
	w := warnings[0]
	if w.ResourceID != "u1" || w.Max != 1 || w.Actual != 2 {
		t.Errorf("warning = %+v, want resource u1, max 1, actual 2", w)
	}
}

func TestCheckCapacityNoWarningUnderLimit(t *testing.T) {
	features := []model.Feature{
		{ID: "F1", OwnerID: "u1", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 5)},
		{ID: "F2", OwnerID: "u1", StartAt: d(2026, 1, 6), EndAt: d(2026, 1, 10)},
	}
	ruleSet := []model.SchedulingRule{
		{ID: "cap1", Enabled: true, Kind: model.RuleCapacity, Capacity: &model.CapacityPayload{
			MaxConcurrent: 1, GroupBy: model.CapacityByOwner,
		}},
	}

	if warnings := CheckCapacity(features, ruleSet); len(warnings) != 0 {
		t.Errorf("warnings = %+v, want none", warnings)
	}
}

// Property 5: recalculation is idempotent.
func TestRecalculateIsIdempotent(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 5)},
		{ID: "B", StartAt: d(2026, 1, 10), EndAt: d(2026, 1, 12)},
		{ID: "C", StartAt: d(2026, 1, 20), EndAt: d(2026, 1, 25)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
		{ID: "d2", SourceID: "B", TargetID: "C", Type: model.FinishToStart},
	}

	first := Recalculate(features, deps, nil)
	applied := applyUpdates(features, first)

	second := Recalculate(applied, deps, nil)
	if len(second) != 0 {
		t.Errorf("second recalculation produced %d updates, want 0", len(second))
	}
}

// Property 6: a fixed_both feature never appears in recalculation updates.
func TestRecalculateFixedBothNeverUpdates(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 5)},
		{ID: "B", StartAt: d(2026, 1, 20), EndAt: d(2026, 1, 25)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
	}
	ruleSet := []model.SchedulingRule{
		{ID: "c1", Enabled: true, Kind: model.RuleConstraint, Constraint: &model.ConstraintPayload{
			Kind: model.ConstraintFixedBoth,
		}},
	}

	updates := Recalculate(features, deps, ruleSet)
	if _, ok := updateFor(updates, "B"); ok {
		t.Error("fixed_both feature must never be updated")
	}
}

func TestAutoScheduleTerminatesOnCycle(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 2)},
		{ID: "B", StartAt: d(2026, 1, 2), EndAt: d(2026, 1, 3)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
		{ID: "d2", SourceID: "B", TargetID: "A", Type: model.FinishToStart},
	}

	done := make(chan []model.FeatureUpdate, 1)
	go func() {
		done <- AutoSchedule("A", Dates{StartAt: d(2026, 1, 5), EndAt: d(2026, 1, 6)}, features, deps)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AutoSchedule did not terminate on a cyclic graph")
	}
}

func TestAutoScheduleMissingPredecessorIgnored(t *testing.T) {
	features := []model.Feature{
		{ID: "A", StartAt: d(2026, 1, 1), EndAt: d(2026, 1, 2)},
	}
	deps := []model.Dependency{
		{ID: "d1", SourceID: "ghost", TargetID: "A", Type: model.FinishToStart},
	}

	updates := AutoSchedule("A", Dates{StartAt: d(2026, 1, 5), EndAt: d(2026, 1, 6)}, features, deps)
	if len(updates) != 1 {
		t.Errorf("len(updates) = %d, want 1 (only the moved feature)", len(updates))
	}
}

func applyUpdates(features []model.Feature, updates []model.FeatureUpdate) []model.Feature {
	byID := make(map[string]model.FeatureUpdate, len(updates))
	for _, u := range updates {
		byID[u.ID] = u
	}

	result := make([]model.Feature, len(features))
	for i, f := range features {
		if u, ok := byID[f.ID]; ok {
			f.StartAt, f.EndAt = u.StartAt, u.EndAt
		}
		result[i] = f
	}
	return result
}
