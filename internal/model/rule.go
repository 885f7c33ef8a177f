package model

import "time"

// RuleKind is the closed set of scheduling rule variants. The Rule
// Registry pattern-matches on Kind rather than using a class hierarchy
// per rule type.
type RuleKind string

const (
	RuleHoliday    RuleKind = "holiday"
	RuleBlackout   RuleKind = "blackout"
	RuleSlack      RuleKind = "slack"
	RuleLag        RuleKind = "lag"
	RuleConstraint RuleKind = "constraint"
	RuleDuration   RuleKind = "duration"
	RuleAlignment  RuleKind = "alignment"
	RuleCapacity   RuleKind = "capacity"
)

// HolidayVariant distinguishes the three ways a Holiday rule can classify
// non-working days.
type HolidayVariant string

const (
	HolidayWeekdaySet HolidayVariant = "weekday_set"
	HolidayExplicit   HolidayVariant = "explicit_dates"
	HolidayRecurring  HolidayVariant = "recurring"
)

// HolidayPayload backs a RuleHoliday rule. Exactly one of the three shapes
// is populated, selected by Variant.
type HolidayPayload struct {
	Variant HolidayVariant

	// HolidayWeekdaySet: weekday indices, 0=Sunday..6=Saturday.
	Weekdays []time.Weekday

	// HolidayExplicit: explicit calendar dates (day resolution).
	Dates []time.Time

	// HolidayRecurring: a (month, day) pair recurring every year.
	Month time.Month
	Day   int
}

// BlackoutPayload backs a RuleBlackout rule: an inclusive date range during
// which no scheduling may occur.
type BlackoutPayload struct {
	Start time.Time
	End   time.Time
}

// SlackPayload backs a RuleSlack rule: a buffer, in working days, inserted
// between a predecessor and its dependent. Scope is optional on both axes;
// an empty scope applies to every edge.
type SlackPayload struct {
	Days             int
	DependencyTypes  []DependencyType // optional scope
	BetweenFeatures  []FeaturePair    // optional scope
}

// FeaturePair identifies one specific (source, target) edge, used to scope
// Slack and Lag rules.
type FeaturePair struct {
	SourceID string
	TargetID string
}

// LagPayload backs a RuleLag rule: a signed working-day offset for one
// specific dependency edge. Positive delays, negative leads/overlaps.
type LagPayload struct {
	SourceID string
	TargetID string
	Days     int
}

// ConstraintKind is the closed set of date-locking constraint variants.
type ConstraintKind string

const (
	ConstraintFixedStart ConstraintKind = "fixed_start"
	ConstraintFixedEnd   ConstraintKind = "fixed_end"
	ConstraintFixedBoth  ConstraintKind = "fixed_both"
)

// ConstraintPayload backs a RuleConstraint rule. An empty FeatureIDs list
// means "applies to all features".
type ConstraintPayload struct {
	Kind       ConstraintKind
	FeatureIDs []string
}

// DurationPayload backs a RuleDuration rule: optional min/max day bounds.
// A nil Min or Max means that bound is unchecked. An empty FeatureIDs list
// means "applies to all features".
type DurationPayload struct {
	Min        *int
	Max        *int
	FeatureIDs []string
}

// AlignmentPayload backs a RuleAlignment rule: the weekday features under
// its scope must begin on. An empty FeatureIDs list means "applies to all
// features".
type AlignmentPayload struct {
	Weekday    time.Weekday
	FeatureIDs []string
}

// CapacityGroupBy selects whether a Capacity rule groups features by owner
// or by group.
type CapacityGroupBy string

const (
	CapacityByOwner CapacityGroupBy = "owner"
	CapacityByGroup CapacityGroupBy = "group"
)

// CapacityPayload backs a RuleCapacity rule: an advisory max-concurrency
// check grouped by owner or group.
type CapacityPayload struct {
	MaxConcurrent int
	GroupBy       CapacityGroupBy
}

// SchedulingRule is a tagged variant carrying exactly one populated payload
// field, selected by Kind. Disabled rules are retained (callers may toggle
// Enabled without removing the rule) but the Rule Registry filters them out
// before answering any query.
type SchedulingRule struct {
	ID      string
	Enabled bool
	Kind    RuleKind

	Holiday    *HolidayPayload
	Blackout   *BlackoutPayload
	Slack      *SlackPayload
	Lag        *LagPayload
	Constraint *ConstraintPayload
	Duration   *DurationPayload
	Alignment  *AlignmentPayload
	Capacity   *CapacityPayload
}
