package ingest

import (
	"fmt"
	"io"
	"time"

	yaml "github.com/goccy/go-yaml"

	"schedgen/internal/model"
)

// RuleDocument is the YAML shape for a single rule file: a list of rule
// entries, each carrying exactly one populated payload selected by Kind —
// the on-disk counterpart of model.SchedulingRule's tagged-variant shape.
type RuleDocument struct {
	Rules []RuleEntry `yaml:"rules" validate:"dive"`
}

// RuleEntry is one rule within a RuleDocument. Only the field matching Kind
// is expected to be populated; ReadRuleDocument does not require the others to be
// absent, matching the Rule Registry's own tolerant, tag-dispatched
// reading.
type RuleEntry struct {
	ID      string `yaml:"id" validate:"required"`
	Enabled bool   `yaml:"enabled"`
	Kind    string `yaml:"kind" validate:"required,oneof=holiday blackout slack lag constraint duration alignment capacity"`

	Holiday    *HolidayEntry    `yaml:"holiday,omitempty"`
	Blackout   *BlackoutEntry   `yaml:"blackout,omitempty"`
	Slack      *SlackEntry      `yaml:"slack,omitempty"`
	Lag        *LagEntry        `yaml:"lag,omitempty"`
	Constraint *ConstraintEntry `yaml:"constraint,omitempty"`
	Duration   *DurationEntry   `yaml:"duration,omitempty"`
	Alignment  *AlignmentEntry  `yaml:"alignment,omitempty"`
	Capacity   *CapacityEntry   `yaml:"capacity,omitempty"`
}

// HolidayEntry mirrors model.HolidayPayload in YAML-friendly form: weekdays
// as integers (0=Sunday), dates as ISO strings.
type HolidayEntry struct {
	Variant  string `yaml:"variant" validate:"required,oneof=weekday_set explicit_dates recurring"`
	Weekdays []int  `yaml:"weekdays,omitempty"`
	Dates    []string `yaml:"dates,omitempty"`
	Month    int    `yaml:"month,omitempty"`
	Day      int    `yaml:"day,omitempty"`
}

// BlackoutEntry mirrors model.BlackoutPayload.
type BlackoutEntry struct {
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

// SlackEntry mirrors model.SlackPayload.
type SlackEntry struct {
	Days            int      `yaml:"days"`
	DependencyTypes []string `yaml:"dependency_types,omitempty"`
	BetweenFeatures []struct {
		Source string `yaml:"source"`
		Target string `yaml:"target"`
	} `yaml:"between_features,omitempty"`
}

// LagEntry mirrors model.LagPayload.
type LagEntry struct {
	Source string `yaml:"source" validate:"required"`
	Target string `yaml:"target" validate:"required"`
	Days   int    `yaml:"days"`
}

// ConstraintEntry mirrors model.ConstraintPayload.
type ConstraintEntry struct {
	Kind       string   `yaml:"kind" validate:"required,oneof=fixed_start fixed_end fixed_both"`
	FeatureIDs []string `yaml:"feature_ids,omitempty"`
}

// DurationEntry mirrors model.DurationPayload.
type DurationEntry struct {
	Min        *int     `yaml:"min,omitempty"`
	Max        *int     `yaml:"max,omitempty"`
	FeatureIDs []string `yaml:"feature_ids,omitempty"`
}

// AlignmentEntry mirrors model.AlignmentPayload.
type AlignmentEntry struct {
	Weekday    int      `yaml:"weekday"`
	FeatureIDs []string `yaml:"feature_ids,omitempty"`
}

// CapacityEntry mirrors model.CapacityPayload.
type CapacityEntry struct {
	MaxConcurrent int    `yaml:"max_concurrent"`
	GroupBy       string `yaml:"group_by" validate:"required,oneof=owner group"`
}

// ReadRuleDocument parses and validates a rule file, returning the engine's
// native []model.SchedulingRule.
func ReadRuleDocument(src io.Reader) ([]model.SchedulingRule, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule document: %w", err)
	}

	var doc RuleDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rule document: %w", err)
	}

	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("rule document failed validation: %w", err)
	}

	rules := make([]model.SchedulingRule, 0, len(doc.Rules))
	for i, entry := range doc.Rules {
		rule, err := entry.toSchedulingRule()
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, entry.ID, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (e RuleEntry) toSchedulingRule() (model.SchedulingRule, error) {
	rule := model.SchedulingRule{ID: e.ID, Enabled: e.Enabled, Kind: model.RuleKind(e.Kind)}

	switch rule.Kind {
	case model.RuleHoliday:
		if e.Holiday == nil {
			return rule, fmt.Errorf("holiday rule missing holiday payload")
		}
		payload, err := e.Holiday.toPayload()
		if err != nil {
			return rule, err
		}
		rule.Holiday = payload

	case model.RuleBlackout:
		if e.Blackout == nil {
			return rule, fmt.Errorf("blackout rule missing blackout payload")
		}
		start, err := parseDate(e.Blackout.Start)
		if err != nil {
			return rule, fmt.Errorf("blackout start: %w", err)
		}
		end, err := parseDate(e.Blackout.End)
		if err != nil {
			return rule, fmt.Errorf("blackout end: %w", err)
		}
		rule.Blackout = &model.BlackoutPayload{Start: start, End: end}

	case model.RuleSlack:
		if e.Slack == nil {
			return rule, fmt.Errorf("slack rule missing slack payload")
		}
		payload := &model.SlackPayload{Days: e.Slack.Days}
		for _, t := range e.Slack.DependencyTypes {
			payload.DependencyTypes = append(payload.DependencyTypes, model.DependencyType(t))
		}
		for _, pair := range e.Slack.BetweenFeatures {
			payload.BetweenFeatures = append(payload.BetweenFeatures, model.FeaturePair{
				SourceID: pair.Source, TargetID: pair.Target,
			})
		}
		rule.Slack = payload

	case model.RuleLag:
		if e.Lag == nil {
			return rule, fmt.Errorf("lag rule missing lag payload")
		}
		rule.Lag = &model.LagPayload{SourceID: e.Lag.Source, TargetID: e.Lag.Target, Days: e.Lag.Days}

	case model.RuleConstraint:
		if e.Constraint == nil {
			return rule, fmt.Errorf("constraint rule missing constraint payload")
		}
		rule.Constraint = &model.ConstraintPayload{
			Kind:       model.ConstraintKind(e.Constraint.Kind),
			FeatureIDs: e.Constraint.FeatureIDs,
		}

	case model.RuleDuration:
		if e.Duration == nil {
			return rule, fmt.Errorf("duration rule missing duration payload")
		}
		rule.Duration = &model.DurationPayload{
			Min: e.Duration.Min, Max: e.Duration.Max, FeatureIDs: e.Duration.FeatureIDs,
		}

	case model.RuleAlignment:
		if e.Alignment == nil {
			return rule, fmt.Errorf("alignment rule missing alignment payload")
		}
		rule.Alignment = &model.AlignmentPayload{
			Weekday: time.Weekday(e.Alignment.Weekday), FeatureIDs: e.Alignment.FeatureIDs,
		}

	case model.RuleCapacity:
		if e.Capacity == nil {
			return rule, fmt.Errorf("capacity rule missing capacity payload")
		}
		rule.Capacity = &model.CapacityPayload{
			MaxConcurrent: e.Capacity.MaxConcurrent,
			GroupBy:       model.CapacityGroupBy(e.Capacity.GroupBy),
		}

	default:
		return rule, fmt.Errorf("unknown rule kind %q", e.Kind)
	}

	return rule, nil
}

func (h HolidayEntry) toPayload() (*model.HolidayPayload, error) {
	payload := &model.HolidayPayload{Variant: model.HolidayVariant(h.Variant)}

	switch payload.Variant {
	case model.HolidayWeekdaySet:
		for _, wd := range h.Weekdays {
			payload.Weekdays = append(payload.Weekdays, time.Weekday(wd))
		}
	case model.HolidayExplicit:
		for _, s := range h.Dates {
			d, err := parseDate(s)
			if err != nil {
				return nil, fmt.Errorf("explicit holiday date: %w", err)
			}
			payload.Dates = append(payload.Dates, d)
		}
	case model.HolidayRecurring:
		payload.Month = time.Month(h.Month)
		payload.Day = h.Day
	}

	return payload, nil
}
