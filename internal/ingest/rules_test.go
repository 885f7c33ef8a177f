package ingest

import (
	"strings"
	"testing"
	"time"

	"schedgen/internal/model"
)

func TestReadRuleDocumentParsesEachKind(t *testing.T) {
	doc := `
rules:
  - id: weekends
    enabled: true
    kind: holiday
    holiday:
      variant: weekday_set
      weekdays: [0, 6]
  - id: freeze
    enabled: true
    kind: blackout
    blackout:
      start: "2026-12-24"
      end: "2026-12-26"
  - id: buffer
    enabled: true
    kind: slack
    slack:
      days: 2
  - id: overlap
    enabled: true
    kind: lag
    lag:
      source: A
      target: B
      days: -1
  - id: lockdown
    enabled: true
    kind: constraint
    constraint:
      kind: fixed_end
      feature_ids: [B]
  - id: bounds
    enabled: true
    kind: duration
    duration:
      min: 1
      max: 10
  - id: monday-start
    enabled: true
    kind: alignment
    alignment:
      weekday: 1
  - id: one-at-a-time
    enabled: true
    kind: capacity
    capacity:
      max_concurrent: 1
      group_by: owner
`
	rules, err := ReadRuleDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadRuleDocument returned error: %v", err)
	}
	if len(rules) != 8 {
		t.Fatalf("len(rules) = %d, want 8", len(rules))
	}

	byID := make(map[string]model.SchedulingRule, len(rules))
	for _, r := range rules {
		byID[r.ID] = r
	}

	if h := byID["weekends"].Holiday; h == nil || len(h.Weekdays) != 2 || h.Weekdays[0] != time.Sunday {
		t.Errorf("weekends holiday = %+v", h)
	}
	if b := byID["freeze"].Blackout; b == nil || !b.Start.Equal(time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("freeze blackout = %+v", b)
	}
	if s := byID["buffer"].Slack; s == nil || s.Days != 2 {
		t.Errorf("buffer slack = %+v", s)
	}
	if l := byID["overlap"].Lag; l == nil || l.Days != -1 {
		t.Errorf("overlap lag = %+v", l)
	}
	if c := byID["lockdown"].Constraint; c == nil || c.Kind != model.ConstraintFixedEnd {
		t.Errorf("lockdown constraint = %+v", c)
	}
	if d := byID["bounds"].Duration; d == nil || d.Min == nil || *d.Min != 1 {
		t.Errorf("bounds duration = %+v", d)
	}
	if a := byID["monday-start"].Alignment; a == nil || a.Weekday != time.Monday {
		t.Errorf("monday-start alignment = %+v", a)
	}
	if cap := byID["one-at-a-time"].Capacity; cap == nil || cap.MaxConcurrent != 1 {
		t.Errorf("one-at-a-time capacity = %+v", cap)
	}
}

func TestReadRuleDocumentRejectsUnknownKind(t *testing.T) {
	doc := `
rules:
  - id: bad
    enabled: true
    kind: teleport
`
	if _, err := ReadRuleDocument(strings.NewReader(doc)); err == nil {
		t.Error("expected an error for an unknown rule kind")
	}
}

func TestReadRuleDocumentRejectsMissingPayload(t *testing.T) {
	doc := `
rules:
  - id: bad
    enabled: true
    kind: holiday
`
	if _, err := ReadRuleDocument(strings.NewReader(doc)); err == nil {
		t.Error("expected an error for a holiday rule with no holiday payload")
	}
}
