package model

// CapacityWarning is emitted by the advisory capacity check when a
// resource's peak concurrency exceeds its configured maximum. It never
// alters dates.
type CapacityWarning struct {
	ResourceID   string
	ResourceKind CapacityGroupBy
	Max          int
	Actual       int
	FeatureNames []string
}

// DurationValidation is the result of checking a feature's actual duration
// against the applicable Duration rules. On the first violation,
// Min/Max/Message describe the rule that failed.
type DurationValidation struct {
	Valid   bool
	Min     *int
	Max     *int
	Message string
}
