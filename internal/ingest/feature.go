// Package ingest reads Feature, Dependency, and SchedulingRule data from the
// host's persistence shape (CSV timeline rows, YAML rule documents) into
// the plain values internal/model and the engine packages operate on.
// Required-field checking uses github.com/go-playground/validator/v10
// struct tags instead of hand-rolled per-field checks.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"schedgen/internal/core"
	"schedgen/internal/model"
)

// Supported date formats for CSV timeline rows, tried in order.
var supportedDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
}

// FeatureRecord is the CSV row shape for a single feature. Dependencies
// is a comma-separated list of predecessor feature ids, expanded into FS
// dependency records by ResolveDependencies.
type FeatureRecord struct {
	ID           string `validate:"required"`
	Name         string `validate:"required"`
	Start        string `validate:"required"`
	End          string `validate:"required"`
	Status       string
	Owner        string
	Group        string
	Dependencies []string
}

var validate = validator.New()

// ToFeature converts a validated FeatureRecord into a model.Feature,
// parsing Start/End with the first matching supported date format.
func (rec FeatureRecord) ToFeature() (model.Feature, error) {
	start, err := parseDate(rec.Start)
	if err != nil {
		return model.Feature{}, fmt.Errorf("feature %s: start date: %w", rec.ID, err)
	}
	end, err := parseDate(rec.End)
	if err != nil {
		return model.Feature{}, fmt.Errorf("feature %s: end date: %w", rec.ID, err)
	}

	return model.Feature{
		ID:       rec.ID,
		Name:     rec.Name,
		StartAt:  start,
		EndAt:    end,
		StatusID: rec.Status,
		OwnerID:  rec.Owner,
		GroupID:  rec.Group,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, format := range supportedDateFormats {
		if parsed, err := time.Parse(format, s); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse %q with any supported format (tried %v)", s, supportedDateFormats)
}

// ResolveDependencies expands a FeatureRecord's Dependencies column into FS
// dependency records. The host is expected to resolve this column into
// typed edges before calling the engine.
func ResolveDependencies(records []FeatureRecord) []model.Dependency {
	var deps []model.Dependency
	for _, rec := range records {
		for _, predecessorID := range rec.Dependencies {
			deps = append(deps, model.Dependency{
				ID:       fmt.Sprintf("%s->%s", predecessorID, rec.ID),
				SourceID: predecessorID,
				TargetID: rec.ID,
				Type:     model.FinishToStart,
			})
		}
	}
	return deps
}

// Reader reads FeatureRecord values from a CSV stream and reports
// per-row parsing and validation failures through an ErrorAggregator,
// aggregating rather than failing fast so one malformed row does not
// discard the rest of the file.
type Reader struct {
	aggregator  *core.ErrorAggregator
	skipInvalid bool
}

// NewReader builds a Reader. When skipInvalid is false, the first invalid
// row aborts the read and its error is returned immediately.
func NewReader(skipInvalid bool) *Reader {
	return &Reader{
		aggregator:  core.NewErrorAggregator(),
		skipInvalid: skipInvalid,
	}
}

// Errors returns the aggregator collecting every row-level failure seen
// across all ReadFeatures calls on this Reader.
func (r *Reader) Errors() *core.ErrorAggregator {
	return r.aggregator
}

// ReadFeatures parses every row of a CSV stream into FeatureRecord values.
// The header row establishes a case-insensitive column-name-to-index map,
// so column order in the source file is not significant.
func (r *Reader) ReadFeatures(src io.Reader) ([]FeatureRecord, error) {
	csvReader := csv.NewReader(src)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	fieldIndex := indexHeader(header)

	var records []FeatureRecord
	rowNum := 1

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, fmt.Errorf("row %d: %w", rowNum, err)
		}
		rowNum++

		if len(row) == 0 || row[0] == "" {
			continue
		}

		rec := parseFeatureRow(row, fieldIndex)
		if err := validate.Struct(rec); err != nil {
			wrapped := core.NewDataError("feature_record", rowNum, "", err.Error(), err)
			r.aggregator.AddError(wrapped)
			if !r.skipInvalid {
				return records, wrapped
			}
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

func indexHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, field := range header {
		index[strings.ToLower(strings.TrimSpace(field))] = i
	}
	return index
}

func parseFeatureRow(row []string, fieldIndex map[string]int) FeatureRecord {
	get := func(name string) string {
		i, ok := fieldIndex[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	getList := func(name string) []string {
		value := get(name)
		if value == "" {
			return nil
		}
		var result []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}

	rec := FeatureRecord{
		ID:           get("id"),
		Name:         get("name"),
		Start:        get("start"),
		End:          get("end"),
		Status:       get("status"),
		Owner:        get("owner"),
		Group:        get("group"),
		Dependencies: getList("dependencies"),
	}
	if rec.ID == "" {
		rec.ID = rec.Name
	}
	return rec
}
