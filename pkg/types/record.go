package types

import "time"

// Field names used by the standard categories.
const (
	FieldID         = "id"
	FieldDate       = "date"
	FieldTimestamp  = "timestamp"
	FieldSkill      = "skill"
	FieldTask       = "task"
	FieldMilestone  = "milestone"
	FieldStatus     = "status"
	FieldReflection = "reflection"
)

// TimeLayout is the fixed-width ISO-8601 layout used for temporal fields.
// Every value is UTC with microsecond precision, so lexicographic order of
// the strings equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// zonelessLayouts are the accepted spellings of temporal values written
// without a zone, as local wall-clock time.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// NormalizeTime renders a stored temporal value in TimeLayout so values
// from different writers compare correctly as strings. A value with a zone
// or offset is converted to UTC; a value without one is read as wall-clock
// time in loc. A value that does not parse is returned unchanged.
func NormalizeTime(s string, loc *time.Location) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return FormatTime(t)
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return FormatTime(t)
		}
	}
	return s
}

// Fields is the caller-supplied input for a new record, keyed by field
// name. Values are expected to be strings; anything else is rejected by
// Validate.
type Fields map[string]any

// Record is a stored journal entry: a mapping from field name to value.
// Records appended through the registry carry an id, exactly one temporal
// field, and the fields declared for their category.
type Record map[string]string

// Time returns the record's temporal value, preferring "timestamp" over
// "date". ok is false when neither field is present.
func (r Record) Time() (string, bool) {
	if ts, ok := r[FieldTimestamp]; ok {
		return ts, true
	}
	if d, ok := r[FieldDate]; ok {
		return d, true
	}
	return "", false
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// TaggedRecord is a record annotated with its source category and its
// temporal value in TimeLayout. It exists only in the merged read view;
// Fields keeps the value as stored.
type TaggedRecord struct {
	Category Category `json:"category"`
	Time     string   `json:"time"`
	Fields   Record   `json:"fields"`
}

// Tag wraps r as a TaggedRecord for category c, reading zoneless times in
// loc. Records with no temporal field get an empty Time, which sorts after
// every real timestamp in the descending merged view.
func Tag(c Category, r Record, loc *time.Location) TaggedRecord {
	ts, _ := r.Time()
	return TaggedRecord{Category: c, Time: NormalizeTime(ts, loc), Fields: r.Clone()}
}
