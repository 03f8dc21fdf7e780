package types

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Length ceilings, in characters, for text fields.
const (
	MaxSkillLen = 100
	MaxTextLen  = 1000
)

// fieldRule declares one required text field of a category. A zero max
// means the field has no length ceiling.
type fieldRule struct {
	name string
	max  int
}

// categoryRules lists the required fields per category, in the order they
// are checked.
var categoryRules = map[Category][]fieldRule{
	CategorySkill: {
		{name: FieldSkill, max: MaxSkillLen},
		{name: FieldTask, max: MaxTextLen},
	},
	CategoryMilestone: {
		{name: FieldMilestone, max: MaxTextLen},
		{name: FieldStatus},
	},
	CategoryReflection: {
		{name: FieldReflection, max: MaxTextLen},
	},
}

// Validate checks fields against the rules for category. It returns nil or
// a *ValidationError naming the first offending field. Validate does not
// check milestone status membership; callers resolve status with
// ParseMilestoneStatus before building fields.
func Validate(category Category, fields Fields) error {
	rules, ok := categoryRules[category]
	if !ok {
		return &ValidationError{Category: category, Err: ErrUnknownCategory}
	}
	for _, rule := range rules {
		raw, present := fields[rule.name]
		if !present || raw == nil {
			return &ValidationError{Category: category, Field: rule.name, Err: ErrFieldMissing}
		}
		s, isText := textValue(raw)
		if !isText {
			return &ValidationError{Category: category, Field: rule.name, Err: ErrFieldNotText}
		}
		s = cleanText(s)
		if s == "" {
			return &ValidationError{Category: category, Field: rule.name, Err: ErrFieldEmpty}
		}
		if rule.max > 0 && utf8.RuneCountInString(s) > rule.max {
			return &ValidationError{Category: category, Field: rule.name, Err: ErrFieldTooLong}
		}
	}
	return nil
}

// Valid is the boolean form of Validate.
func Valid(category Category, fields Fields) bool {
	return Validate(category, fields) == nil
}

// Normalize builds the stored payload for fields that passed Validate: only
// the category's declared fields are kept, each trimmed and NFC-normalized.
// Identity and temporal fields are left for the registry to attach.
func Normalize(category Category, fields Fields) Record {
	rules := categoryRules[category]
	out := make(Record, len(rules)+2)
	for _, rule := range rules {
		if s, ok := textValue(fields[rule.name]); ok {
			out[rule.name] = cleanText(s)
		}
	}
	return out
}

// textValue accepts the string-like types callers hand in.
func textValue(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case MilestoneStatus:
		return string(s), true
	case []byte:
		return string(s), true
	}
	return "", false
}

func cleanText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
