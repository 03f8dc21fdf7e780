package types

import "strings"

// Category names a journal record kind. Each category has its own store.
type Category string

// Standard categories.
const (
	CategorySkill      Category = "skill"
	CategoryMilestone  Category = "milestone"
	CategoryReflection Category = "reflection"
)

// StandardCategories lists every category in merge order. The merged view
// concatenates categories in this order before sorting, so it also decides
// how records with equal timestamps are ordered.
var StandardCategories = []Category{
	CategorySkill,
	CategoryMilestone,
	CategoryReflection,
}

// categoryFiles maps each category to its backing file name.
var categoryFiles = map[Category]string{
	CategorySkill:      "cognitive_skills_log.json",
	CategoryMilestone:  "milestones.json",
	CategoryReflection: "reflection_logs.json",
}

// categoryLabels holds the human-readable label for each category.
var categoryLabels = map[Category]string{
	CategorySkill:      "Skill Task",
	CategoryMilestone:  "Milestone",
	CategoryReflection: "Reflection",
}

// Known reports whether c is one of the standard categories.
func (c Category) Known() bool {
	_, ok := categoryFiles[c]
	return ok
}

// FileName returns the backing file name for the category, or the empty
// string for an unknown category.
func (c Category) FileName() string {
	return categoryFiles[c]
}

// Label returns the display label used when rendering the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// TemporalField returns the name of the field that carries the creation
// time for records of this category. Skill records use "date"; the others
// use "timestamp".
func (c Category) TemporalField() string {
	if c == CategorySkill {
		return FieldDate
	}
	return FieldTimestamp
}

// ParseCategory resolves a user-supplied category name. It accepts the
// singular names, common plurals, and the display labels, ignoring case.
// Returns ErrUnknownCategory when nothing matches.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skill", "skills", "skill task", "skill tasks", "skill-task", "skill-tasks":
		return CategorySkill, nil
	case "milestone", "milestones":
		return CategoryMilestone, nil
	case "reflection", "reflections":
		return CategoryReflection, nil
	}
	return "", &ValidationError{Category: Category(s), Err: ErrUnknownCategory}
}
