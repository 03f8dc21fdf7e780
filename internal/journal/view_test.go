package journal

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/journal/internal/jsonstore"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// fakeLister serves canned records per category.
type fakeLister struct {
	records map[types.Category][]types.Record
	errs    map[types.Category]error
	calls   int
}

func (f *fakeLister) List(c types.Category) ([]types.Record, error) {
	f.calls++
	if err := f.errs[c]; err != nil {
		return []types.Record{}, err
	}
	return f.records[c], nil
}

func TestAllSortedOrdering(t *testing.T) {
	src := &fakeLister{records: map[types.Category][]types.Record{
		types.CategorySkill: {
			{"skill": "REMEMBER", "task": "recall", "date": "2024-01-01T10:00:00"},
		},
		types.CategoryMilestone: {
			{"milestone": "m", "status": "Completed", "timestamp": "2024-01-02T09:00:00"},
		},
		types.CategoryReflection: {
			{"reflection": "r", "timestamp": "2024-01-01T10:00:00"},
		},
	}}

	got, err := NewView(src, InLocation(time.UTC)).AllSorted()
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, types.CategoryMilestone, got[0].Category)
	assert.Equal(t, "2024-01-02T09:00:00.000000Z", got[0].Time)
	assert.Equal(t, types.CategorySkill, got[1].Category)
	assert.Equal(t, "2024-01-01T10:00:00.000000Z", got[1].Time)
	assert.Equal(t, types.CategoryReflection, got[2].Category)
	assert.Equal(t, "2024-01-01T10:00:00.000000Z", got[2].Time)
}

func TestAllSortedTiesKeepAppendOrderWithinCategory(t *testing.T) {
	src := &fakeLister{records: map[types.Category][]types.Record{
		types.CategoryReflection: {
			{"reflection": "first", "timestamp": "2024-01-01T10:00:00"},
			{"reflection": "second", "timestamp": "2024-01-01T10:00:00"},
			{"reflection": "third", "timestamp": "2024-01-01T10:00:00"},
		},
	}}

	got, err := NewView(src).AllSorted()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Fields["reflection"])
	assert.Equal(t, "second", got[1].Fields["reflection"])
	assert.Equal(t, "third", got[2].Fields["reflection"])
}

func TestAllSortedDescending(t *testing.T) {
	src := &fakeLister{records: map[types.Category][]types.Record{
		types.CategorySkill: {
			{"skill": "a", "task": "t", "date": "2024-01-01T00:00:00.000000Z"},
			{"skill": "b", "task": "t", "date": "2024-03-01T00:00:00.000000Z"},
		},
		types.CategoryReflection: {
			{"reflection": "c", "timestamp": "2024-02-01T00:00:00.000000Z"},
		},
	}}

	got, err := NewView(src).AllSorted()
	require.NoError(t, err)

	var times []string
	for _, tr := range got {
		times = append(times, tr.Time)
	}
	assert.Equal(t, []string{
		"2024-03-01T00:00:00.000000Z",
		"2024-02-01T00:00:00.000000Z",
		"2024-01-01T00:00:00.000000Z",
	}, times)
}

func TestAllSortedZonelessTimesReadAsLocal(t *testing.T) {
	// An older tool wrote the skill at 10:00 local wall-clock time in UTC+2,
	// which is 08:00Z; the reflection was written later at 09:00Z.
	src := &fakeLister{records: map[types.Category][]types.Record{
		types.CategorySkill: {
			{"skill": "REMEMBER", "task": "recall", "date": "2024-01-01T10:00:00.000000"},
		},
		types.CategoryReflection: {
			{"reflection": "r", "timestamp": "2024-01-01T09:00:00.000000Z"},
		},
	}}

	got, err := NewView(src, InLocation(time.FixedZone("UTC+2", 2*3600))).AllSorted()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.CategoryReflection, got[0].Category)
	assert.Equal(t, types.CategorySkill, got[1].Category)
	assert.Equal(t, "2024-01-01T08:00:00.000000Z", got[1].Time)
	assert.Equal(t, "2024-01-01T10:00:00.000000", got[1].Fields["date"])
}

func TestAllSortedRecordWithoutTimeSortsLast(t *testing.T) {
	src := &fakeLister{records: map[types.Category][]types.Record{
		types.CategorySkill: {
			{"skill": "no time", "task": "t"},
			{"skill": "timed", "task": "t", "date": "2024-01-01T00:00:00"},
		},
	}}

	got, err := NewView(src).AllSorted()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "timed", got[0].Fields["skill"])
	assert.Equal(t, "no time", got[1].Fields["skill"])
	assert.Empty(t, got[1].Time)
}

func TestAllSortedEmpty(t *testing.T) {
	got, err := NewView(&fakeLister{}).AllSorted()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAllSortedReportsReadErrorsAndKeepsOthers(t *testing.T) {
	readErr := &types.ReadError{Path: "milestones.json", Err: types.ErrMalformedStore}
	src := &fakeLister{
		records: map[types.Category][]types.Record{
			types.CategorySkill:      {{"skill": "s", "task": "t", "date": "2024-01-01"}},
			types.CategoryReflection: {{"reflection": "r", "timestamp": "2024-01-02"}},
		},
		errs: map[types.Category]error{types.CategoryMilestone: readErr},
	}

	got, err := NewView(src).AllSorted()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMalformedStore))
	assert.True(t, types.IsRead(err))
	assert.Len(t, got, 2)
}

func TestAllSortedDoesNotMutateSource(t *testing.T) {
	rec := types.Record{"reflection": "r", "timestamp": "2024-01-02"}
	src := &fakeLister{records: map[types.Category][]types.Record{
		types.CategoryReflection: {rec},
	}}

	got, err := NewView(src).AllSorted()
	require.NoError(t, err)
	got[0].Fields["reflection"] = "changed"

	assert.Equal(t, "r", rec["reflection"])
}

func TestAllSortedIsFreshEachCall(t *testing.T) {
	src := &fakeLister{records: map[types.Category][]types.Record{
		types.CategoryReflection: {{"reflection": "r", "timestamp": "2024-01-02"}},
	}}
	v := NewView(src)

	first, err := v.AllSorted()
	require.NoError(t, err)
	src.records[types.CategoryReflection] = append(src.records[types.CategoryReflection],
		types.Record{"reflection": "r2", "timestamp": "2024-01-03"})
	second, err := v.AllSorted()
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
	assert.Equal(t, 2*len(types.StandardCategories), src.calls)
}

func TestSortedRestrictsCategories(t *testing.T) {
	src := &fakeLister{records: map[types.Category][]types.Record{
		types.CategorySkill:      {{"skill": "s", "task": "t", "date": "2024-01-01"}},
		types.CategoryMilestone:  {{"milestone": "m", "status": "Pending", "timestamp": "2024-01-01"}},
		types.CategoryReflection: {{"reflection": "r", "timestamp": "2024-01-01"}},
	}}

	got, err := NewView(src).Sorted(types.CategoryReflection, types.CategorySkill)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Tie-break follows the standard order, not the argument order.
	assert.Equal(t, types.CategorySkill, got[0].Category)
	assert.Equal(t, types.CategoryReflection, got[1].Category)
}

func TestRegistryAllSortedFromDisk(t *testing.T) {
	r := openTestRegistry(t)

	put := func(c types.Category, rec types.Record) {
		t.Helper()
		require.NoError(t, jsonstore.New(r.Path(c), jsonstore.WithLogger(quietLogger())).Append(rec))
	}
	put(types.CategorySkill, types.Record{"skill": "REMEMBER", "task": "recall", "date": "2024-01-01T10:00:00"})
	put(types.CategoryMilestone, types.Record{"milestone": "m", "status": "Completed", "timestamp": "2024-01-02T09:00:00"})
	put(types.CategoryReflection, types.Record{"reflection": "r", "timestamp": "2024-01-01T10:00:00"})

	got, err := r.AllSorted()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []types.Category{
		types.CategoryMilestone,
		types.CategorySkill,
		types.CategoryReflection,
	}, []types.Category{got[0].Category, got[1].Category, got[2].Category})
}

func TestRegistryAllSortedMixesLegacyLocalTimes(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r := openTestRegistry(t, WithClock(fixedClock(now)))

	// Written an hour earlier by an older tool, as zoneless local time.
	legacy := now.Add(-time.Hour).In(time.Local).Format("2006-01-02T15:04:05.000000")
	require.NoError(t, jsonstore.New(r.Path(types.CategorySkill), jsonstore.WithLogger(quietLogger())).
		Append(types.Record{"skill": "REMEMBER", "task": "recall", "date": legacy}))
	_, err := r.LogReflection("newer")
	require.NoError(t, err)

	got, err := r.AllSorted()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.CategoryReflection, got[0].Category)
	assert.Equal(t, "2024-01-01T09:00:00.000000Z", got[0].Time)
	assert.Equal(t, types.CategorySkill, got[1].Category)
	assert.Equal(t, "2024-01-01T08:00:00.000000Z", got[1].Time)
}

func TestRegistryAllSortedWithCorruptStore(t *testing.T) {
	r := openTestRegistry(t)
	_, err := r.LogSkill("REMEMBER", "recall")
	require.NoError(t, err)
	_, err = r.LogReflection("thinking")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(r.Path(types.CategoryMilestone), []byte("not json"), 0o644))

	got, err := r.AllSorted()
	require.Error(t, err)
	assert.True(t, types.IsRead(err))
	require.Len(t, got, 2)
	// The reflection was appended after the skill, so it is newer.
	assert.Equal(t, types.CategoryReflection, got[0].Category)
	assert.Equal(t, types.CategorySkill, got[1].Category)
}
