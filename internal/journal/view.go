package journal

import (
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// Lister is the read side of a registry.
type Lister interface {
	List(category types.Category) ([]types.Record, error)
}

// View is a read-only aggregation over a Lister. It holds no state of its
// own; every call reads the stores again.
type View struct {
	src Lister
	loc *time.Location
}

// ViewOption configures a View.
type ViewOption func(*View)

// InLocation sets the zone used for stored times that carry none, such as
// those written by older tools as local wall-clock time. The default is
// time.Local.
func InLocation(loc *time.Location) ViewOption {
	return func(v *View) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// NewView returns a View reading from src.
func NewView(src Lister, opts ...ViewOption) *View {
	v := &View{src: src, loc: time.Local}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// AllSorted tags every record of every category with its source category
// and returns them newest first. Times are compared after conversion to
// UTC (see types.NormalizeTime). Categories are concatenated in
// types.StandardCategories order and each keeps its append order; the sort
// is stable, so records with equal times keep that order.
//
// A category whose store cannot be read contributes nothing; its read
// error is joined into the returned error while the records of the
// readable categories are still returned.
func (v *View) AllSorted() ([]types.TaggedRecord, error) {
	return v.Sorted(types.StandardCategories...)
}

// Sorted is AllSorted restricted to the given categories. The tie-break
// order is always the standard category order, whatever order the
// arguments come in.
func (v *View) Sorted(categories ...types.Category) ([]types.TaggedRecord, error) {
	var (
		out  []types.TaggedRecord
		errs []error
	)
	for _, c := range types.StandardCategories {
		if !slices.Contains(categories, c) {
			continue
		}
		records, err := v.src.List(c)
		if err != nil {
			errs = append(errs, err)
		}
		for _, rec := range records {
			out = append(out, types.Tag(c, rec, v.loc))
		}
	}
	if out == nil {
		out = []types.TaggedRecord{}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time > out[j].Time
	})
	return out, errors.Join(errs...)
}
