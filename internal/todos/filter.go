package todos

import (
	"sort"

	"github.com/idilsaglam/worktravel/internal/model"
)

// Sorted returns the records in display order (ascending id).
func Sorted(records map[string]model.Record) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID) })
	return out
}

// Visible returns the records whose category is mode, in display order.
func Visible(records map[string]model.Record, mode model.Category) []model.Record {
	var out []model.Record
	for _, r := range Sorted(records) {
		if r.Category == mode {
			out = append(out, r)
		}
	}
	return out
}

// Counts tallies done and pending records in one category.
func Counts(records map[string]model.Record, mode model.Category) (done, pending int) {
	for _, r := range records {
		if r.Category != mode {
			continue
		}
		if r.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
