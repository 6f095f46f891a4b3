// Package report renders catalog fragments as markdown sections.
//
// Every function is pure. Fragments are decoded once into typed rows, then
// rendered. A fragment that is not a usable record renders as the section's
// fixed unavailable sentence. Sorting is stable, so rows with equal scores
// keep their catalog order.
package report

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Default section limits.
const (
	TaskLimit             = 15
	TechnologyPerCategory = 6
	ScoredElementLimit    = 12
	DetailedActivityLimit = 35
	WorkContextLimit      = 10
)

// number keeps a catalog score together with its JSON spelling so output
// shows 46 rather than 46.000000.
type number struct {
	value float64
	text  string
}

func numberOf(r gjson.Result) number {
	if !r.Exists() || r.Type == gjson.Null {
		return number{text: "0"}
	}
	if r.Type == gjson.Number {
		return number{value: r.Float(), text: r.Raw}
	}
	return number{value: r.Float(), text: r.String()}
}

// truthy mirrors how the catalog signals presence: zero, empty and false
// values count as absent.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Number:
		return r.Float() != 0
	case gjson.String:
		return r.Str != ""
	case gjson.True:
		return true
	case gjson.JSON:
		return r.Raw != "[]" && r.Raw != "{}"
	default:
		return false
	}
}

// text returns a string member, or def when it is missing or null.
func text(r gjson.Result, def string) string {
	if !r.Exists() || r.Type == gjson.Null {
		return def
	}
	return r.String()
}

func list(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

func sortDesc[T any](rows []T, score func(T) float64) {
	sort.SliceStable(rows, func(i, j int) bool {
		return score(rows[i]) > score(rows[j])
	})
}

func capped[T any](rows []T, limit int) []T {
	if limit >= 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func lines(ls []string) string {
	return strings.Join(ls, "\n")
}
