package columns

import (
	"slices"
	"sort"
	"strings"
)

// Sets are named column groups selectable with --set.
var Sets = map[string][]string{
	// the downloadable record
	"export": {"criterion", "value", "score"},
	"detail": {"criterion", "key", "inputs", "value", "score", "max"},
}

// ExpandSets concatenates the named sets in order, keeping the first
// occurrence of each column.
func ExpandSets(names []string) ([]string, error) {
	var out []string
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		set, ok := Sets[name]
		if !ok {
			return nil, &UnknownSetError{Name: name, Available: setNames()}
		}
		for _, col := range set {
			if !slices.Contains(out, col) {
				out = append(out, col)
			}
		}
	}
	return out, nil
}

// UnknownSetError is returned for a --set name that is not in Sets.
type UnknownSetError struct {
	Name      string
	Available []string
}

func (e *UnknownSetError) Error() string {
	return "unknown column set " + e.Name + " (known: " + strings.Join(e.Available, ", ") + ")"
}

func setNames() []string {
	names := make([]string, 0, len(Sets))
	for name := range Sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
