package tracker

import (
	"slices"
	"strings"
)

// EnvVar is a single environment variable.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FilterEnv returns the entries of environ ("NAME=value" pairs, as returned by
// os.Environ) whose name starts with prefix, sorted by name. Entries without
// '=' are ignored. An empty prefix matches every variable.
func FilterEnv(environ []string, prefix string) []EnvVar {
	vars := make([]EnvVar, 0)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		vars = append(vars, EnvVar{Name: name, Value: value})
	}

	slices.SortFunc(vars, func(a, b EnvVar) int {
		return strings.Compare(a.Name, b.Name)
	})
	return vars
}
