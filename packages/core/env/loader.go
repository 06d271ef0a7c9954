package env

import (
	"os"
	"strings"
)

// VarPrefix marks OS environment variables that become placeholder variables:
// PATHPICK_VAR_token is available as {{token}}.
const VarPrefix = "PATHPICK_VAR_"

func MergeVariables(sources ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

// LoadSystemEnv returns OS environment variables whose name starts with
// prefix, keyed by the remainder of the name.
func LoadSystemEnv(prefix string) map[string]any {
	result := make(map[string]any)
	for _, e := range os.Environ() {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			result[key[len(prefix):]] = value
		}
	}
	return result
}

// ParseAssignments turns name=value pairs, as given with --var, into variables.
func ParseAssignments(pairs []string) (map[string]any, []string) {
	vars := make(map[string]any)
	var invalid []string
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			invalid = append(invalid, p)
			continue
		}
		vars[name] = value
	}
	return vars, invalid
}

func stringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Setup builds a resolver from, in increasing precedence: the .env file at
// dotenvPath (exported to the OS environment, missing file ignored),
// PATHPICK_VAR_* variables and explicit assignments.
func Setup(dotenvPath string, assignments []string, warn WarnFunc) (*Resolver, error) {
	r := NewResolver()
	r.SetWarnFunc(warn)

	var fromFile map[string]any
	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			vars, err := LoadAndExportDotEnv(dotenvPath)
			if err != nil {
				return nil, err
			}
			fromFile = stringMap(vars)
		}
	}

	explicit, invalid := ParseAssignments(assignments)
	if len(invalid) > 0 && warn != nil {
		warn("ignoring malformed variable assignments: %s", strings.Join(invalid, ", "))
	}

	r.SetVariables(MergeVariables(fromFile, LoadSystemEnv(VarPrefix), explicit))
	return r, nil
}
