package suite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParamIterations is always set by the runner to the benchmark's iteration
// count, so a script's loop bound matches the count the rates divide by.
const ParamIterations = "iterations"

type ScriptTemplate struct {
	Name   string
	Source string
}

type TemplateParams map[string]any

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render substitutes every placeholder. It fails before substituting when any
// of RequiredParams has no value in params.
func (t *ScriptTemplate) Render(params TemplateParams) (string, error) {
	var missing []string
	for _, name := range t.RequiredParams() {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("script %q missing params: %v", t.Name, missing)
	}

	return placeholderRegex.ReplaceAllStringFunc(t.Source, func(match string) string {
		return formatValue(params[match[2:len(match)-2]])
	}), nil
}

func (t *ScriptTemplate) RequiredParams() []string {
	return findPlaceholders(t.Source)
}

func (t *ScriptTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("script has no name")
	}
	if strings.TrimSpace(t.Source) == "" {
		return fmt.Errorf("script %q has no source", t.Name)
	}
	return nil
}

// WithIterations copies params and sets ParamIterations.
func WithIterations(params TemplateParams, iterations uint64) TemplateParams {
	out := make(TemplateParams, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out[ParamIterations] = iterations
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		strs := make([]string, len(val))
		for i, item := range val {
			strs[i] = formatValue(item)
		}
		return strings.Join(strs, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func findPlaceholders(s string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if len(m) > 1 && !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
