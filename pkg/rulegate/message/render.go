package message

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/randalmurphal/rulegate/pkg/rulegate"
)

// Regular expressions for placeholder patterns.
var (
	// bracePattern matches ${path} - path is one or more dot-separated
	// identifier segments.
	bracePattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)\}`)

	// dollarPattern matches $varname where varname is followed by a non-word
	// character or end of string. This prevents $spread from matching inside
	// $spread_pips.
	dollarPattern = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)(?:\b|$)`)
)

// Renderer expands placeholder patterns in violation messages.
//
// Create with NewRenderer() and configure with Option functions.
// Renderer is safe for concurrent use after construction.
type Renderer struct {
	missingAction MissingAction
	braceStyle    bool
	dollarStyle   bool
}

// NewRenderer creates a new Renderer with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (keep placeholders as-is)
//   - BraceStyle: enabled (${path})
//   - DollarStyle: enabled ($var)
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		missingAction: MissingKeep,
		braceStyle:    true,
		dollarStyle:   true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render expands placeholder patterns in s using the provided snapshot.
//
// Returns the rendered string and any error encountered.
// Errors are only returned when MissingAction is MissingError and
// a placeholder path does not resolve.
//
// Example:
//
//	r := NewRenderer()
//	msg, err := r.Render("spread ${spread_pips} too wide", snapshot)
//	// msg: "spread 4.5 too wide"
func (r *Renderer) Render(s string, vars map[string]any) (string, error) {
	if s == "" {
		return "", nil
	}

	result := s
	var missing []string

	// Expand ${path} placeholders first (more specific).
	if r.braceStyle {
		result = bracePattern.ReplaceAllStringFunc(result, func(match string) string {
			// Extract the path from ${path}.
			path := match[2 : len(match)-1]
			if val, ok := rulegate.LookupPath(vars, path); ok {
				return formatValue(val)
			}
			// Path did not resolve.
			switch r.missingAction {
			case MissingEmpty:
				return ""
			case MissingError:
				missing = append(missing, path)
				return match // Keep for now, will return error.
			default: // MissingKeep
				return match
			}
		})
	}

	// Expand $var placeholders (single segment, after braces).
	if r.dollarStyle {
		result = dollarPattern.ReplaceAllStringFunc(result, func(match string) string {
			// Extract the name from $name.
			name := match[1:]
			if val, ok := rulegate.LookupPath(vars, name); ok {
				return formatValue(val)
			}
			// Name did not resolve.
			switch r.missingAction {
			case MissingEmpty:
				return ""
			case MissingError:
				missing = append(missing, name)
				return match // Keep for now, will return error.
			default: // MissingKeep
				return match
			}
		})
	}

	if len(missing) > 0 {
		return result, &UndefinedVariableError{Names: missing}
	}

	return result, nil
}

// MustRender expands placeholder patterns in s and panics on error.
//
// Use this when all placeholders are known to resolve or when using
// MissingKeep/MissingEmpty which never return errors.
func (r *Renderer) MustRender(s string, vars map[string]any) string {
	result, err := r.Render(s, vars)
	if err != nil {
		panic(fmt.Sprintf("message: %v", err))
	}
	return result
}

// RenderAll expands placeholder patterns in all strings.
//
// Returns a new slice with rendered strings.
// On error (with MissingError), returns nil and the first error.
func (r *Renderer) RenderAll(ss []string, vars map[string]any) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		rendered, err := r.Render(s, vars)
		if err != nil {
			return nil, err
		}
		results[i] = rendered
	}
	return results, nil
}

// formatValue renders a resolved snapshot value for message text.
// Floats use the compact form: 4.50 renders as 4.5 and whole numbers
// drop the point.
func formatValue(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// UndefinedVariableError is returned when MissingError is set and
// one or more placeholder paths do not resolve.
type UndefinedVariableError struct {
	// Names is the list of unresolved paths.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

// defaultRenderer is the package-level renderer with default settings.
var defaultRenderer = NewRenderer()

// Render expands placeholder patterns in s using the default renderer.
//
// Uses MissingKeep behavior (unresolved placeholders stay as-is).
//
// Example:
//
//	msg := message.Render("spread ${spread_pips} too wide", snapshot)
//	// msg: "spread 4.5 too wide"
func Render(s string, vars map[string]any) string {
	// Default renderer never returns errors (MissingKeep).
	result, _ := defaultRenderer.Render(s, vars)
	return result
}

// RenderAll expands placeholder patterns in all strings using the default renderer.
//
// Uses MissingKeep behavior (unresolved placeholders stay as-is).
func RenderAll(ss []string, vars map[string]any) []string {
	// Default renderer never returns errors (MissingKeep).
	results, _ := defaultRenderer.RenderAll(ss, vars)
	return results
}
