package message

// MissingAction specifies how to handle placeholders that don't resolve.
type MissingAction int

const (
	// MissingKeep keeps the placeholder as-is when the path is not found.
	// This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces the placeholder with an empty string when
	// the path is not found.
	MissingEmpty

	// MissingError returns an error when a path is not found.
	MissingError
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithMissingAction sets how unresolved placeholders are handled.
//
// Default: MissingKeep (keep placeholder as-is)
//
// Example:
//
//	r := NewRenderer(WithMissingAction(MissingError))
//	_, err := r.Render("${gone}", nil)
//	// err: "undefined variable: gone"
func WithMissingAction(action MissingAction) Option {
	return func(r *Renderer) {
		r.missingAction = action
	}
}

// WithBraceStyle enables or disables ${path} pattern rendering.
//
// Default: true (enabled)
func WithBraceStyle(enabled bool) Option {
	return func(r *Renderer) {
		r.braceStyle = enabled
	}
}

// WithDollarStyle enables or disables $var pattern rendering.
//
// Default: true (enabled)
func WithDollarStyle(enabled bool) Option {
	return func(r *Renderer) {
		r.dollarStyle = enabled
	}
}
