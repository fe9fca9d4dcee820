package geometry

// Validator is implemented by primitives and materials that can check their
// parameters at scene-construction time, keeping the tracing path free of
// degenerate-input checks.
type Validator interface {
	Validate() error
}
