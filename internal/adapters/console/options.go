package console

// Option configures a Renderer.
type Option func(*Renderer)

// WithBarWidth sets the width of the longest distribution bar.
func WithBarWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.barWidth = width
		}
	}
}
