package pathfind

// Options defines parameters for a Finder.
type Options struct {
	// MaxExpansions caps the number of expanded nodes per search; 0 means
	// unlimited. Reaching the cap fails the search with ErrSearchLimit.
	MaxExpansions int
	// BoundsCheck rejects out-of-bounds endpoints with ErrOutOfBounds
	// instead of quietly reporting "no path".
	BoundsCheck bool
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxExpansions limits how many nodes a search may expand.
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// WithBoundsCheck enables endpoint validation.
func WithBoundsCheck() Option {
	return func(o *Options) { o.BoundsCheck = true }
}
