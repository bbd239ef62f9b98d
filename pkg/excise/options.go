package excise

// options holds the tunable text the engine matches and inserts.
type options struct {
	marker      string
	keyword     string
	replacement Replacement
}

// Option configures Locate and Excise.
type Option func(*options)

// WithMarker overrides the marker comment searched for above the declaration.
func WithMarker(marker string) Option {
	return func(o *options) { o.marker = marker }
}

// WithKeyword overrides the declaration keyword ("class" by default).
func WithKeyword(keyword string) Option {
	return func(o *options) { o.keyword = keyword }
}

// WithReplacement overrides the block inserted in place of the declaration.
func WithReplacement(r Replacement) Option {
	return func(o *options) { o.replacement = r }
}

func newOptions(opts []Option) options {
	o := options{
		marker:      DefaultMarker,
		keyword:     DefaultKeyword,
		replacement: DefaultReplacement(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// openingToken is the substring that marks the declaration, e.g. "class Foo".
func (o options) openingToken(name string) string {
	return o.keyword + " " + name
}
