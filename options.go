package datalib

// Option defines a function type for configuring a Library.
type Option func(*Library)

// WithDefaultLibrary sets the fallback tier searched when the active root
// does not hold a requested item. This lets a user library override only the
// items it customizes while inheriting everything else.
func WithDefaultLibrary(path string) Option {
	return func(l *Library) {
		l.defaultRoot = path
	}
}

// WithConfirm sets the strategy consulted before an export overwrites an
// existing file. Without one, exports onto existing files are cancelled.
func WithConfirm(fn ConfirmFunc) Option {
	return func(l *Library) {
		l.confirm = fn
	}
}
