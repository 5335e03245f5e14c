package chromebrowser

import "errors"

var (
	// ErrNotLaunched is returned when browser methods are called before Launch.
	ErrNotLaunched = errors.New("chromebrowser: browser not launched")
)
