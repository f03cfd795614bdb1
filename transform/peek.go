package transform

import "github.com/kopia/okio-sub006/buffer"

// Peek returns a read-only view of src that shares src's already
// buffered bytes and pulls further bytes from the same upstream, but
// never advances src's own read position — a thin re-export of
// BufferedSource.Peek so peek composes with the rest of this
// package's decorators without an import detour back into buffer.
func Peek(src *buffer.BufferedSource) *buffer.BufferedSource {
	return src.Peek()
}
