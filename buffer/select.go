package buffer

import "github.com/kopia/okio-sub006/options"

// Select scans b against o, consuming and returning the index of the
// lowest-indexed matching candidate, or -1 with nothing consumed.
func (b *Buffer) Select(o *options.Options) int64 {
	return options.Select(b, o)
}
