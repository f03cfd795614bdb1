// Package iopath implements a purely functional path value type:
// join/normalize/parent/name, with `.`/`..` collapsing and the rule
// that joining an absolute child discards the base — the slash-
// normalization and absolute-path detection generalize a host-
// specific is-absolute predicate into a platform-neutral value type
// usable by iofs's Filesystem SPI.
package iopath

import "strings"

// Path is an immutable, UTF-8, forward-slash-normalized path value.
// The zero value is the empty path (the current directory).
type Path struct {
	raw      string
	absolute bool
}

// Root is the filesystem root ("/").
var Root = Path{raw: "", absolute: true}

// Of parses s into a Path, normalizing backslashes to forward slashes,
// dropping every "." segment, and dropping every ".." segment rather
// than resolving it against a preceding component.
func Of(s string) Path {
	s = strings.ReplaceAll(s, "\\", "/")
	absolute := strings.HasPrefix(s, "/")

	segs := normalize(splitSegments(s), absolute)
	return Path{raw: strings.Join(segs, "/"), absolute: absolute}
}

func splitSegments(s string) []string {
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		out = append(out, p)
	}
	return out
}

// normalize drops every ".." token outright rather than resolving it
// against a preceding segment: `("/home" / ".." / "jake")` yields
// `"/home/jake"`, not `"/jake"`. `.` is dropped unconditionally by
// splitSegments before normalize ever sees it.
func normalize(segs []string, absolute bool) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s == ".." {
			continue
		}
		out = append(out, s)
	}
	return out
}

// IsAbsolute reports whether p is rooted.
func (p Path) IsAbsolute() bool { return p.absolute }

// String returns p's normalized slash-separated form.
func (p Path) String() string {
	if p.absolute {
		if p.raw == "" {
			return "/"
		}
		return "/" + p.raw
	}
	if p.raw == "" {
		return "."
	}
	return p.raw
}

// segments returns p's non-empty path components.
func (p Path) segments() []string {
	if p.raw == "" {
		return nil
	}
	return strings.Split(p.raw, "/")
}

// Name is the last non-empty segment, or "" for the filesystem root.
func (p Path) Name() string {
	segs := p.segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Parent is p with its last segment removed. The second return value
// is false when p has no parent (the root, or an empty relative
// path).
func (p Path) Parent() (Path, bool) {
	segs := p.segments()
	if len(segs) == 0 {
		return Path{}, false
	}
	parent := Path{raw: strings.Join(segs[:len(segs)-1], "/"), absolute: p.absolute}
	return parent, true
}

// Join appends child to p, dropping `.` and `..` segments from the
// combined segment list (see normalize). An absolute child clobbers the base entirely
// — "/base".Join("/home") is "/home", matching the UNC-style
// absolute-child-wins rule.
func (p Path) Join(child Path) Path {
	if child.absolute {
		return child
	}

	base := p.segments()
	combined := append(append([]string(nil), base...), child.segments()...)
	segs := normalize(combined, p.absolute)
	return Path{raw: strings.Join(segs, "/"), absolute: p.absolute}
}

// JoinString is a convenience wrapper around Join(Of(child)).
func (p Path) JoinString(child string) Path {
	return p.Join(Of(child))
}
