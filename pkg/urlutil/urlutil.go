package urlutil

import (
	"net/url"
	"strings"
)

// Resolve turns a link target found on a page into a fetchable URL string.
// Absolute http(s) targets are returned untouched; anything else is appended
// verbatim to base. No escaping or path cleaning is applied, so the result
// carries exactly the bytes the page (or the caller) provided.
func Resolve(base string, ref string) string {
	if IsAbsolute(ref) {
		return ref
	}
	return base + ref
}

// IsAbsolute reports whether raw is an absolute http or https URL.
func IsAbsolute(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := lowerASCII(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// TrimTrailingSlash removes trailing slashes so that base+"/path" never
// produces a double slash.
func TrimTrailingSlash(raw string) string {
	return strings.TrimRight(raw, "/")
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// StripFragment drops everything from the first '#', leaving the address
// the server actually sees.
func StripFragment(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// EscapeStrayPercent rewrites every '%' that does not start a valid
// %XX escape as "%25". Valid escapes and all other bytes are kept, so
// already-encoded input passes through unchanged.
func EscapeStrayPercent(raw string) string {
	if !strings.Contains(raw, "%") {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw) + 4)
	for i := 0; i < len(raw); i++ {
		if raw[i] == '%' && !(i+2 < len(raw) && isHex(raw[i+1]) && isHex(raw[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
