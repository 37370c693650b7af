package metadata

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// scpLikeURL matches the `user@host:path` shorthand. Anything with a second
// colon, a slash before the colon or a missing user is left untouched.
var scpLikeURL = regexp.MustCompile(`^[^@:/]+@([^@:/]+):([^:]+)$`)

// CanonicalOrigin normalizes a remote URL to `host/path`, dropping the
// scheme, the ssh user and surrounding whitespace.
func CanonicalOrigin(raw string) string {
	origin := strings.TrimSpace(raw)

	for _, scheme := range []string{"https://", "http://"} {
		if rest, ok := strings.CutPrefix(origin, scheme); ok {
			origin = rest
			break
		}
	}

	if m := scpLikeURL.FindStringSubmatch(origin); m != nil {
		origin = m[1] + "/" + m[2]
	}

	return origin
}

// ProjectBasename returns the last path segment of a canonical origin,
// without a trailing .git.
func ProjectBasename(canonical string) string {
	return strings.TrimSuffix(path.Base(canonical), ".git")
}

// NormalizePath turns backslash separators into forward slashes and leaves
// everything else, drive letters included, as is.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Hash returns the name-based (version 5) UUID of s in the URL namespace.
// The same input yields the same identifier on every machine.
func Hash(s string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(s)).String()
}
