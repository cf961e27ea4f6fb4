package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
	"unicode"
)

// Calculator computes content checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	CalculateNormalized(content []byte) string
}

// SHA256 implements Calculator with SHA-256. Normalization lowercases,
// strips SQL comments outside string literals and collapses whitespace.
//
// SHA256 is a zero-size type and is safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (SHA256) CalculateRaw(content []byte) string {
	return hexSum(content)
}

// CalculateNormalized computes SHA-256 of normalized content.
func (SHA256) CalculateNormalized(content []byte) string {
	return hexSum([]byte(normalize(string(content))))
}

// Fingerprint returns the checksum identifying a resource's content: the
// normalized checksum for SQL scripts, so reformatting a script keeps its
// fingerprint, and the raw checksum for everything else.
func Fingerprint(calc Calculator, name string, content []byte) string {
	if IsSQL(name) {
		return calc.CalculateNormalized(content)
	}
	return calc.CalculateRaw(content)
}

// IsSQL reports whether name has a SQL script extension.
func IsSQL(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".sql", ".ddl", ".dml", ".psql", ".pgsql", ".plpgsql":
		return true
	default:
		return false
	}
}

func hexSum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func normalize(content string) string {
	cleaned := stripComments(content)

	var b strings.Builder
	b.Grow(len(cleaned))

	pendingSpace := false
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// stripComments replaces -- and /* */ comments (block comments nest) with
// a single space. Quoted literals, including dollar-quoted bodies, are
// copied untouched.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "--"):
			b.WriteByte(' ')
			i = skipLineComment(s, i)
		case strings.HasPrefix(s[i:], "/*"):
			b.WriteByte(' ')
			i = skipBlockComment(s, i)
		case s[i] == '\'':
			end := quotedEnd(s, i)
			b.WriteString(s[i:end])
			i = end
		case s[i] == '$':
			if tag := dollarTag(s, i); tag != "" {
				end := dollarEnd(s, i, tag)
				b.WriteString(s[i:end])
				i = end
				continue
			}
			b.WriteByte(s[i])
			i++
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// skipLineComment returns the index of the line break ending the comment
// at i, so the break itself is kept.
func skipLineComment(s string, i int) int {
	if nl := strings.IndexAny(s[i:], "\r\n"); nl >= 0 {
		return i + nl
	}
	return len(s)
}

func skipBlockComment(s string, i int) int {
	depth := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "/*"):
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "*/"):
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return len(s)
}

// quotedEnd returns the index just past the single-quoted literal starting
// at i. Doubled quotes are escapes.
func quotedEnd(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		if s[j] != '\'' {
			continue
		}
		if j+1 < len(s) && s[j+1] == '\'' {
			j++
			continue
		}
		return j + 1
	}
	return len(s)
}

// dollarTag returns the $tag$ (or $$) opening at i, or "".
func dollarTag(s string, i int) string {
	for j := i + 1; j < len(s); j++ {
		c := s[j]
		switch {
		case c == '$':
			return s[i : j+1]
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && j > i+1:
		default:
			return ""
		}
	}
	return ""
}

func dollarEnd(s string, i int, tag string) int {
	body := i + len(tag)
	if end := strings.Index(s[body:], tag); end >= 0 {
		return body + end + len(tag)
	}
	return len(s)
}

var _ Calculator = SHA256{}
