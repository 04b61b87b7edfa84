package validate

import (
	"regexp"
	"strings"

	"ecofinds/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCond  = regexp.MustCompile(`^(excellent|good|fair|poor)$`)
)

// Inline images arrive as data: URIs; cap at roughly 5 MB of base64.
const maxImageRef = 7 << 20

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a resource identifier (product ids, user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Condition(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reCond.MatchString(s)
}

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range domain.Categories {
		if s == c {
			return s, true
		}
	}
	return s, false
}

// Title validates a displayable listing title.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

func Description(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 2000
}

func Location(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= 100
}

// Name validates a displayable user name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

func Price(v float64) bool { return v >= 0 }

// Qty clamps a requested quantity to a sane window.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// Term normalizes a search term: trimmed, lowercased, length-capped. An empty
// term is valid and means "everything".
func Term(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 50 {
		s = s[:50]
	}
	return strings.ToLower(s)
}

// ImageRef accepts an opaque image reference: an http(s) URL, a server path,
// or an inline data: URI up to the size cap.
func ImageRef(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true // image optional; UI shows a placeholder
	}
	if len(s) > maxImageRef {
		return "", false
	}
	switch {
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return s, true
	case strings.HasPrefix(s, "/"):
		return s, true
	case strings.HasPrefix(s, "data:image/"):
		return s, true
	}
	return "", false
}

// Password enforces a length window plus character-class mix.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
