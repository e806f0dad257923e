// Package sanitize strips references to disallowed CDN domains from saved HTML
// pages and their stylesheets so the renderer never tries to fetch them.
//
// The rules are plain regular expressions, not a parser:
//   - <script ...></script> tags whose attributes contain https://DOMAIN
//   - <link ...> tags whose attributes contain https://DOMAIN
//   - @font-face { ... } blocks mentioning DOMAIN
//   - any remaining https://DOMAIN/... URL, replaced by the empty string
//
// @font-face blocks are matched up to the first closing brace. A literal "}"
// inside a string value ends the match early; braces are not balanced.
package sanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultDomain is the CDN stripped when no domain is configured.
const DefaultDomain = "cdn.oaistatic.com"

// Sentinel errors for sanitizer construction.
var (
	ErrNoDomains     = errors.New("at least one domain is required")
	ErrInvalidDomain = errors.New("invalid domain")
)

// Sanitizer removes tags, rules and URLs that reference a fixed set of domains.
// It is immutable after New and safe for concurrent use.
type Sanitizer struct {
	domains  []string
	script   *regexp.Regexp
	link     *regexp.Regexp
	fontFace *regexp.Regexp
	bareURL  *regexp.Regexp
}

// New builds a Sanitizer for the given domains. Blank entries and duplicates
// are ignored; matching is case-insensitive.
func New(domains ...string) (*Sanitizer, error) {
	cleaned, err := normalizeDomains(domains)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(cleaned))
	for i, d := range cleaned {
		quoted[i] = regexp.QuoteMeta(d)
	}
	alt := "(?:" + strings.Join(quoted, "|") + ")"

	return &Sanitizer{
		domains:  cleaned,
		script:   regexp.MustCompile(`(?i)<script[^>]+https://` + alt + `[^>]*></script>`),
		link:     regexp.MustCompile(`(?i)<link[^>]+https://` + alt + `[^>]*>`),
		fontFace: regexp.MustCompile(`(?is)@font-face\s*\{[^}]*` + alt + `[^}]*\}`),
		bareURL:  regexp.MustCompile(`(?i)https://` + alt + `[^'"\s>]+`),
	}, nil
}

// Domains returns a copy of the configured domains.
func (s *Sanitizer) Domains() []string {
	out := make([]string, len(s.domains))
	copy(out, s.domains)
	return out
}

// HTML applies every rule to an HTML document.
func (s *Sanitizer) HTML(text string) string {
	text = s.script.ReplaceAllLiteralString(text, "")
	text = s.link.ReplaceAllLiteralString(text, "")
	return s.CSS(text)
}

// CSS applies the @font-face and bare URL rules. Stylesheets that never mention
// a configured domain come back unchanged.
func (s *Sanitizer) CSS(text string) string {
	text = s.fontFace.ReplaceAllLiteralString(text, "")
	return s.bareURL.ReplaceAllLiteralString(text, "")
}

// normalizeDomains trims, lowercases and de-duplicates domains, keeping order.
func normalizeDomains(domains []string) ([]string, error) {
	seen := make(map[string]bool, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" || seen[d] {
			continue
		}
		if strings.ContainsAny(d, "/\\ \t\r\n'\"<>") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, d)
		}
		seen[d] = true
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, ErrNoDomains
	}
	return out, nil
}
