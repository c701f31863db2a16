// Package extract recovers contact email addresses from unstructured posting text.
//
// Posters obfuscate addresses to dodge harvesters, so extraction runs a fixed
// list of pattern families over the text and accumulates every match into one
// deduplicating set. The families deliberately overlap (the whitespace-tolerant
// pattern is a superset of the strict one); the set absorbs the duplicates.
package extract

import (
	"regexp"
	"strings"
)

// patterns are the detector families, applied in order. Recall matters more
// than avoiding overlap between them.
var patterns = []*regexp.Regexp{
	// strict local@domain.tld
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	// stray whitespace around @ and .
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+\s*@\s*[A-Za-z0-9.-]+\s*\.\s*[A-Za-z]{2,}\b`),
	// local [at] domain [dot] tld
	regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+\s*\[\s*at\s*\]\s*[A-Za-z0-9.-]+\s*\[\s*dot\s*\]\s*[A-Za-z]{2,}\b`),
	// local (at) domain (dot) tld
	regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+\s*\(\s*at\s*\)\s*[A-Za-z0-9.-]+\s*\(\s*dot\s*\)\s*[A-Za-z]{2,}\b`),
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	atTokenRe    = regexp.MustCompile(`(?i)\[at\]|\(at\)`)
	dotTokenRe   = regexp.MustCompile(`(?i)\[dot\]|\(dot\)`)
)

// Emails returns every plausible contact address found in text, deduplicated
// and in first-seen order. Addresses are normalized: internal whitespace
// stripped, obfuscation tokens substituted, lower-cased.
func Emails(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, re := range patterns {
		for _, match := range re.FindAllString(text, -1) {
			addr := normalize(match)
			if _, ok := seen[addr]; ok {
				continue
			}
			seen[addr] = struct{}{}
			out = append(out, addr)
		}
	}
	return out
}

// FromMailto extracts the target address from a mailto: href, stripping any
// trailing query parameters. Returns "" when href carries no address. Used as
// the relay-link fallback when Emails finds nothing in the posting text.
func FromMailto(href string) string {
	addr := strings.TrimPrefix(strings.TrimSpace(href), "mailto:")
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	return strings.ToLower(addr)
}

// normalize order matters: whitespace first so "[ at ]" collapses into a
// substitutable token, then token substitution, then case folding.
func normalize(match string) string {
	addr := whitespaceRe.ReplaceAllString(match, "")
	addr = atTokenRe.ReplaceAllString(addr, "@")
	addr = dotTokenRe.ReplaceAllString(addr, ".")
	return strings.ToLower(addr)
}
