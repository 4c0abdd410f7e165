package marginalia

import (
	"sort"
	"strings"
	"unicode"
)

// PreviewMaxLen is the maximum length, in characters, of a term's preview
// text. Longer definition bodies are truncated to PreviewMaxLen-3 characters
// plus a three-character ellipsis.
const PreviewMaxLen = 150

// Term is a glossary entry: the canonical display form of a defined term,
// the anchor of its entry in the glossary document, and a short preview of
// its definition body.
type Term struct {
	// Name is the canonical (capitalized) display form, as the term is
	// defined to appear in prose.
	Name string `json:"name"`

	// Anchor identifies the term's entry in the glossary document.
	Anchor string `json:"anchor"`

	// Preview is the definition body truncated to PreviewMaxLen characters.
	Preview string `json:"preview"`
}

// Validate returns an error if the term is missing a required field.
func (t *Term) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "term name required")
	}
	if t.Anchor == "" {
		return Errorf(EINVALID, "term anchor required")
	}
	if t.Preview == "" {
		return Errorf(EINVALID, "term preview required")
	}
	return nil
}

// Registry maps lower-cased term names to Terms. It is populated once per
// page load and read-only thereafter; a failed load leaves it permanently
// empty and annotation degrades to a no-op.
type Registry struct {
	terms map[string]Term
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{terms: make(map[string]Term)}
}

// Put stores a term keyed by its lower-cased name. A later entry with the
// same key overwrites the earlier one. Invalid terms are rejected.
func (r *Registry) Put(t Term) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.terms[strings.ToLower(t.Name)] = t
	return nil
}

// Lookup returns the term registered under the given name, matched
// case-insensitively.
func (r *Registry) Lookup(name string) (Term, bool) {
	t, ok := r.terms[strings.ToLower(name)]
	return t, ok
}

// LookupAnchor returns the term whose glossary anchor matches.
func (r *Registry) LookupAnchor(anchor string) (Term, bool) {
	for _, t := range r.terms {
		if t.Anchor == anchor {
			return t, true
		}
	}
	return Term{}, false
}

// Len returns the number of registered terms.
func (r *Registry) Len() int {
	return len(r.terms)
}

// Terms returns all registered terms ordered longest display form first,
// ties broken alphabetically. The ordering makes substring-overlapping
// terms resolve deterministically during annotation.
func (r *Registry) Terms() []Term {
	terms := make([]Term, 0, len(r.terms))
	for _, t := range r.terms {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i].Name) != len(terms[j].Name) {
			return len(terms[i].Name) > len(terms[j].Name)
		}
		return terms[i].Name < terms[j].Name
	})
	return terms
}

// TruncatePreview bounds a definition body to PreviewMaxLen characters.
// Bodies of at most PreviewMaxLen characters are returned unchanged; longer
// bodies are cut at PreviewMaxLen-3 characters with a three-character
// ellipsis appended, so the result is exactly PreviewMaxLen characters.
func TruncatePreview(body string) string {
	runes := []rune(body)
	if len(runes) <= PreviewMaxLen {
		return body
	}
	return string(runes[:PreviewMaxLen-3]) + "..."
}

// Slugify creates a URL-safe anchor from a term name, matching the anchor
// scheme of the glossary document. Converts to lowercase, replaces runs of
// spaces and hyphens with a single hyphen, and drops special characters.
func Slugify(name string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
