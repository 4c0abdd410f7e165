package marginalia

// LinkClass is the marker class carried by every annotation link. Elements
// already bearing it are never re-entered by the annotator.
const LinkClass = "definition-link"

// AnchorKind distinguishes the two preview-eligible link families.
type AnchorKind string

// Anchor kinds.
const (
	AnchorGlossary AnchorKind = "glossary" // link into the glossary document
	AnchorInternal AnchorKind = "internal" // link to another page on the site
)

// Anchor describes one preview-eligible link on an annotated page. Glossary
// anchors are produced by the annotation pass; internal anchors are
// collected from pre-existing links whose destinations appear in the
// excerpts table.
type Anchor struct {
	// ID is a stable per-page ordinal identifier (e.g. "dt-3"). Host
	// environments key interaction events by it.
	ID string

	// Kind selects how popup content is resolved.
	Kind AnchorKind

	// Term is the matched term for glossary anchors; zero otherwise.
	Term Term

	// Href is the link destination.
	Href string
}

// AnnotateOptions configures an annotation pass.
type AnnotateOptions struct {
	// Selectors identify the content roots to scan. Roots are supplied by
	// the surrounding page template; selectors matching nothing are
	// skipped. Defaults to DefaultContentSelectors when empty.
	Selectors []string

	// PageDepth is the page's directory depth below the site root, used to
	// resolve the glossary path for link destinations.
	PageDepth int

	// AllMatches applies every non-overlapping match per text node instead
	// of only the first. Overlap conflicts resolve longest-match-first.
	AllMatches bool
}

// DefaultContentSelectors are the regions the site template exposes for
// annotation: article prose, list entries, and quoted blocks.
var DefaultContentSelectors = []string{
	".writing-content p",
	".writing-content li",
	".abstract p",
	"blockquote p",
}

// AnnotateResult is the outcome of a single annotation pass.
type AnnotateResult struct {
	// HTML is the rewritten page markup.
	HTML string

	// Anchors are the links produced by this pass, in document order.
	// Popup attachment consumes them, which makes "annotation completes
	// before popup listeners attach" a data dependency rather than a
	// timing assumption.
	Anchors []Anchor

	// Matched counts the text nodes that were rewritten.
	Matched int
}

// PageAnnotator performs the one-shot scan-and-rewrite pass over a page.
type PageAnnotator interface {
	// Annotate finds whole-word, case-matching occurrences of registered
	// terms in text nodes under the configured content roots and wraps
	// them in definition links. Running it again on its own output changes
	// nothing. An empty registry makes the pass a no-op.
	Annotate(pageHTML string, reg *Registry, opts AnnotateOptions) (*AnnotateResult, error)
}

// DropcapMinLength is the minimum plain-text length of a lead paragraph
// before the dropcap treatment is applied.
const DropcapMinLength = 50

// DropcapFormatter rewrites the first letter of the lead paragraph into a
// styled dropcap span.
type DropcapFormatter interface {
	// Dropcap wraps the first letter of the first paragraph in the lead
	// region, skipping leading inline tags (not characters). Pages with a
	// dropcap already applied, or a lead paragraph shorter than
	// DropcapMinLength, pass through unchanged.
	Dropcap(pageHTML string) (string, error)
}
