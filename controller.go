package marginalia

import (
	"context"
	"sync"
)

// RegistrySource loads the definition registry. RegistryLoader is the
// canonical implementation; the slog package provides a logging decorator.
type RegistrySource interface {
	Load(ctx context.Context, location string) (*Registry, error)
}

// Ensure RegistryLoader implements RegistrySource at compile time.
var _ RegistrySource = (*RegistryLoader)(nil)

// Controller is the page-level controller. It constructs the definition
// registry exactly once per page lifetime and passes it by reference to the
// annotation pass and to popup construction; there is no ambient global
// registry. A failed load leaves the registry permanently empty, so every
// downstream consumer degrades to a no-op instead of surfacing an error.
type Controller struct {
	// Registries loads the glossary. Required.
	Registries RegistrySource

	// Annotator performs the scan-and-rewrite pass. Required.
	Annotator PageAnnotator

	// Dropcaps formats the lead paragraph. Optional.
	Dropcaps DropcapFormatter

	// GlossaryLocation is where Registries loads from.
	GlossaryLocation string

	once sync.Once
	reg  *Registry
}

// Registry returns the shared definition registry, loading it on first use.
// Load failures are swallowed here (a logging decorator around Registries
// records them): the returned registry is then empty and never retried.
func (c *Controller) Registry(ctx context.Context) *Registry {
	c.once.Do(func() {
		reg, err := c.Registries.Load(ctx, c.GlossaryLocation)
		if err != nil || reg == nil {
			reg = NewRegistry()
		}
		c.reg = reg
	})
	return c.reg
}

// Enhance runs the one-shot page transforms in order: registry load (the
// only suspension point), then the synchronous annotation pass, then the
// dropcap. The returned result carries the anchors popup attachment needs,
// so listeners can only ever be attached to links that exist.
func (c *Controller) Enhance(ctx context.Context, pageHTML string, opts AnnotateOptions) (*AnnotateResult, error) {
	reg := c.Registry(ctx)

	res, err := c.Annotator.Annotate(pageHTML, reg, opts)
	if err != nil {
		return nil, err
	}

	if c.Dropcaps != nil {
		formatted, err := c.Dropcaps.Dropcap(res.HTML)
		if err != nil {
			return nil, err
		}
		res.HTML = formatted
	}

	return res, nil
}
