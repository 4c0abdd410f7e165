package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/haslan/marginalia/cmd/marginalia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGlossary = `<!DOCTYPE html>
<html>
<body>
	<div class="definition-entry" id="conductor">
		<h3><span class="definition-term">Conductor</span></h3>
		<div class="definition-content"><p>The witness-self as interpretive presence.</p></div>
	</div>
</body>
</html>`

const testPage = `<!DOCTYPE html>
<html>
<body>
	<div class="writing-content">
		<p>The Conductor appears in this paragraph of prose.</p>
	</div>
</body>
</html>`

// writeSite lays out a minimal site tree and returns its root, the glossary
// path, and a page path two levels deep.
func writeSite(t *testing.T) (root, glossary, page string) {
	t.Helper()
	root = t.TempDir()
	glossary = filepath.Join(root, "definitions.html")
	require.NoError(t, os.WriteFile(glossary, []byte(testGlossary), 0644))
	page = filepath.Join(root, "pages", "writing", "essay.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(page), 0755))
	require.NoError(t, os.WriteFile(page, []byte(testPage), 0644))
	return root, glossary, page
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "annotate")
	assert.Contains(t, stdout.String(), "excerpts")
}

func TestRun_Annotate(t *testing.T) {
	t.Parallel()

	root, glossary, page := writeSite(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(),
		[]string{"annotate", page, "-g", glossary, "-r", root},
		stdout, stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(data),
		`<a class="definition-link" href="../../definitions.html#conductor" data-term="Conductor"`,
		"depth is inferred from the site root")
	assert.Contains(t, stdout.String(), "1 page(s) written")
}

func TestRun_AnnotateIsIdempotent(t *testing.T) {
	t.Parallel()

	root, glossary, page := writeSite(t)

	args := []string{"annotate", page, "-g", glossary, "-r", root}
	require.NoError(t, main.NewMain().Run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{}))

	first, err := os.ReadFile(page)
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	require.NoError(t, main.NewMain().Run(context.Background(), args, stdout, &bytes.Buffer{}))

	second, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.Contains(t, stdout.String(), "0 page(s) written, 1 unchanged")
}

func TestRun_AnnotateCheckMode(t *testing.T) {
	t.Parallel()

	root, glossary, page := writeSite(t)

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(),
		[]string{"annotate", page, "-g", glossary, "-r", root, "--check"},
		stdout, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, testPage, string(data), "check mode never writes")
	assert.Contains(t, stdout.String(), "1 match(es)")
}

func TestRun_AnnotateMissingGlossaryDegrades(t *testing.T) {
	t.Parallel()

	root, _, page := writeSite(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(),
		[]string{"annotate", page, "-g", filepath.Join(root, "missing.html"), "-r", root},
		stdout, stderr)
	require.NoError(t, err, "an unreachable glossary degrades, not aborts")

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, testPage, string(data))
	assert.Contains(t, stderr.String(), "empty glossary")
}

func TestRun_AnnotateSkipsMissingPage(t *testing.T) {
	t.Parallel()

	root, glossary, page := writeSite(t)
	missing := filepath.Join(root, "pages", "gone.html")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(),
		[]string{"annotate", page, missing, "-g", glossary, "-r", root},
		stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "skip")
	assert.Contains(t, stdout.String(), "1 page(s) written")
}

func TestRun_Terms(t *testing.T) {
	t.Parallel()

	_, glossary, _ := writeSite(t)

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"terms", glossary}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Conductor")
	assert.Contains(t, stdout.String(), "#conductor")
	assert.Contains(t, stdout.String(), "1 term(s)")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), []string{"bogus"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}
