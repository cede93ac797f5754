package browser

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdellahzou/HiResume/internal/autofit"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/layout"
	"github.com/abdellahzou/HiResume/internal/types"
)

func startBrowser(t *testing.T) *Browser {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping test that requires Chrome")
	}
	found := os.Getenv("CHROME_PATH") != ""
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			found = true
			break
		}
	}
	if !found {
		t.Skip("Chrome not installed, skipping browser test")
	}
	b, err := New(Config{ExecPath: os.Getenv("CHROME_PATH")}, zerolog.Nop())
	if err != nil {
		t.Skipf("Skipping browser test: %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func sampleTree(t *testing.T) *layout.Node {
	t.Helper()
	doc := types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{FullName: "Jane Doe", Summary: "Engineer."},
		Experience:   []types.Experience{{ID: "e1", Company: "Acme", Position: "Engineer", Current: true}},
		TemplateID:   types.TemplateModern,
	}
	tree, err := layout.Render(doc, i18n.English)
	require.NoError(t, err)
	return tree
}

func TestMeasurer_HeightShrinksWithScale(t *testing.T) {
	b := startBrowser(t)
	m := b.Measurer(sampleTree(t), layout.HTMLOptions{Lang: "en"})
	ctx := context.Background()

	full, err := m.Measure(ctx, autofit.Neutral())
	require.NoError(t, err)
	small, err := m.Measure(ctx, autofit.FitParams{Scale: 0.7, Spacing: 1})
	require.NoError(t, err)

	assert.Greater(t, full, 0.0)
	assert.Less(t, small, full)
}

func TestPrintPDF(t *testing.T) {
	b := startBrowser(t)
	html, err := layout.HTML(sampleTree(t), layout.HTMLOptions{})
	require.NoError(t, err)

	pdf, err := b.PrintPDF(context.Background(), html)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestContentHeight_CancelledContext(t *testing.T) {
	b := startBrowser(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.ContentHeight(ctx, []byte("<html></html>"))
	assert.Error(t, err)
}
