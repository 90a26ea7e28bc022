package deck

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestLoad_NaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"slide10.md": "# Ten",
		"slide2.md":  "# Two",
		"slide1.md":  "# One",
		"README.md":  "not a slide",
		"_draft.md":  "# Draft",
		"notes.txt":  "ignored",
	})

	d, err := Load(dir)
	require.NoError(t, err)

	var titles []string
	for _, s := range d.Slides {
		titles = append(titles, s.Meta.Title)
	}
	assert.Equal(t, []string{"One", "Two", "Ten"}, titles)
	assert.Equal(t, filepath.Base(dir), d.Title())
}

func TestLoad_Manifest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		ManifestFile: `
title: Quarterly review
settle_delay: 300ms
activation_delay: 1s
swipe_threshold: 80
slides: [b.md, a.md]
hooks:
  - name: revenue-chart
    command: ./revenue.sh
`,
		HooksFile: `
hooks:
  - name: slide-0
    command: ./intro.sh
  - name: revenue-chart
    command: ./overridden.sh
`,
		"a.md": "---\ntitle: Revenue\nactivate: revenue-chart\n---\n# Numbers\n",
		"b.md": "# Intro\nWelcome",
	})

	d, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Quarterly review", d.Title())
	assert.Equal(t, 300*time.Millisecond, d.Manifest.SettleDelay)
	assert.Equal(t, time.Second, d.Manifest.ActivationDelay)
	assert.Equal(t, 80.0, d.Manifest.SwipeThreshold)

	require.Len(t, d.Slides, 2)
	assert.Equal(t, "Intro", d.Slides[0].Meta.Title)
	assert.Equal(t, "Revenue", d.Slides[1].Meta.Title)
	assert.Equal(t, "# Numbers", d.Slides[1].Body)

	assert.Equal(t, map[int]string{1: "revenue-chart"}, d.Activations())
	assert.Equal(t, "./revenue.sh", d.Hooks["revenue-chart"].Command, "manifest hooks win over hooks.yaml")
	assert.Equal(t, "./intro.sh", d.Hooks["slide-0"].Command)
	assert.Empty(t, d.Validate())

	contents := d.Contents()
	assert.Equal(t, "Intro", contents[0].Title)
	assert.Equal(t, "# Intro\nWelcome", contents[0].Body)
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNoSlides)
}

func TestLoad_SkippedSlides(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"1.md": "# Keep",
		"2.md": "---\nskip: true\n---\n# Hidden",
		"3.md": "---\nskip: \"true\"\n---\n# Hidden too",
	})

	d, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, d.Slides, 1)
	assert.Equal(t, "Keep", d.Slides[0].Meta.Title)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantTitle string
		wantBody  string
		wantErr   bool
	}{
		{"no front matter", "# Hello\ntext", "Hello", "# Hello\ntext", false},
		{"front matter title wins", "---\ntitle: Custom\n---\n# Hello", "Custom", "# Hello", false},
		{"crlf", "---\r\ntitle: Win\r\n---\r\nbody", "Win", "body", false},
		{"empty front matter", "---\n---\nbody", "file", "body", false},
		{"no heading falls back to file name", "plain", "file", "plain", false},
		{"invalid yaml", "---\ntitle: [\n---\n", "", "", true},
		{"wrong type", "---\ntitle: {a: 1}\n---\n", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse("file.md", []byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, s.Meta.Title)
			assert.Equal(t, tt.wantBody, s.Body)
		})
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		ManifestFile: `
hooks:
  - name: slide-5
    command: ./late.sh
  - name: empty
`,
		"1.md": "---\nactivate: missing\n---\n# One",
	})

	d, err := Load(dir)
	require.NoError(t, err)

	var msgs []string
	for _, issue := range d.Validate() {
		msgs = append(msgs, issue.String())
	}
	assert.Equal(t, []string{
		`slide 0 (1.md): unknown activation hook "missing"`,
		`hook "empty" has no command`,
		`hook "slide-5" targets a slide past the end of the deck (1 slides)`,
	}, msgs)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"1.md": "# One"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, dir, nil)
	require.NoError(t, err)

	writeFiles(t, dir, map[string]string{"notes.txt": "ignored"})
	writeFiles(t, dir, map[string]string{"2.md": "# Two"})

	select {
	case name := <-ch:
		assert.Equal(t, "2.md", name)
	case <-time.After(3 * time.Second):
		t.Fatal("no change signalled")
	}

	cancel()
	for range ch {
	}
}
