package deck

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/slidedeck/pkg/adapters/process"
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/view"
	"github.com/maruel/natural"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestFile is the optional deck configuration file.
	ManifestFile = "deck.yaml"
	// HooksFile is the optional standalone hook configuration file.
	HooksFile = "hooks.yaml"
)

// Manifest is the content of deck.yaml.
type Manifest struct {
	Title           string                `yaml:"title"`
	SettleDelay     time.Duration         `yaml:"settle_delay"`
	ActivationDelay time.Duration         `yaml:"activation_delay"`
	SwipeThreshold  float64               `yaml:"swipe_threshold"`
	HookTimeout     time.Duration         `yaml:"hook_timeout"`
	Slides          []string              `yaml:"slides"`
	Hooks           []process.HookConfig `yaml:"hooks"`
}

// SlideMetadata is the front matter of one slide.
type SlideMetadata struct {
	Title    string `mapstructure:"title"`
	Activate string `mapstructure:"activate"`
	Skip     bool   `mapstructure:"skip"`
}

// Slide is one loaded slide.
type Slide struct {
	File string
	Meta SlideMetadata
	Body string
}

// Deck is a loaded deck directory.
type Deck struct {
	Dir      string
	Manifest Manifest
	Slides   []Slide
	Hooks    map[string]process.HookConfig
}

// Load reads the deck in dir.
// It returns domain.ErrNoSlides when the directory holds no slides.
func Load(dir string) (*Deck, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	d := &Deck{Dir: abs}
	if err := d.loadManifest(); err != nil {
		return nil, err
	}

	files, err := d.slideFiles()
	if err != nil {
		return nil, err
	}

	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(abs, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", name, err)
		}
		slide, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		if slide.Meta.Skip {
			continue
		}
		d.Slides = append(d.Slides, slide)
	}

	if len(d.Slides) == 0 {
		return d, fmt.Errorf("%s: %w", abs, domain.ErrNoSlides)
	}
	return d, nil
}

// Contents returns the slides as view contents.
func (d *Deck) Contents() []view.Content {
	out := make([]view.Content, len(d.Slides))
	for i, s := range d.Slides {
		out[i] = view.Content{Title: s.Meta.Title, Body: s.Body}
	}
	return out
}

// Activations maps slide indices to the hook names their front matter requests.
func (d *Deck) Activations() map[int]string {
	out := make(map[int]string)
	for i, s := range d.Slides {
		if s.Meta.Activate != "" {
			out[i] = s.Meta.Activate
		}
	}
	return out
}

// Title returns the manifest title, or the directory name.
func (d *Deck) Title() string {
	if d.Manifest.Title != "" {
		return d.Manifest.Title
	}
	return filepath.Base(d.Dir)
}

func (d *Deck) loadManifest() error {
	data, err := os.ReadFile(filepath.Join(d.Dir, ManifestFile))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	default:
		if err := yaml.Unmarshal(data, &d.Manifest); err != nil {
			return fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
		}
	}

	hooks, err := process.LoadHooks(filepath.Join(d.Dir, HooksFile))
	if err != nil {
		return err
	}
	for name, h := range process.Index(d.Manifest.Hooks) {
		hooks[name] = h
	}
	d.Hooks = hooks
	return nil
}

func (d *Deck) slideFiles() ([]string, error) {
	if len(d.Manifest.Slides) > 0 {
		return d.Manifest.Slides, nil
	}

	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isSlideFile(name) {
			continue
		}
		files = append(files, name)
	}
	sort.Sort(natural.StringSlice(files))
	return files, nil
}

func isSlideFile(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return false
	}
	if strings.EqualFold(name, "README.md") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

// Parse splits a slide file into front matter and body.
func Parse(name string, data []byte) (Slide, error) {
	slide := Slide{File: name}

	front, body, ok := splitFrontMatter(data)
	if ok {
		var raw map[string]any
		if err := yaml.Unmarshal(front, &raw); err != nil {
			return slide, fmt.Errorf("failed to parse front matter of %s: %w", name, err)
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &slide.Meta,
		})
		if err != nil {
			return slide, err
		}
		if err := dec.Decode(raw); err != nil {
			return slide, fmt.Errorf("invalid front matter in %s: %w", name, err)
		}
	}

	slide.Body = strings.TrimSpace(string(body))
	if slide.Meta.Title == "" {
		slide.Meta.Title = headingTitle(slide.Body)
	}
	if slide.Meta.Title == "" {
		slide.Meta.Title = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return slide, nil
}

func splitFrontMatter(data []byte) (front, body []byte, ok bool) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, normalized, false
	}
	rest := normalized[len("---\n"):]

	end := bytes.Index(rest, []byte("\n---"))
	if bytes.HasPrefix(rest, []byte("---")) {
		end = 0
	}
	if end < 0 {
		return nil, normalized, false
	}

	front = rest[:end]
	body = rest[end:]
	body = bytes.TrimPrefix(body, []byte("\n"))
	body = bytes.TrimPrefix(body, []byte("---"))
	return front, body, true
}

func headingTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
