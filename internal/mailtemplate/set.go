// Package mailtemplate renders the contact workflow emails from HTML templates
// carrying a YAML frontmatter subject. Defaults are embedded; a directory of
// overrides can replace them and is watched for changes.
package mailtemplate

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/starford/portfolio/internal/checksum"
)

// Template names.
const (
	OwnerNotification     = "owner_notification"
	SubmitterConfirmation = "submitter_confirmation"
)

// Names lists every template the workflow needs.
var Names = []string{OwnerNotification, SubmitterConfirmation}

const ext = ".html"

//go:embed templates/*.html
var defaults embed.FS

// Data is the view model shared by both templates.
type Data struct {
	SiteName   string
	Name       string
	Email      string
	Message    string
	ReceivedAt string
	OwnerEmail string
	OwnerPhone string
	Year       int
}

// Rendered is a ready-to-send subject and HTML body.
type Rendered struct {
	Subject string
	HTML    string
}

type entry struct {
	subject  *texttemplate.Template
	body     *htmltemplate.Template
	checksum string
}

// Set holds the parsed templates. It is safe for concurrent use.
type Set struct {
	dir    string
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]*entry
}

// New parses the embedded defaults, then any overrides found in dir.
// An empty dir means embedded templates only.
func New(dir string, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Set{dir: dir, logger: logger, entries: make(map[string]*entry, len(Names))}

	for _, name := range Names {
		data, err := defaults.ReadFile("templates/" + name + ext)
		if err != nil {
			return nil, fmt.Errorf("mailtemplate: read default %s: %w", name, err)
		}
		e, err := parse(name, data)
		if err != nil {
			return nil, fmt.Errorf("mailtemplate: parse default %s: %w", name, err)
		}
		s.entries[name] = e
	}

	if dir == "" {
		return s, nil
	}
	for _, name := range Names {
		data, err := os.ReadFile(filepath.Join(dir, name+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("mailtemplate: read override %s: %w", name, err)
		}
		if _, err := s.Reload(name, data); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dir returns the override directory, empty when none is configured.
func (s *Set) Dir() string {
	return s.dir
}

// Render executes the named template.
func (s *Set) Render(name string, data Data) (Rendered, error) {
	s.mu.RLock()
	e, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return Rendered{}, fmt.Errorf("mailtemplate: unknown template %q", name)
	}

	var subj, body bytes.Buffer
	if err := e.subject.Execute(&subj, data); err != nil {
		return Rendered{}, fmt.Errorf("mailtemplate: %s subject: %w", name, err)
	}
	if err := e.body.Execute(&body, data); err != nil {
		return Rendered{}, fmt.Errorf("mailtemplate: %s body: %w", name, err)
	}
	return Rendered{
		Subject: strings.TrimSpace(subj.String()),
		HTML:    body.String(),
	}, nil
}

// Reload replaces the named template with content. It reports false when the
// content is unchanged. On a parse error the current template stays in place.
func (s *Set) Reload(name string, content []byte) (bool, error) {
	if !known(name) {
		return false, fmt.Errorf("mailtemplate: unknown template %q", name)
	}
	sum := checksum.Sum(content)

	s.mu.RLock()
	cur := s.entries[name]
	s.mu.RUnlock()
	if cur != nil && cur.checksum == sum {
		return false, nil
	}

	e, err := parse(name, content)
	if err != nil {
		return false, fmt.Errorf("mailtemplate: parse %s: %w", name, err)
	}

	s.mu.Lock()
	s.entries[name] = e
	s.mu.Unlock()
	return true, nil
}

// Reset restores the embedded default for name.
func (s *Set) Reset(name string) error {
	data, err := defaults.ReadFile("templates/" + name + ext)
	if err != nil {
		return fmt.Errorf("mailtemplate: read default %s: %w", name, err)
	}
	_, err = s.Reload(name, data)
	return err
}

func parse(name string, content []byte) (*entry, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}
	subject, err := texttemplate.New(name + ".subject").Option("missingkey=error").Parse(fm.Subject)
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	html, err := htmltemplate.New(name).Funcs(funcs).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	return &entry{subject: subject, body: html, checksum: checksum.Sum(content)}, nil
}

func known(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

var funcs = htmltemplate.FuncMap{
	"nl2br": NewlinesToBreaks,
}

var newlineReplacer = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "\r", "<br>")

// NewlinesToBreaks escapes s for HTML and turns every line break into <br>.
func NewlinesToBreaks(s string) htmltemplate.HTML {
	return htmltemplate.HTML(newlineReplacer.Replace(htmltemplate.HTMLEscapeString(s)))
}
