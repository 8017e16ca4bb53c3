package mailtemplate

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of a template file.
type Frontmatter struct {
	Subject string `yaml:"subject"`
}

// splitFrontmatter separates the YAML header (between leading --- delimiters)
// from the HTML body. Templates without a header or with invalid YAML are rejected,
// since a mail without subject is never intended.
func splitFrontmatter(data []byte) (Frontmatter, string, error) {
	const delim = "---"
	var fm Frontmatter
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return fm, "", fmt.Errorf("missing frontmatter")
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return fm, "", fmt.Errorf("unterminated frontmatter")
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return fm, "", fmt.Errorf("frontmatter: %w", err)
	}
	if strings.TrimSpace(fm.Subject) == "" {
		return fm, "", fmt.Errorf("frontmatter: subject is required")
	}
	return fm, body, nil
}
