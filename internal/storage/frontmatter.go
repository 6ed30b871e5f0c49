// ABOUTME: YAML frontmatter parsing, rendering, and atomic file writes.
// ABOUTME: Shared helpers for the markdown-backed store.
package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// parseFrontmatter splits a markdown document into its YAML header and body.
// It returns an empty header when the document has none.
func parseFrontmatter(content string) (string, string) {
	content = strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(content, frontmatterDelim+"\n") {
		return "", content
	}
	rest := content[len(frontmatterDelim)+1:]

	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return "", content
	}
	header := rest[:end]
	body := rest[end+len(frontmatterDelim)+1:]
	body = strings.TrimPrefix(body, "\n")
	return header, body
}

// renderFrontmatter encodes fm as a YAML header followed by body.
func renderFrontmatter(fm any, body string) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(frontmatterDelim + "\n")
	sb.Write(buf.Bytes())
	sb.WriteString(frontmatterDelim + "\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// atomicWrite writes data to a temp file in the target directory and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// slugify lowercases s and joins its alphanumeric runs with dashes.
func slugify(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if sb.Len() == 0 {
		return "untitled"
	}
	slug := []rune(sb.String())
	if len(slug) > 48 {
		slug = slug[:48]
	}
	return strings.TrimRight(string(slug), "-")
}
