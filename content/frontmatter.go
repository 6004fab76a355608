// Package content reads blog content files from a directory tree laid out as
// <root>/<category>/<slug>.<ext> and splits each file into its front-matter
// metadata and Markdown/MDX body.
package content

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/adrg/frontmatter"
)

// Metadata is the front-matter mapping of a content file. Keys not consumed by
// the renderer are passed through untouched.
type Metadata map[string]any

// Keys consumed by the page renderer.
const (
	KeyTitle       = "title"
	KeyPublishedAt = "publishedAt"
	KeySummary     = "summary"
)

// String returns the value at key rendered as a string, or "" when absent.
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return formatTimestamp(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func (m Metadata) Title() string       { return m.String(KeyTitle) }
func (m Metadata) PublishedAt() string { return m.String(KeyPublishedAt) }
func (m Metadata) Summary() string     { return m.String(KeySummary) }

// ParseFrontMatter splits src into its metadata block and body. YAML (---),
// TOML (+++) and JSON (;;;) blocks are recognised. A file without a metadata
// block yields empty metadata and the whole text as body. A malformed block is
// returned as an error; there is no recovery.
func ParseFrontMatter(src []byte) (Metadata, []byte, error) {
	raw := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(src), &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta := make(Metadata, len(raw))
	for k, v := range raw {
		meta[k] = normalizeScalar(v)
	}
	return meta, body, nil
}

// normalizeScalar turns decoded timestamps back into strings so that date
// fields always compare as text, whatever decoder produced them.
func normalizeScalar(v any) any {
	if t, ok := v.(time.Time); ok {
		return formatTimestamp(t)
	}
	return v
}

func formatTimestamp(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
