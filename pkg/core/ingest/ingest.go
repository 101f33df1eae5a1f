// Package ingest adapts raw statement payloads from the document source into
// the {text, tables} input the extraction pipeline consumes.
package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/yuin/goldmark"
	gmtext "github.com/yuin/goldmark/text"

	"portfolio_insight/pkg/core/tables"
	"portfolio_insight/pkg/models"
)

// Format names the payload encodings the document source delivers.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatAuto     Format = "auto"
)

// Document is the normalized pipeline input.
type Document struct {
	Text   string         `json:"text"`
	Tables []models.Table `json:"tables"`
}

// FromPayload normalizes one statement payload. HTML payloads are flattened
// to text with their <table> elements segmented; markdown payloads keep their
// raw text (the free-text scanners handle markdown fine) with pipe tables
// segmented; plain text gets no tables here, the aggregator's detector runs
// instead.
func FromPayload(content string, format Format) (*Document, error) {
	if format == FormatAuto || format == "" {
		format = sniffFormat(content)
	}

	switch format {
	case FormatHTML:
		tbls, err := tables.ParseHTMLTables(content)
		if err != nil {
			return nil, fmt.Errorf("parsing html payload: %w", err)
		}
		text, err := htmlToText(content)
		if err != nil {
			return nil, fmt.Errorf("flattening html payload: %w", err)
		}
		return &Document{Text: text, Tables: tbls}, nil

	case FormatMarkdown:
		if !validMarkdown(content) {
			return nil, fmt.Errorf("markdown payload failed to parse")
		}
		return &Document{Text: content, Tables: tables.ParseMarkdownTables(content)}, nil

	case FormatText:
		return &Document{Text: content}, nil

	default:
		return nil, fmt.Errorf("unsupported payload format %q", format)
	}
}

// ParseTablesSidecar decodes a JSON tables payload from an upstream detector.
// Those detectors routinely emit sloppy JSON (trailing commas, unquoted
// keys), so a failed decode gets one repair pass before giving up.
func ParseTablesSidecar(raw string) ([]models.Table, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var tbls []models.Table
	if err := json.Unmarshal([]byte(raw), &tbls); err == nil {
		return tbls, nil
	}

	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("repairing tables sidecar: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &tbls); err != nil {
		return nil, fmt.Errorf("decoding repaired tables sidecar: %w", err)
	}
	log.Printf("[Ingest] tables sidecar required repair, %d table(s) recovered", len(tbls))
	return tbls, nil
}

func sniffFormat(content string) Format {
	trimmed := strings.TrimSpace(content)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") || strings.Contains(lower, "<table") {
		return FormatHTML
	}
	if strings.Contains(trimmed, "|") && strings.Contains(trimmed, "---") || strings.HasPrefix(trimmed, "#") {
		return FormatMarkdown
	}
	return FormatText
}

// validMarkdown is a permissive sanity check. goldmark accepts nearly
// anything; only content it cannot parse at all is rejected.
func validMarkdown(content string) bool {
	parser := goldmark.DefaultParser()
	return parser.Parse(gmtext.NewReader([]byte(content))) != nil
}

// htmlToText flattens an HTML document to newline-separated block text so the
// free-text extractors can scan it.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	doc.Find("h1, h2, h3, h4, p, li, div, caption").Each(func(_ int, sel *goquery.Selection) {
		// Leaf blocks only, otherwise nested divs duplicate their children.
		if sel.Children().Length() > 0 && !sel.Is("p, li, h1, h2, h3, h4, caption") {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	})
	if b.Len() == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return b.String(), nil
}
