package tables

import (
	"strings"

	"portfolio_insight/pkg/models"
)

// ParseMarkdownTables extracts every pipe table from a markdown document.
// The nearest preceding heading or bold line becomes the table title.
func ParseMarkdownTables(markdown string) []models.Table {
	lines := strings.Split(markdown, "\n")

	var detected []models.Table
	var current *models.Table
	title := ""

	flush := func() {
		if current != nil && len(current.Headers) > 0 && len(current.Rows) > 0 {
			detected = append(detected, *current)
		}
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}

		if !strings.HasPrefix(line, "|") {
			flush()
			if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "**") {
				title = strings.Trim(line, "#* ")
			}
			continue
		}

		// Separator line between header and body.
		if strings.Contains(line, "---") {
			continue
		}

		cells := splitPipeRow(line)
		if current == nil {
			current = &models.Table{Title: title, Headers: cells}
			continue
		}
		if len(cells) > 0 {
			current.Rows = append(current.Rows, cells)
		}
	}
	flush()

	return detected
}

func splitPipeRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}
