package tables

import (
	"regexp"
	"strings"

	"portfolio_insight/pkg/models"
)

// Plain-text table detection. This is the fallback segmentation used when the
// document source supplies no pre-segmented tables: runs of lines that split
// into a consistent number of columns are grouped into one table, with the
// preceding non-blank line taken as the title.

var columnSplit = regexp.MustCompile(`\t+|\s{2,}|\s*\|\s*`)

// DetectTables segments raw statement text into tables. A candidate block is
// two or more consecutive lines that each split into the same column count
// (>= 2). The first line of a block becomes the header row.
func DetectTables(text string) []models.Table {
	lines := strings.Split(text, "\n")

	var detected []models.Table
	var block [][]string
	var blockCols int
	lastProse := ""

	flush := func() {
		if len(block) >= 2 {
			detected = append(detected, models.Table{
				Title:   lastProse,
				Headers: block[0],
				Rows:    block[1:],
			})
		}
		block = nil
		blockCols = 0
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		// Markdown separator rows carry no data.
		if isSeparatorLine(trimmed) {
			continue
		}

		cells := splitColumns(trimmed)
		if len(cells) >= 2 {
			if blockCols == 0 {
				blockCols = len(cells)
			}
			if columnCountCompatible(len(cells), blockCols) {
				block = append(block, cells)
				continue
			}
			// Column count changed: close the current block and start a new
			// one from this line.
			flush()
			blockCols = len(cells)
			block = append(block, cells)
			continue
		}

		flush()
		lastProse = trimmed
	}
	flush()

	return detected
}

// columnCountCompatible tolerates ragged trailing cells (one column short)
// without padding the row.
func columnCountCompatible(got, want int) bool {
	return got == want || got == want-1 || got == want+1
}

func splitColumns(line string) []string {
	line = strings.Trim(line, "|")
	parts := columnSplit.Split(line, -1)
	var cells []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

func isSeparatorLine(line string) bool {
	if !strings.ContainsAny(line, "-=") {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '-', '=', '|', ':', '+', ' ':
			return -1
		}
		return r
	}, line)
	return stripped == ""
}
