package tables

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"portfolio_insight/pkg/models"
)

// ParseHTMLTables extracts every <table> from an HTML statement. The first
// row becomes the header row; a preceding heading or a single-cell first row
// becomes the title.
func ParseHTMLTables(html string) ([]models.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var detected []models.Table
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		parsed := parseHTMLTable(table)
		if parsed == nil {
			return
		}
		detected = append(detected, *parsed)
	})

	log.Printf("[Tables] HTML scan: %d table(s) extracted", len(detected))
	return detected, nil
}

func parseHTMLTable(table *goquery.Selection) *models.Table {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil // header plus at least one data row
	}

	out := &models.Table{Title: findHTMLTableTitle(table)}

	rows.Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		// A single-cell leading row is a caption, not data.
		if len(out.Headers) == 0 && len(cells) == 1 {
			if out.Title == "" {
				out.Title = cells[0]
			}
			return
		}
		if len(out.Headers) == 0 {
			out.Headers = cells
			return
		}
		out.Rows = append(out.Rows, cells)
	})

	if len(out.Headers) == 0 || len(out.Rows) == 0 {
		return nil
	}
	return out
}

func findHTMLTableTitle(table *goquery.Selection) string {
	if prev := table.Prev(); prev.Length() > 0 {
		text := strings.TrimSpace(prev.Text())
		if text != "" && len(text) < 120 {
			return text
		}
	}
	if caption := table.Find("caption").First(); caption.Length() > 0 {
		return strings.TrimSpace(caption.Text())
	}
	return ""
}
