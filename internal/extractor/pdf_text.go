package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFTextSource reads the text layer with github.com/ledongthuc/pdf.
type PDFTextSource struct{}

func NewPDFTextSource() *PDFTextSource {
	return &PDFTextSource{}
}

// PageTexts returns the plain text of every page. Pages without content or whose
// text cannot be decoded contribute an empty string.
func (s *PDFTextSource) PageTexts(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)

	for index := 1; index <= total; index++ {
		page := r.Page(index)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}

		pages = append(pages, text)
	}

	return pages, nil
}
