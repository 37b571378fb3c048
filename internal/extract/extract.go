// Package extract turns PDF bytes into plain text.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"resumerank/internal/models"
	"resumerank/internal/util"

	"github.com/ledongthuc/pdf"
)

// Text returns the concatenated plain text of every page in doc, in page
// order and with no separators added. A document without a text layer
// yields "" and no error.
func Text(doc models.Document) (string, error) {
	pages, err := Pages(doc)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, ""), nil
}

// Pages returns one entry per page. Pages whose text cannot be extracted
// contribute "".
func Pages(doc models.Document) ([]string, error) {
	r, n, err := open(doc)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= n; i++ {
		out = append(out, pageText(r, i, fonts))
	}
	return out, nil
}

// open parses the xref and resolves the catalog's page count. Objects load
// lazily, so a broken catalog only surfaces here, as a panic from NumPage.
func open(doc models.Document) (r *pdf.Reader, pages int, err error) {
	if len(doc.Content) == 0 {
		return nil, 0, fmt.Errorf("open pdf %q: empty content: %w", doc.Name, util.ErrDocumentFormat)
	}
	defer func() {
		if rec := recover(); rec != nil {
			r, pages = nil, 0
			err = fmt.Errorf("open pdf %q: %v: %w", doc.Name, rec, util.ErrDocumentFormat)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return nil, 0, fmt.Errorf("open pdf %q: %v: %w", doc.Name, err, util.ErrDocumentFormat)
	}
	pages = r.NumPage()
	if pages < 0 {
		return nil, 0, fmt.Errorf("open pdf %q: negative page count: %w", doc.Name, util.ErrDocumentFormat)
	}
	return r, pages, nil
}

// pageText never fails: malformed content streams panic inside the pdf
// package, and those pages count as empty.
func pageText(r *pdf.Reader, num int, fonts map[string]*pdf.Font) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
		}
	}()
	p := r.Page(num)
	if p.V.IsNull() {
		return ""
	}
	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			f := p.Font(name)
			fonts[name] = &f
		}
	}
	text, err := p.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return text
}
