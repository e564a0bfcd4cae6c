// Package resume pulls plain text out of an uploaded résumé and spots the
// skills it mentions, so the wizard can start with the skills field filled.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxSize is the largest résumé accepted, in bytes.
const MaxSize = 15 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")
	ErrTooLarge          = fmt.Errorf("file too large: limit is %d bytes", MaxSize)
	ErrEmpty             = errors.New("empty resume content")
)

var (
	reTags    = regexp.MustCompile(`<[^>]+>`)
	reBlanks  = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewline = regexp.MustCompile(`\n+`)
)

// Supported reports whether the file name has an extension ExtractText reads.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

// ExtractText returns the plain text of a .pdf or .docx file.
func ExtractText(filename string, data []byte) (string, error) {
	if len(data) > MaxSize {
		return "", ErrTooLarge
	}
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// ReadAtMost reads r fully, failing with ErrTooLarge past MaxSize.
func ReadAtMost(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(b) > MaxSize {
		return nil, ErrTooLarge
	}
	return b, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()
	return xmlToText(doc.Editable().GetContent()), nil
}

// xmlToText turns WordprocessingML into text, one line per paragraph.
func xmlToText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return normalizeWhitespace(reTags.ReplaceAllString(xml, " "))
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reNewline.ReplaceAllString(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
