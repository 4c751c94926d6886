// Package documents loads support material into the knowledge base:
// plain text, markdown, PDF and Word files, chunked and embedded into
// the vector store.
package documents

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"encoding/xml"

	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// ErrUnsupported marks a file extension no loader handles.
var ErrUnsupported = errors.New("unsupported file type")

// SupportedExtensions lists the extensions ingest accepts.
var SupportedExtensions = []string{".txt", ".md", ".markdown", ".pdf", ".docx"}

// Supported reports whether the path's extension has a loader.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load extracts the plain text of the file at path.
func Load(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	case ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return markdownText(data), nil
	case ".pdf":
		return pdfText(path)
	case ".docx":
		return docxText(path)
	default:
		return "", fmt.Errorf("%s: %w", filepath.Ext(path), ErrUnsupported)
	}
}

// markdownText strips markdown structure, keeping the readable text so
// headings and formatting markers don't pollute the embeddings.
func markdownText(src []byte) string {
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var sb strings.Builder
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(src))
			if node.HardLineBreak() || node.SoftLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.CodeBlock:
			writeLines(&sb, src, node)
		case *ast.FencedCodeBlock:
			writeLines(&sb, src, node)
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func writeLines(sb *strings.Builder, src []byte, node ast.Node) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
}

func pdfText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	return buf.String(), nil
}

// docxText pulls paragraph text out of the word/document.xml part.
func docxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx %s: %w", path, err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open docx part: %w", err)
		}
		defer rc.Close()

		dec := xml.NewDecoder(rc)

		var sb strings.Builder
		var inText bool
		for {
			tok, err := dec.Token()
			if err != nil {
				break
			}
			switch t := tok.(type) {
			case xml.StartElement:
				if t.Name.Local == "t" {
					inText = true
				}
			case xml.EndElement:
				switch t.Name.Local {
				case "t":
					inText = false
				case "p":
					sb.WriteByte('\n')
				}
			case xml.CharData:
				if inText {
					sb.Write(t)
				}
			}
		}
		return strings.TrimSpace(sb.String()), nil
	}
	return "", fmt.Errorf("docx %s: missing word/document.xml", path)
}
