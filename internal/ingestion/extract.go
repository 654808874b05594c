// Package ingestion turns uploaded resume documents into plain text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// Supported resume document extensions
const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
)

const docxBodyPart = "word/document.xml"

// maxDOCXBodyBytes caps the decompressed size of word/document.xml.
var maxDOCXBodyBytes int64 = 32 << 20

// IsSupported reports whether filename has an extension ExtractText accepts.
func IsSupported(filename string) bool {
	switch extension(filename) {
	case ExtPDF, ExtDOCX:
		return true
	}
	return false
}

// ExtractText extracts the plain text of a PDF or DOCX document. The format is
// chosen from the file extension, case-insensitively.
func ExtractText(filename string, data []byte) (string, error) {
	switch ext := extension(filename); ext {
	case ExtPDF:
		return extractPDF(data)
	case ExtDOCX:
		return extractDOCX(data)
	default:
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
}

// LoadResume reads a resume from disk and returns its cleaned text. Plain
// .txt and .md files are read as-is; everything else goes through ExtractText.
func LoadResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}

	switch extension(path) {
	case ".txt", ".md":
		return CleanText(string(data)), nil
	}

	text, err := ExtractText(path, data)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

func extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", &ExtractError{Format: "pdf", Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Format: "pdf", Message: "failed to open document", Cause: err}
	}

	rs, err := r.GetPlainText()
	if err != nil {
		return "", &ExtractError{Format: "pdf", Message: "failed to read text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", &ExtractError{Format: "pdf", Message: "failed to read text", Cause: err}
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Format: "docx", Message: "not a zip archive", Cause: err}
	}

	for _, f := range zr.File {
		if f.Name != docxBodyPart {
			continue
		}
		body, err := readDOCXBody(f)
		if err != nil {
			return "", err
		}

		paragraphs, err := docxParagraphs(bytes.NewReader(body))
		if err != nil {
			return "", &ExtractError{Format: "docx", Message: "failed to parse " + docxBodyPart, Cause: err}
		}
		return strings.Join(paragraphs, "\n"), nil
	}

	return "", &ExtractError{Format: "docx", Message: docxBodyPart + " not found"}
}

// readDOCXBody decompresses the document part, refusing bodies over
// maxDOCXBodyBytes whether or not the zip header admits to the size.
func readDOCXBody(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > uint64(maxDOCXBodyBytes) {
		return nil, &ExtractError{Format: "docx", Message: fmt.Sprintf("%s exceeds %d bytes", docxBodyPart, maxDOCXBodyBytes)}
	}

	rc, err := f.Open()
	if err != nil {
		return nil, &ExtractError{Format: "docx", Message: "failed to open " + docxBodyPart, Cause: err}
	}
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(io.LimitReader(rc, maxDOCXBodyBytes+1))
	if err != nil {
		return nil, &ExtractError{Format: "docx", Message: "failed to read " + docxBodyPart, Cause: err}
	}
	if int64(len(body)) > maxDOCXBodyBytes {
		return nil, &ExtractError{Format: "docx", Message: fmt.Sprintf("%s exceeds %d bytes", docxBodyPart, maxDOCXBodyBytes)}
	}
	return body, nil
}

// docxParagraphs walks WordprocessingML and returns the text of each w:p.
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
		inPara     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inPara {
					paragraphs = append(paragraphs, current.String())
				}
				inPara = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
