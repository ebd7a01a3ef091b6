package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV reads a CSV, auto-detecting the encoding and converting to UTF-8.
// Valid UTF-8 (with or without BOM) is taken as is; anything else goes through
// chardet and falls back to cp1252, the usual Spanish Excel export.
// Both ',' and ';' delimiters are accepted.
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	// Peek a bit to detect encoding
	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if !looksUTF8(peek) {
		cs = "windows-1252"
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
		if cs == "utf-8" {
			cs = "windows-1252"
		}
	}

	var dec io.Reader
	switch cs {
	case "utf-8":
		// dropping a BOM if present
		dec = transform.NewReader(br, unicode.UTF8BOM.NewDecoder())
	case "iso-8859-1":
		dec = transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
	default:
		// остальные однобайтовые читаем как cp1252
		dec = transform.NewReader(br, charmap.Windows1252.NewDecoder())
	}

	db := bufio.NewReader(dec)
	cr := csv.NewReader(db)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if line, err := db.Peek(1024); err == nil || len(line) > 0 {
		cr.Comma = sniffComma(line)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// looksUTF8 tolerates a rune cut at the end of the peek window.
func looksUTF8(b []byte) bool {
	for cut := 0; cut < utf8.UTFMax && cut <= len(b); cut++ {
		if utf8.Valid(b[:len(b)-cut]) {
			return true
		}
	}
	return false
}

// sniffComma picks ';' when the header line has more semicolons than commas.
func sniffComma(b []byte) rune {
	line := string(b)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
