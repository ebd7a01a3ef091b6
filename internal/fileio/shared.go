package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"choropleth-service/internal/choropleth/model"
)

var ErrUnsupportedFile = errors.New("unsupported file")

// ReadGrid выберет парсер по расширению и вернёт первый лист как сетку.
// Строка 0 — заголовки; полностью пустые строки в конце отбрасываются.
func ReadGrid(r io.Reader, filename string) (model.Grid, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ext, err)
	}
	return model.Grid(trimTrailingEmpty(rows)), nil
}

func trimTrailingEmpty(rows [][]string) [][]string {
	n := len(rows)
	for n > 0 && isEmptyRow(rows[n-1]) {
		n--
	}
	return rows[:n]
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// normalizeCell: NBSP/NNBSP -> пробел, обрезка по краям.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return strings.TrimSpace(s)
}
