package file

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/unitynest/nest-backend/internal/domain/user"
	"github.com/xuri/excelize/v2"
)

const DefaultMaxBytes int64 = 10 << 20

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

var nestedGroups = map[string]bool{"education": true, "employment": true, "family": true}

// DetectFormat prefers the file extension and falls back to the declared
// MIME type, since browsers label .csv files inconsistently.
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch mediaType {
	case "text/csv", "application/csv", "text/plain":
		return FormatCSV, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return FormatXLSX, nil
	case "application/json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, filename, contentType)
}

type RecordParser struct {
	MaxBytes int64
}

func NewRecordParser(maxBytes int64) *RecordParser {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &RecordParser{MaxBytes: maxBytes}
}

// Parse reads the whole upload and returns one RowRecord per non-blank data
// row. Any failure is a *ParseError and no records are returned.
func (p *RecordParser) Parse(r io.Reader, filename, contentType string) ([]user.RowRecord, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	maxBytes := p.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, &ParseError{Format: format, Err: fmt.Errorf("read upload: %w", err)}
	}
	if int64(len(data)) > maxBytes {
		return nil, &ParseError{Format: format, Err: fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, maxBytes)}
	}

	var header []string
	var rows [][]string
	switch format {
	case FormatCSV:
		header, rows, err = readCSV(data)
	case FormatXLSX:
		header, rows, err = readXLSX(data)
	case FormatJSON:
		header, rows, err = readJSON(data)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}

	records, err := buildRecords(header, rows)
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	return records, nil
}

func readCSV(data []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("decode csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, ErrEmptyFile
	}
	return all[0], all[1:], nil
}

func readXLSX(data []byte) ([]string, [][]string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyFile
	}
	all, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, nil, ErrEmptyFile
	}
	return all[0], all[1:], nil
}

// readJSON accepts an array of objects. Nested education, employment and
// family arrays are flattened into {group}_{field}_{n} columns.
func readJSON(data []byte) ([]string, [][]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []map[string]any
	if err := dec.Decode(&items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil, errors.New("json upload must be an array of objects")
		}
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrEmptyFile
		}
		return nil, nil, fmt.Errorf("decode json: %w", err)
	}

	var header []string
	index := make(map[string]int)
	flat := make([]map[string]string, 0, len(items))
	for _, item := range items {
		cells := flattenJSON(item)
		keys := make([]string, 0, len(cells))
		for k := range cells {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(header)
				header = append(header, k)
			}
		}
		flat = append(flat, cells)
	}

	if len(items) > 0 && len(header) == 0 {
		return nil, nil, ErrEmptyFile
	}
	if len(items) == 0 {
		header = append([]string{}, requiredColumns...)
	}

	rows := make([][]string, 0, len(flat))
	for _, cells := range flat {
		row := make([]string, len(header))
		for k, v := range cells {
			row[index[k]] = v
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func flattenJSON(item map[string]any) map[string]string {
	cells := make(map[string]string, len(item))
	for key, value := range item {
		group := strings.ToLower(strings.TrimSpace(key))
		if entries, ok := value.([]any); ok && nestedGroups[group] {
			for i, entry := range entries {
				fields, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				for field, v := range fields {
					cells[fmt.Sprintf("%s_%s_%d", group, cleanHeader(field), i+1)] = stringify(v)
				}
			}
			continue
		}
		cells[key] = stringify(value)
	}
	return cells
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
