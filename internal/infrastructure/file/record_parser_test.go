package file_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/unitynest/nest-backend/internal/infrastructure/file"
	"github.com/xuri/excelize/v2"
)

func TestParseCSVMapsScalarsAndNestedGroups(t *testing.T) {
	t.Parallel()

	data := "\ufeffFull Name,Email,Mobile,Password,DOB,education_degree_1,education_institution_1,Employment-Company-Name-2,family_name_1,family_relation_1,family_name_11,favourite_color\n" +
		"Ravi Kumar,ravi@example.com,9848022338,secret123,1990-07-21,B.Tech,JNTU,Infosys,Lakshmi,mother,Ignored,blue\n"

	records, err := file.NewRecordParser(0).Parse(strings.NewReader(data), "members.csv", "text/csv")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Row != 1 {
		t.Fatalf("unexpected row: %d", rec.Row)
	}
	if rec.FullName != "Ravi Kumar" || rec.Phone != "9848022338" || rec.DOB != "1990-07-21" {
		t.Fatalf("unexpected scalars: %+v", rec)
	}
	if rec.Education[0].Degree != "B.Tech" || rec.Education[0].Institution != "JNTU" {
		t.Fatalf("unexpected education slot: %+v", rec.Education[0])
	}
	if rec.Employment[1].CompanyName != "Infosys" || !rec.Employment[0].IsEmpty() {
		t.Fatalf("unexpected employment slots: %+v", rec.Employment)
	}
	if rec.Family[0].Name != "Lakshmi" || rec.Family[0].Relation != "mother" {
		t.Fatalf("unexpected family slot: %+v", rec.Family[0])
	}
}

func TestParseCSVKeepsSourceRowNumbersAcrossBlankRows(t *testing.T) {
	t.Parallel()

	data := "full_name,email,phone,password\n" +
		"A One,a@example.com,9000000001,secret1\n" +
		",,,\n" +
		"C Three,c@example.com,9000000003,secret3\n"

	records, err := file.NewRecordParser(0).Parse(strings.NewReader(data), "members.csv", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Row != 1 || records[1].Row != 3 {
		t.Fatalf("unexpected rows: %d, %d", records[0].Row, records[1].Row)
	}
}

func TestParseRejectsOversizedFile(t *testing.T) {
	t.Parallel()

	data := "full_name,email,phone,password\n" + strings.Repeat("X Y,x@example.com,9000000000,secret1\n", 100)

	records, err := file.NewRecordParser(256).Parse(strings.NewReader(data), "members.csv", "text/csv")
	if err == nil {
		t.Fatal("expected error")
	}
	if records != nil {
		t.Fatal("expected no records")
	}
	var parseErr *file.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if !errors.Is(err, file.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestParseRejectsMissingRequiredColumns(t *testing.T) {
	t.Parallel()

	_, err := file.NewRecordParser(0).Parse(strings.NewReader("full_name,email\nA,a@example.com\n"), "members.csv", "")
	if !errors.Is(err, file.ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	if !strings.Contains(err.Error(), "phone, password") {
		t.Fatalf("expected missing columns to be listed, got %v", err)
	}
}

func TestParseRejectsUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := file.NewRecordParser(0).Parse(strings.NewReader("%PDF"), "members.pdf", "application/pdf")
	if !errors.Is(err, file.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseRejectsMalformedCSV(t *testing.T) {
	t.Parallel()

	data := "full_name,email,phone,password\n\"Unclosed,a@example.com,9000000000,secret1\n"
	_, err := file.NewRecordParser(0).Parse(strings.NewReader(data), "members.csv", "")
	var parseErr *file.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseJSONFlattensNestedArrays(t *testing.T) {
	t.Parallel()

	data := `[
      {
        "full_name": "Ravi Kumar",
        "email": "ravi@example.com",
        "phone": 9848022338,
        "password": "secret123",
        "education": [{"degree": "B.Tech", "institution": "JNTU", "year_of_passing": 2012}],
        "employment": [{"company_name": "Infosys", "role": "Engineer", "currently_working": true}],
        "family": [{"name": "Lakshmi", "relation": "mother"}]
      }
    ]`

	records, err := file.NewRecordParser(0).Parse(strings.NewReader(data), "members.json", "application/json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Phone != "9848022338" {
		t.Fatalf("unexpected phone: %s", rec.Phone)
	}
	if rec.Education[0].YearOfPassing != "2012" {
		t.Fatalf("unexpected year: %s", rec.Education[0].YearOfPassing)
	}
	if rec.Employment[0].CurrentlyWorking != "true" {
		t.Fatalf("unexpected currently_working: %s", rec.Employment[0].CurrentlyWorking)
	}
	if rec.Family[0].Name != "Lakshmi" {
		t.Fatalf("unexpected family name: %s", rec.Family[0].Name)
	}
}

func TestParseJSONRejectsObject(t *testing.T) {
	t.Parallel()

	_, err := file.NewRecordParser(0).Parse(strings.NewReader(`{"full_name":"x"}`), "members.json", "")
	var parseErr *file.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseXLSXReadsFirstSheet(t *testing.T) {
	t.Parallel()

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	rows := [][]any{
		{"full_name", "email", "phone", "password", "gender"},
		{"Ravi Kumar", "ravi@example.com", "9848022338", "secret123", "male"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	records, err := file.NewRecordParser(0).Parse(&buf, "members.xlsx", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 || records[0].Gender != "male" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestDetectFormatFallsBackToContentType(t *testing.T) {
	t.Parallel()

	format, err := file.DetectFormat("upload", "text/csv; charset=utf-8")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if format != file.FormatCSV {
		t.Fatalf("unexpected format: %s", format)
	}
}
