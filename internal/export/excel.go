package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"
)

const dateLayout = "02/01/2006"

// Exporter renders candidate sets into spreadsheet workbooks. The CV
// column links to the stored file by name under the configured base
// URL.
type Exporter struct {
	baseURL    string
	maxRecords int
}

func NewExporter(cfg *config.Config) *Exporter {
	return &Exporter{
		baseURL:    cfg.Export.BaseURL,
		maxRecords: cfg.Export.MaxRecords,
	}
}

type column struct {
	header string
	width  float64
}

var candidateColumns = []column{
	{"Sr. No.", 10},
	{"Uploaded By", 25},
	{"Date Of Upload", 20},
	{"First Name", 20},
	{"Middle Name", 20},
	{"Last Name", 20},
	{"Email", 30},
	{"Alternate Email", 30},
	{"Contact No", 20},
	{"Alternate Contact No", 20},
	{"Father Name", 25},
	{"PAN No", 20},
	{"Date of Birth", 20},
	{"Gender", 15},
	{"Current State", 20},
	{"Current City", 20},
	{"Preferred State", 20},
	{"Preferred City", 20},
	{"Current Employer", 25},
	{"Designation", 25},
	{"Department", 25},
	{"CTC (Lakhs)", 15},
	{"Experience (Yrs)", 15},
	{"CV Link", 40},
}

// Candidates renders one data row per record, serial-numbered by
// position in the given order. An empty set is a not-found condition,
// never an empty workbook. The configured record cap (0 = unlimited)
// bounds the sheet.
func (e *Exporter) Candidates(records []model.Candidate, filtered bool) (*excelize.File, string, error) {
	if len(records) == 0 {
		return nil, "", apperrors.ErrNothingToExport
	}
	if e.maxRecords > 0 && len(records) > e.maxRecords {
		records = records[:e.maxRecords]
	}

	f := excelize.NewFile()
	const sheet = "Filtered Candidates"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, linkStyle, bodyStyle, err := e.styles(f)
	if err != nil {
		return nil, "", err
	}

	for i, col := range candidateColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, col.width)
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col.header)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(candidateColumns))
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	for i, rec := range records {
		row := i + 2
		values := []interface{}{
			i + 1,
			rec.UploadedBy,
			formatDate(&rec.DateOfUpload),
			rec.FirstName,
			rec.MiddleName,
			rec.LastName,
			rec.MailID,
			rec.AlternateMailID,
			rec.ContactNo,
			rec.AlternateContactNo,
			rec.FatherName,
			rec.PANNo,
			formatDate(rec.DateOfBirth),
			string(rec.Gender),
			rec.CurrentState,
			rec.CurrentCity,
			rec.PreferredState,
			rec.PreferredCity,
			rec.CurrentEmployer,
			rec.Designation,
			rec.Department,
			formatCTC(rec.MinCTC, rec.MaxCTC),
			formatExperience(rec.MinExperience, rec.MaxExperience),
			"",
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}

		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(candidateColumns), row)
		f.SetCellStyle(sheet, first, last, bodyStyle)

		if rec.Attachment != nil && rec.Attachment.FileName != "" {
			cell, _ := excelize.CoordinatesToCellName(len(candidateColumns), row)
			f.SetCellValue(sheet, cell, "Download CV")
			f.SetCellHyperLink(sheet, cell, e.cvURL(rec.Attachment.FileName), "External")
			f.SetCellStyle(sheet, cell, cell, linkStyle)
		}
	}

	prefix := ""
	if filtered {
		prefix = "Filtered_"
	}
	filename := fmt.Sprintf("%s%d_Candidates_Data.xlsx", prefix, len(records))
	return f, filename, nil
}

// SingleCandidate renders one record transposed into a Field/Value
// sheet. serial is the record's positional rank by upload date.
func (e *Exporter) SingleCandidate(rec model.Candidate, comments []model.Comment, serial int) (*excelize.File, string, error) {
	f := excelize.NewFile()
	const sheet = "Candidate Details"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, linkStyle, _, err := e.styles(f)
	if err != nil {
		return nil, "", err
	}

	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 50)
	f.SetCellValue(sheet, "A1", "Field")
	f.SetCellValue(sheet, "B1", "Value")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	rows := []struct {
		field string
		value interface{}
	}{
		{"Sr. No.", serial},
		{"Uploaded By", rec.UploadedBy},
		{"Date Of Upload", formatDateOr(&rec.DateOfUpload, "N/A")},
		{"First Name", rec.FirstName},
		{"Middle Name", rec.MiddleName},
		{"Last Name", rec.LastName},
		{"Email", rec.MailID},
		{"Alternate Email", rec.AlternateMailID},
		{"Contact No", rec.ContactNo},
		{"Alternate Contact No", rec.AlternateContactNo},
		{"Father Name", rec.FatherName},
		{"PAN No", rec.PANNo},
		{"Date of Birth", formatDateOr(rec.DateOfBirth, "N/A")},
		{"Gender", string(rec.Gender)},
		{"Current State", rec.CurrentState},
		{"Current City", rec.CurrentCity},
		{"Preferred State", rec.PreferredState},
		{"Preferred City", rec.PreferredCity},
		{"Current Employer", rec.CurrentEmployer},
		{"Designation", rec.Designation},
		{"Department", rec.Department},
		{"CTC (Lakhs)", formatCTC(rec.MinCTC, rec.MaxCTC)},
		{"Experience (Yrs)", formatExperience(rec.MinExperience, rec.MaxExperience)},
		{"Comment 1", commentAt(comments, 0)},
		{"Comment 2", commentAt(comments, 1)},
		{"Comment 3", commentAt(comments, 2)},
	}

	for i, r := range rows {
		rowNum := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), r.field)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), r.value)
	}

	linkRow := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", linkRow), "CV Link")
	if rec.Attachment != nil && rec.Attachment.FileName != "" {
		cell := fmt.Sprintf("B%d", linkRow)
		f.SetCellValue(sheet, cell, "Download Resume")
		f.SetCellHyperLink(sheet, cell, e.cvURL(rec.Attachment.FileName), "External")
		f.SetCellStyle(sheet, cell, cell, linkStyle)
	} else {
		f.SetCellValue(sheet, fmt.Sprintf("B%d", linkRow), "No CV Uploaded")
	}

	name := rec.FirstName
	if name == "" {
		name = "details"
	}
	filename := fmt.Sprintf("candidate_%s_%d.xlsx", name, rec.ID)
	return f, filename, nil
}

func (e *Exporter) cvURL(filename string) string {
	return e.baseURL + "/uploads/" + filename
}

func (e *Exporter) styles(f *excelize.File) (header, link, body int, err error) {
	thin := []excelize.Border{
		{Type: "top", Style: 1}, {Type: "left", Style: 1},
		{Type: "bottom", Style: 1}, {Type: "right", Style: 1},
	}

	header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return 0, 0, 0, err
	}

	link, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0000FF", Underline: "single"},
	})
	if err != nil {
		return 0, 0, 0, err
	}

	body, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return 0, 0, 0, err
	}
	return header, link, body, nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDateOr(t *time.Time, fallback string) string {
	if s := formatDate(t); s != "" {
		return s
	}
	return fallback
}

func formatCTC(min, max *float64) string {
	switch {
	case min == nil && max == nil:
		return ""
	case min != nil && max != nil && *min != *max:
		return fmt.Sprintf("%.2f-%.2f", *min, *max)
	case min != nil:
		return fmt.Sprintf("%.2f", *min)
	default:
		return fmt.Sprintf("%.2f", *max)
	}
}

func formatExperience(min, max *int) string {
	switch {
	case min == nil && max == nil:
		return ""
	case min != nil && max != nil && *min != *max:
		return fmt.Sprintf("%d-%d", *min, *max)
	case min != nil:
		return fmt.Sprintf("%d", *min)
	default:
		return fmt.Sprintf("%d", *max)
	}
}

func commentAt(comments []model.Comment, i int) string {
	if i < len(comments) {
		return comments[i].Text
	}
	return ""
}
