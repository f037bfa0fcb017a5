package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Vrinda2013/hireai-frontend/internal/models"
)

// ExportCandidates writes the given candidate set to an Excel workbook with
// a summary sheet and a per-candidate sheet. The set is usually the visible
// subset of the listing, so it reflects the filters active on screen.
func ExportCandidates(candidates []models.Candidate, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	// Ensure output path has .xlsx extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	candidatesSheet := "Candidates"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, candidates); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeCandidatesSheet(f, candidatesSheet, candidates); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// writeSummarySheet writes export metadata and per-status counts.
func writeSummarySheet(f *excelize.File, sheetName string, candidates []models.Candidate) error {
	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "B", 40)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Candidate Export")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Generated:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), time.Now().Format("2006-01-02 15:04:05"))
	row++

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Candidates Exported:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), len(candidates))
	row += 2

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "By Status:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	row++

	counts := make(map[models.Status]int)
	for _, c := range candidates {
		counts[models.NormalizeStatus(c.Status)]++
	}
	for _, status := range models.AllStatuses {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), string(status))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), counts[status])
		row++
	}

	return nil
}

// writeCandidatesSheet writes one row per candidate.
func writeCandidatesSheet(f *excelize.File, sheetName string, candidates []models.Candidate) error {
	headers := []string{
		"Name", "Email", "Phone", "Location", "Current Title",
		"Role Applied", "Status", "Technical Skills", "Soft Skills", "Created",
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	widths := []float64{22, 28, 16, 18, 22, 22, 14, 32, 32, 20}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		f.SetColWidth(sheetName, col, col, w)
	}

	for i, c := range candidates {
		row := i + 2
		values := []interface{}{
			c.FullName,
			c.Email,
			c.Phone,
			c.Location,
			c.CurrentTitle,
			c.RoleApplied,
			string(models.NormalizeStatus(c.Status)),
			strings.Join(c.TechnicalSkills, ", "),
			strings.Join(c.SoftSkills, ", "),
			c.CreatedAt,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return nil
}
