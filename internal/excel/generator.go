package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/advisio/crm-console/internal/listing"
	"github.com/advisio/crm-console/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the contract-book workbook: a summary sheet plus one
// sheet per institution holding its contracts.
func (g *Generator) Generate(rows []listing.ContractRow) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, rows); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, institution := range model.Institutions() {
		group := filterByInstitution(rows, institution)
		if len(group) == 0 {
			continue
		}
		sheetName := buildSheetName(string(institution), usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeInstitution(file, sheetName, institution, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, rows []listing.ContractRow) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contracts total")
	set("B1", len(rows))

	tableRow := 3
	set(fmt.Sprintf("A%d", tableRow), "Institution")
	set(fmt.Sprintf("B%d", tableRow), "Contracts")

	for i, institution := range model.Institutions() {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), string(institution))
		set(fmt.Sprintf("B%d", row), len(filterByInstitution(rows, institution)))
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 14)
	return nil
}

func (g *Generator) writeInstitution(file *excelize.File, sheet string, institution model.Institution, rows []listing.ContractRow) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Institution")
	set("B1", string(institution))
	set("A2", "Contracts")
	set("B2", len(rows))

	tableRow := 4
	headers := []string{
		"Registration Number",
		"Client",
		"Administrator",
		"Advisors",
		"Conclusion Date",
		"Validity Date",
		"Ending Date",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, row := range rows {
		r := tableRow + 1 + i
		set(fmt.Sprintf("A%d", r), row.RegistrationNumber)
		set(fmt.Sprintf("B%d", r), row.ClientName)
		set(fmt.Sprintf("C%d", r), row.AdministratorName)
		set(fmt.Sprintf("D%d", r), advisorNames(row))
		set(fmt.Sprintf("E%d", r), formatDate(row.ConclusionDate))
		set(fmt.Sprintf("F%d", r), formatDate(row.ValidityDate))
		set(fmt.Sprintf("G%d", r), formatDate(row.EndingDate))
	}

	_ = file.SetColWidth(sheet, "A", "A", 22)
	_ = file.SetColWidth(sheet, "B", "D", 32)
	_ = file.SetColWidth(sheet, "E", "G", 16)
	return nil
}

func filterByInstitution(rows []listing.ContractRow, institution model.Institution) []listing.ContractRow {
	var group []listing.ContractRow
	for _, row := range rows {
		if row.Institution == institution {
			group = append(group, row)
		}
	}
	return group
}

func advisorNames(row listing.ContractRow) string {
	names := make([]string, 0, len(row.AssignedAdvisors))
	for _, ref := range row.AssignedAdvisors {
		names = append(names, ref.Name)
	}
	return strings.Join(names, ", ")
}

func buildSheetName(name string, used map[string]struct{}) string {
	base := sanitizeSheetName(name)
	if len(base) > 31 {
		base = base[:31]
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
