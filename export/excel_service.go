package export

import (
	"bytes"
	"fmt"
	"strings"

	gospreadsheet "github.com/VantageDataChat/GoExcel"
)

// ExcelService renders the stakeholder register as a spreadsheet using
// GoExcel (pure Go).
type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

var stakeholderColumns = []struct {
	title string
	width float64
}{
	{"Stakeholder", 24},
	{"Role in Project", 28},
	{"Responsibilities", 60},
}

// Generate builds the .xlsx buffer plus its attachment name. The register
// always carries at least one row so an empty project still opens cleanly.
func (s *ExcelService) Generate(project *ProjectContent) ([]byte, string, error) {
	n := Normalize(project)

	wb := gospreadsheet.New()
	ws := wb.GetActiveSheet()
	ws.SetTitle("Stakeholder Register")

	headerStyle := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
			Name:  "Calibri",
		}).
		SetFill(&gospreadsheet.Fill{
			Type:  "solid",
			Color: "2E74B5",
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignCenter,
			Vertical:   gospreadsheet.AlignMiddle,
		}).
		SetBorders(&gospreadsheet.Borders{
			Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
		})

	dataStyle := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Size: 10,
			Name: "Calibri",
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignLeft,
			Vertical:   gospreadsheet.AlignMiddle,
			WrapText:   true,
		}).
		SetBorders(&gospreadsheet.Borders{
			Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
		})

	for i, column := range stakeholderColumns {
		cellName, _ := gospreadsheet.CellName(0, i)
		ws.SetCellValue(cellName, column.title)
		ws.SetCellStyle(cellName, headerStyle)
		ws.SetColumnWidth(i, column.width)
	}
	ws.SetRowHeight(0, 25)

	rows := n.Rows
	if len(rows) == 0 {
		rows = []StakeholderRow{{Title: fallbackStakeName, ProjectRole: fallbackStakeRole}}
	}
	for rowIdx, row := range rows {
		name, role := splitStakeholderTitle(row.Title, geometryFor(1).NameSplitPatterns)
		if row.ProjectRole != fallbackStakeRole && role == fallbackStakeRole {
			role = row.ProjectRole
		}
		resp := strings.Join(row.BulletList, "; ")
		if resp == "" {
			resp = fallbackBullet
		}

		excelRow := rowIdx + 1
		for colIdx, value := range []string{name, role, resp} {
			cellName, _ := gospreadsheet.CellName(excelRow, colIdx)
			ws.SetCellValue(cellName, value)
			ws.SetCellStyle(cellName, dataStyle)
		}
		ws.SetRowHeight(excelRow, 20)
	}

	ws.FreezePane("A2")

	wb.Properties.Title = displayTitle(n)
	wb.Properties.Creator = "ChangePilot"
	wb.Properties.Description = "Stakeholder register generated by ChangePilot"
	wb.Properties.Subject = "Stakeholder Register"

	var buf bytes.Buffer
	writer := gospreadsheet.NewXLSXWriter()
	if err := writer.Write(wb, &buf); err != nil {
		return nil, "", fmt.Errorf("write excel file: %w", err)
	}

	filename := SanitizeBaseName(projectName(project)) + "_Stakeholder_Register.xlsx"
	return buf.Bytes(), filename, nil
}
