package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"techforge_app_go/models"

	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of generated workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const leadSheet = "Leads"

var leadExportHeaders = []string{"Received", "Name", "Email", "Project Type", "Budget", "Timeline", "Requirements", "Source", "Notified"}

// BuildLeadWorkbook writes leads to an XLSX workbook with one row per lead
// and a per-project-type summary sheet
func BuildLeadWorkbook(leads []models.Lead) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", leadSheet)

	for i, h := range leadExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(leadSheet, cell, h)
	}

	counts := make(map[string]int)
	for r, lead := range leads {
		row := r + 2
		notified := ""
		if lead.NotifiedAt != nil {
			notified = lead.NotifiedAt.Format("2006-01-02 15:04")
		}
		values := []interface{}{
			lead.CreatedAt.Format("2006-01-02 15:04"),
			lead.Name,
			lead.Email,
			lead.ProjectType,
			lead.Budget,
			lead.Timeline,
			lead.Requirements,
			lead.Source,
			notified,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(leadSheet, cell, v)
		}
		counts[lead.ProjectType]++
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastHeader, _ := excelize.CoordinatesToCellName(len(leadExportHeaders), 1)
	f.SetCellStyle(leadSheet, "A1", lastHeader, headerStyle)
	f.SetColWidth(leadSheet, "A", "A", 18)
	f.SetColWidth(leadSheet, "B", "C", 28)
	f.SetColWidth(leadSheet, "G", "G", 60)

	summary := "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	f.SetCellValue(summary, "A1", "Project Type")
	f.SetCellValue(summary, "B1", "Leads")
	f.SetCellStyle(summary, "A1", "B1", headerStyle)
	row := 2
	for _, pt := range models.ProjectTypes {
		if counts[pt] == 0 {
			continue
		}
		f.SetCellValue(summary, fmt.Sprintf("A%d", row), pt)
		f.SetCellValue(summary, fmt.Sprintf("B%d", row), counts[pt])
		row++
	}
	f.SetCellValue(summary, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(summary, fmt.Sprintf("B%d", row), len(leads))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// LeadExporter writes lead workbooks to storage
type LeadExporter struct {
	leads   *LeadService
	storage ExportStore
}

func NewLeadExporter(leads *LeadService, storage ExportStore) *LeadExporter {
	return &LeadExporter{leads: leads, storage: storage}
}

// ExportRange stores a workbook of the leads received in [from, until) under
// key. A range with no leads still produces a workbook.
func (e *LeadExporter) ExportRange(ctx context.Context, from, until time.Time, key string) (*StorageResult, int, error) {
	leads, _, err := e.leads.List(ctx, LeadFilter{Since: from, Until: until})
	if err != nil {
		return nil, 0, err
	}

	buf, err := BuildLeadWorkbook(leads)
	if err != nil {
		return nil, 0, err
	}

	size := int64(buf.Len())
	result, err := e.storage.Put(ctx, key, buf, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to store lead export: %w", err)
	}
	return result, len(leads), nil
}

// ExportDay exports the leads of the calendar day containing day
func (e *LeadExporter) ExportDay(ctx context.Context, day time.Time) (*StorageResult, int, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return e.ExportRange(ctx, from, from.AddDate(0, 0, 1), GenerateLeadExportKey(from))
}
