package excelreport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

// Writer renders processed documents and their fused entities into an
// XLSX workbook for manual review: one summary sheet, one entity sheet.
type Writer struct{}

func New() *Writer { return &Writer{} }

const (
	summarySheet  = "Documents"
	entitiesSheet = "Entities"
)

func (w *Writer) Write(docs []domain.Document, records map[string][]domain.AnnotationRecord, out io.Writer) error {
	f := excelize.NewFile()

	if err := renameDefaultSheet(f, summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(entitiesSheet); err != nil {
		return fmt.Errorf("create entities sheet: %w", err)
	}

	if err := writeSummary(f, docs); err != nil {
		return err
	}
	if err := writeEntities(f, docs, records); err != nil {
		return err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func renameDefaultSheet(f *excelize.File, name string) error {
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, docs []domain.Document) error {
	headers := []string{
		"Document ID", "Filename", "Status", "Extraction Method",
		"Pages", "Confidence", "Color Markup", "Error",
	}
	if err := writeRow(f, summarySheet, 1, toAnys(headers)); err != nil {
		return err
	}

	for i, doc := range docs {
		row := []any{
			doc.ID, doc.Filename, string(doc.Status), doc.ExtractionMethod,
			doc.PageCount, doc.Confidence, doc.ColorIntegration, doc.Error,
		}
		if err := writeRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 38)
	_ = f.SetColWidth(summarySheet, "B", "B", 32)
	_ = f.SetColWidth(summarySheet, "D", "D", 18)
	return nil
}

func writeEntities(f *excelize.File, docs []domain.Document, records map[string][]domain.AnnotationRecord) error {
	headers := []string{
		"Document ID", "Filename", "Page", "Group", "Label",
		"Text", "Confidence", "Source", "Context",
	}
	if err := writeRow(f, entitiesSheet, 1, toAnys(headers)); err != nil {
		return err
	}

	row := 2
	for _, doc := range docs {
		for pageIdx, record := range records[doc.ID] {
			for _, group := range entityGroups(record) {
				for _, entity := range group.entities {
					values := []any{
						doc.ID, doc.Filename, pageIdx + 1, group.name, entity.Label,
						entity.Text, entity.Confidence, string(entity.Provenance), entity.Context,
					}
					if err := writeRow(f, entitiesSheet, row, values); err != nil {
						return err
					}
					row++
				}
			}
		}
	}

	_ = f.SetColWidth(entitiesSheet, "A", "A", 38)
	_ = f.SetColWidth(entitiesSheet, "B", "B", 32)
	_ = f.SetColWidth(entitiesSheet, "F", "F", 40)
	_ = f.SetColWidth(entitiesSheet, "I", "I", 60)
	return nil
}

type entityGroup struct {
	name     string
	entities []domain.FusedEntity
}

func entityGroups(record domain.AnnotationRecord) []entityGroup {
	return []entityGroup{
		{"companies", record.LegalEntities.Companies},
		{"persons", record.LegalEntities.Persons},
		{"roles", record.LegalEntities.Roles},
		{"monetary_amounts", record.FinancialInformation.MonetaryAmounts},
		{"percentages", record.FinancialInformation.Percentages},
		{"payment_structures", record.FinancialInformation.PaymentStructures},
		{"articles", record.LegalReferences.Articles},
		{"sections", record.LegalReferences.Sections},
		{"exhibits", record.LegalReferences.Exhibits},
		{"execution_dates", record.DatesAndDeadlines.ExecutionDates},
		{"closing_dates", record.DatesAndDeadlines.ClosingDates},
		{"other_dates", record.DatesAndDeadlines.OtherDates},
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func toAnys(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
