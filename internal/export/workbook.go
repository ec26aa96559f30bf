// Package export writes reports to an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lazypower/growthlog/internal/report"
)

const (
	FeedbackSheet = "Feedback"
	PeriodSheet   = "Period"
)

// WriteWorkbook writes list and detail as two sheets to w.
func WriteWorkbook(w io.Writer, list report.FeedbackList, detail report.PeriodDetail) error {
	f, err := build(list, detail)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook to path, replacing any existing file.
func SaveWorkbook(path string, list report.FeedbackList, detail report.PeriodDetail) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteWorkbook(out, list, detail); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func build(list report.FeedbackList, detail report.PeriodDetail) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", FeedbackSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(PeriodSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("new sheet: %w", err)
	}

	if err := writeRows(f, FeedbackSheet, feedbackRows(list)); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRows(f, PeriodSheet, periodRows(detail)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func feedbackRows(list report.FeedbackList) [][]any {
	if list.Empty {
		return [][]any{{list.Message}}
	}
	rows := [][]any{{"date", "feedback", "summary", "emotion"}}
	for _, e := range list.Feedbacks {
		rows = append(rows, []any{e.Date, str(e.Feedback), str(e.Summary), str(e.Emotion)})
	}
	return rows
}

func periodRows(d report.PeriodDetail) [][]any {
	if d.NoData {
		return [][]any{{d.Message}}
	}
	w, m := d.WeeklyEmotions, d.MonthlyEmotions
	rows := [][]any{
		{"", "weekly", "monthly"},
		{"average progress", d.AverageWeeklyProgress, d.AverageMonthlyProgress},
		{"joy", w.Joy, m.Joy},
		{"sadness", w.Sadness, m.Sadness},
		{"anger", w.Anger, m.Anger},
		{"anxiety", w.Anxiety, m.Anxiety},
		{"satisfaction", w.Satisfaction, m.Satisfaction},
		{"titles", strings.Join(d.WeeklyTitles, ", "), strings.Join(d.MonthlyTitles, ", ")},
	}
	if d.WeeklyPeerGoals == nil && d.MonthlyPeerGoals == nil {
		return rows
	}

	rows = append(rows, []any{}, []any{"peer goals", "user", "title"})
	for _, p := range d.WeeklyPeerGoals {
		rows = append(rows, []any{"weekly", p.User, p.Title})
	}
	for _, p := range d.MonthlyPeerGoals {
		rows = append(rows, []any{"monthly", p.User, p.Title})
	}
	return rows
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
