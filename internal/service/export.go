package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/luvi2001/yfcapp/internal/model"
)

const (
	summarySheet = "Summary"
	reportsSheet = "Reports"
)

var reportHeader = []any{
	"User", "Week start", "Week end", "Devotion days", "Planning meeting",
	"Bible study", "Discipler meeting", "Contribution", "Members", "Points", "Max points",
}

// ExportService renders the team window view as a spreadsheet.
type ExportService struct{ stats *StatsService }

func NewExportService(stats *StatsService) *ExportService { return &ExportService{stats: stats} }

// WriteTeamWindow writes an .xlsx workbook with the window summary on one
// sheet and every contributing report on another.
func (s *ExportService) WriteTeamWindow(ctx context.Context, req model.WindowRequest, w io.Writer) error {
	st, err := s.stats.TeamWindow(ctx, req)
	if err != nil {
		return err
	}
	f, err := BuildTeamWorkbook(st)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func BuildTeamWorkbook(st *model.TeamWindowStats) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := fillSummary(f, st); err != nil {
		f.Close()
		return nil, err
	}
	if err := fillReports(f, st.Reports); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillSummary(f *excelize.File, st *model.TeamWindowStats) error {
	rows := [][]any{
		{"Start date", st.StartDate.Format(time.DateOnly)},
		{"End date", st.EndDate.Format(time.DateOnly)},
		{"Required reports", st.RequiredReports},
		{"Total reports", st.TotalReports},
		{"Devotion marks", fmt.Sprintf("%d / %d", st.TotalDevotionMarks, st.MaxDevotionMarks)},
		{"Devotion %", st.DevotionPercentage},
		{"Planning meeting %", st.PlanningMeetingPercentage},
		{"Bible study %", st.BibleStudyPercentage},
		{"Discipler meeting %", st.DisciplerMeetingPercentage},
		{"Points", fmt.Sprintf("%d / %d", st.TotalPoints, st.MaxPoints)},
		{"Team total %", st.TeamTotalPercentage},
	}
	for i, row := range rows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

func fillReports(f *excelize.File, reports []model.Review) error {
	if _, err := f.NewSheet(reportsSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if err := setRow(f, reportsSheet, 1, reportHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(reportsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for i, r := range reports {
		row := []any{
			r.UserName,
			r.WeekStart.Format(time.DateOnly),
			r.WeekEnd.Format(time.DateOnly),
			r.DevotionDays,
			string(r.PlanningMeeting),
			string(r.BibleStudy),
			string(r.DisciplerMeeting),
			string(r.ContributionPaid),
			len(r.Members),
			r.Points,
			r.MaxPoints,
		}
		if err := setRow(f, reportsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}
