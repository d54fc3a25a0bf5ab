package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"fieldstock/internal/repos"
)

type ReportService struct {
	Reports *repos.ReportRepo
}

func NewReportService(reports *repos.ReportRepo) *ReportService {
	return &ReportService{Reports: reports}
}

type UsageReport struct {
	From    string                `json:"from"`
	To      string                `json:"to"`
	Summary repos.UsageSummary    `json:"summary"`
	Recent  []repos.RequestDetail `json:"recent"`
}

// Usage builds the date-ranged summary; the window defaults to the last 30
// days when either bound is missing.
func (s *ReportService) Usage(from, to time.Time) (*UsageReport, error) {
	now := time.Now().UTC()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	f, t := from.Format("2006-01-02"), to.Format("2006-01-02")

	sum, err := s.Reports.Summary(f, t)
	if err != nil {
		return nil, err
	}
	recent, err := s.Reports.Recent(f, t, 20)
	if err != nil {
		return nil, err
	}
	return &UsageReport{From: f, To: t, Summary: sum, Recent: recent}, nil
}

// ExportXLSX renders the usage report as a spreadsheet.
func (s *ReportService) ExportXLSX(rep *UsageReport) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Usage"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]any{
		{"Usage report", fmt.Sprintf("%s — %s", rep.From, rep.To)},
		{},
		{"Total units issued", rep.Summary.TotalUsed},
		{"Requests", rep.Summary.TotalRequests},
		{"Approved", rep.Summary.ApprovedCount},
		{"Pending", rep.Summary.PendingCount},
		{"Rejected", rep.Summary.RejectedCount},
		{"Materials below minimum", rep.Summary.LowStockCount},
		{},
		{"Requested at", "Material", "Requester", "Qty", "Status", "Admin note"},
	}
	for _, q := range rep.Recent {
		rows = append(rows, []any{q.RequestedAt, q.MaterialName, q.Requester, q.Quantity, q.Status, q.AdminNote})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
