package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mpavlovs/punchclock/internal/common"
	"github.com/mpavlovs/punchclock/internal/server/models"
	"github.com/mpavlovs/punchclock/internal/server/repositories/repomanager"
	"github.com/mpavlovs/punchclock/internal/timex"
)

// ReportService turns stored sessions into attendance report rows. It is
// read-only and safe to run concurrently with clock operations.
type ReportService struct {
	repos repomanager.RepositoryManager
	// loc is the reference time zone for report dates and clock strings.
	// Contractor time zone fields are labels, not conversion inputs.
	loc *time.Location
}

func NewReportService(m repomanager.RepositoryManager, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{repos: m, loc: loc}
}

// Generate builds one row per closed session whose clock-in date falls in
// [fromDate, toDate], both "2006-01-02" calendar dates, ordered by
// clock-in. Open sessions are excluded. An empty range yields an empty
// slice, not an error.
func (s *ReportService) Generate(ctx context.Context, contractorID, fromDate, toDate string) ([]*models.AttendanceReportRow, error) {
	from, err := time.ParseInLocation(timex.DateOnly, fromDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: from_date %q", common.ErrInvalidInput, fromDate)
	}
	to, err := time.ParseInLocation(timex.DateOnly, toDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: to_date %q", common.ErrInvalidInput, toDate)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s is after %s", common.ErrInvalidRange, fromDate, toDate)
	}

	contractor, err := s.repos.Contractors().GetByID(ctx, contractorID)
	if err != nil {
		return nil, err
	}

	// Half-open window [from 00:00, day after to 00:00) in the reference
	// zone, so "clock-in date within the range" holds across DST shifts.
	entries, err := s.repos.TimeEntries().ListClosedBetween(ctx, contractorID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	rows := make([]*models.AttendanceReportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, s.row(contractor, e))
	}
	return rows, nil
}

func (s *ReportService) row(c *models.Contractor, e *models.TimeEntry) *models.AttendanceReportRow {
	clockIn := e.ClockIn.In(s.loc)
	clockOut := e.ClockOut.In(s.loc)

	return &models.AttendanceReportRow{
		EntryID:            e.ID,
		ContractorID:       c.ID,
		Name:               c.Name,
		Email:              c.Email,
		TeamName:           c.TeamName,
		Date:               clockIn.Format(timex.DateOnly),
		ClockIn:            clockIn.Format(timex.Clock12),
		ClockOut:           clockOut.Format(timex.Clock12),
		TimeAtWork:         timex.FormatHoursMinutes(e.Duration()),
		ProductiveTime:     timex.FormatHoursMinutes(e.Productive),
		IdleTime:           timex.FormatHoursMinutes(e.Idle),
		ActivityPercentage: math.Round(e.ActivityPct()*100) / 100,
	}
}
