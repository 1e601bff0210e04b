package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mpavlovs/punchclock/internal/common"
	"github.com/mpavlovs/punchclock/internal/logging"
	"github.com/mpavlovs/punchclock/internal/server/capture"
	"github.com/mpavlovs/punchclock/internal/server/models"
	"github.com/mpavlovs/punchclock/internal/server/repositories/repomanager"
	"github.com/mpavlovs/punchclock/internal/server/screenshots"
	"github.com/mpavlovs/punchclock/internal/syncx"
)

// ClockService drives the session state machine: NoSession -> Open via
// ClockIn, Open -> Closed via ClockOut. Per contractor at most one entry
// is open at any instant; the service serializes same-contractor
// transitions with a keyed lock and the storage layer backs the rule with
// its own uniqueness guarantee.
type ClockService struct {
	repos   repomanager.RepositoryManager
	screen  capture.ScreenCapturer
	system  capture.SystemProber
	store   screenshots.Store
	split   SplitPolicy
	timeout time.Duration
	locks   *syncx.KeyedMutex
	logger  logging.Logger

	// now is a seam for deterministic time in tests.
	now func() time.Time
}

func NewClockService(
	m repomanager.RepositoryManager,
	screen capture.ScreenCapturer,
	system capture.SystemProber,
	store screenshots.Store,
	split SplitPolicy,
	captureTimeout time.Duration,
	logger logging.Logger,
) *ClockService {
	return &ClockService{
		repos:   m,
		screen:  screen,
		system:  system,
		store:   store,
		split:   split,
		timeout: captureTimeout,
		locks:   syncx.NewKeyedMutex(),
		logger:  logger,
		now:     time.Now,
	}
}

// stamp returns the current time at storage resolution. Clock times are
// kept at whole milliseconds so durations survive a database round trip
// without rounding loss.
func (s *ClockService) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// ClockIn opens a session for an existing, active contractor. Enrichment
// (screenshot, system snapshot) runs after the transition is durable and
// outside the per-contractor lock; its failures are logged, never
// surfaced.
func (s *ClockService) ClockIn(ctx context.Context, contractorID string) (*models.TimeEntry, error) {
	entry, err := s.clockInLocked(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	s.enrichEntry(ctx, entry, models.EventClockIn, true)
	return entry, nil
}

func (s *ClockService) clockInLocked(ctx context.Context, contractorID string) (*models.TimeEntry, error) {
	unlock := s.locks.Lock(contractorID)
	defer unlock()

	contractor, err := s.repos.Contractors().GetByID(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	if !contractor.Active {
		return nil, fmt.Errorf("%w: contractor %s is deactivated", common.ErrNotFound, contractorID)
	}

	entry, err := s.repos.TimeEntries().CreateOpen(ctx, contractorID, s.stamp())
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "clock-in recorded", "contractor_id", contractorID, "entry_id", entry.ID)
	return entry, nil
}

// ClockOut closes the contractor's open session, freezing its duration
// and the policy split. The closing screenshot is appended best-effort.
func (s *ClockService) ClockOut(ctx context.Context, contractorID string) (*models.TimeEntry, error) {
	entry, err := s.clockOutLocked(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	s.enrichEntry(ctx, entry, models.EventClockOut, false)
	return entry, nil
}

func (s *ClockService) clockOutLocked(ctx context.Context, contractorID string) (*models.TimeEntry, error) {
	unlock := s.locks.Lock(contractorID)
	defer unlock()

	if _, err := s.repos.Contractors().GetByID(ctx, contractorID); err != nil {
		return nil, err
	}

	open, err := s.repos.TimeEntries().FindOpenByContractor(ctx, contractorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNoOpenSession
		}
		return nil, err
	}

	clockOut := s.stamp()
	total := clockOut.Sub(open.ClockIn)
	productive, idle := s.split(total)

	closed, err := s.repos.TimeEntries().Close(ctx, open.ID, clockOut, productive, idle)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "clock-out recorded",
		"contractor_id", contractorID, "entry_id", closed.ID,
		"time_at_work", closed.Duration().String())
	return closed, nil
}

// ActiveSession returns the contractor's open entry, or nil when the
// contractor exists but has none.
func (s *ClockService) ActiveSession(ctx context.Context, contractorID string) (*models.TimeEntry, error) {
	if _, err := s.repos.Contractors().GetByID(ctx, contractorID); err != nil {
		return nil, err
	}

	open, err := s.repos.TimeEntries().FindOpenByContractor(ctx, contractorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return open, nil
}

// Recent returns the contractor's latest entries, newest first.
func (s *ClockService) Recent(ctx context.Context, contractorID string, limit int) ([]*models.TimeEntry, error) {
	if _, err := s.repos.Contractors().GetByID(ctx, contractorID); err != nil {
		return nil, err
	}
	return s.repos.TimeEntries().ListRecent(ctx, contractorID, limit)
}

// ScreenshotLink pairs a stored screenshot reference with a fetchable URL.
type ScreenshotLink struct {
	Event   string
	Key     string
	TakenAt time.Time
	URL     string
}

// EntryScreenshots resolves view URLs for every screenshot of an entry.
func (s *ClockService) EntryScreenshots(ctx context.Context, entryID string) ([]ScreenshotLink, error) {
	entry, err := s.repos.TimeEntries().GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	links := make([]ScreenshotLink, 0, len(entry.Screenshots))
	for _, shot := range entry.Screenshots {
		url, err := s.store.URL(ctx, shot.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: resolving screenshot url: %v", common.ErrStorage, err)
		}
		links = append(links, ScreenshotLink{
			Event:   shot.Event,
			Key:     shot.Key,
			TakenAt: shot.TakenAt,
			URL:     url,
		})
	}
	return links, nil
}

// SystemSnapshot probes the host within the capture timeout. Used by the
// diagnostics endpoint; unlike enrichment, failures are surfaced here.
func (s *ClockService) SystemSnapshot(ctx context.Context) (*models.SystemInfo, error) {
	return capture.Run(ctx, s.timeout, s.system.ProbeSystem)
}

// enrichEntry captures a screenshot (and at clock-in a system snapshot),
// stores what succeeded and appends it to the entry. Every step is
// best-effort: failures are logged as warnings and the entry stays valid.
func (s *ClockService) enrichEntry(ctx context.Context, entry *models.TimeEntry, event string, withSystem bool) {
	var shots []models.Screenshot

	img, err := capture.Run(ctx, s.timeout, s.screen.CaptureScreen)
	if err != nil {
		s.logger.Warn(ctx, "screenshot capture failed",
			"contractor_id", entry.ContractorID, "entry_id", entry.ID, "event", event, "error", err)
	} else {
		takenAt := s.stamp()
		key := screenshots.Key(entry.ContractorID, entry.ID, event, takenAt)
		if err := s.store.Save(ctx, key, img); err != nil {
			s.logger.Warn(ctx, "screenshot save failed",
				"contractor_id", entry.ContractorID, "entry_id", entry.ID, "key", key, "error", err)
		} else {
			shots = append(shots, models.Screenshot{Event: event, Key: key, TakenAt: takenAt})
		}
	}

	var sys *models.SystemInfo
	if withSystem {
		sys, err = capture.Run(ctx, s.timeout, s.system.ProbeSystem)
		if err != nil {
			s.logger.Warn(ctx, "system probe failed",
				"contractor_id", entry.ContractorID, "entry_id", entry.ID, "error", err)
			sys = nil
		}
	}

	if len(shots) == 0 && sys == nil {
		return
	}

	if err := s.repos.TimeEntries().AppendEnrichment(ctx, entry.ID, shots, sys); err != nil {
		s.logger.Warn(ctx, "enrichment write failed",
			"contractor_id", entry.ContractorID, "entry_id", entry.ID, "error", err)
		return
	}

	entry.Screenshots = append(entry.Screenshots, shots...)
	if sys != nil {
		entry.System = sys
	}
}
