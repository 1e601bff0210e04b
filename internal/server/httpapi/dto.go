package httpapi

import (
	"time"

	"github.com/mpavlovs/punchclock/internal/server/models"
	"github.com/mpavlovs/punchclock/internal/server/services"
)

// Request DTOs. Validation tags are checked with validator/v10 before any
// service call; BodyParser failures and tag violations both map to 400.

type registerContractorRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	TimeZone string `json:"time_zone"`
	AppAndOS string `json:"app_and_os"`
}

type clockRequest struct {
	ContractorID string `json:"contractor_id" validate:"required"`
}

// Response DTOs. Models stay transport-agnostic; the JSON shape is decided
// here.

type contractorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	Phone     string    `json:"phone,omitempty"`
	TeamID    string    `json:"team_id,omitempty"`
	TeamName  string    `json:"team_name,omitempty"`
	TimeZone  string    `json:"time_zone,omitempty"`
	AppAndOS  string    `json:"app_and_os,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toContractorResponse(c *models.Contractor) *contractorResponse {
	return &contractorResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Active:    c.Active,
		Phone:     c.Phone,
		TeamID:    c.TeamID,
		TeamName:  c.TeamName,
		TimeZone:  c.TimeZone,
		AppAndOS:  c.AppAndOS,
		CreatedAt: c.CreatedAt,
	}
}

func toContractorResponses(cs []*models.Contractor) []*contractorResponse {
	out := make([]*contractorResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toContractorResponse(c))
	}
	return out
}

type timeEntryResponse struct {
	ID           string              `json:"id"`
	ContractorID string              `json:"contractor_id"`
	ClockIn      time.Time           `json:"clock_in"`
	ClockOut     *time.Time          `json:"clock_out,omitempty"`
	Open         bool                `json:"open"`
	DurationMS   int64               `json:"duration_ms"`
	ProductiveMS int64               `json:"productive_ms"`
	IdleMS       int64               `json:"idle_ms"`
	ActivityPct  float64             `json:"activity_percentage"`
	Screenshots  []models.Screenshot `json:"screenshots"`
	System       *models.SystemInfo  `json:"system_info,omitempty"`
}

func toTimeEntryResponse(e *models.TimeEntry) *timeEntryResponse {
	shots := e.Screenshots
	if shots == nil {
		shots = []models.Screenshot{}
	}
	return &timeEntryResponse{
		ID:           e.ID,
		ContractorID: e.ContractorID,
		ClockIn:      e.ClockIn,
		ClockOut:     e.ClockOut,
		Open:         e.Open(),
		DurationMS:   e.Duration().Milliseconds(),
		ProductiveMS: e.Productive.Milliseconds(),
		IdleMS:       e.Idle.Milliseconds(),
		ActivityPct:  e.ActivityPct(),
		Screenshots:  shots,
		System:       e.System,
	}
}

func toTimeEntryResponses(es []*models.TimeEntry) []*timeEntryResponse {
	out := make([]*timeEntryResponse, 0, len(es))
	for _, e := range es {
		out = append(out, toTimeEntryResponse(e))
	}
	return out
}

type screenshotLinkResponse struct {
	Event   string    `json:"event"`
	Key     string    `json:"key"`
	TakenAt time.Time `json:"taken_at"`
	URL     string    `json:"url"`
}

func toScreenshotLinkResponses(links []services.ScreenshotLink) []screenshotLinkResponse {
	out := make([]screenshotLinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, screenshotLinkResponse{
			Event:   l.Event,
			Key:     l.Key,
			TakenAt: l.TakenAt,
			URL:     l.URL,
		})
	}
	return out
}
