package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mpavlovs/punchclock/internal/logging"
	"github.com/mpavlovs/punchclock/internal/server/models"
	"github.com/mpavlovs/punchclock/internal/server/repositories/repomanager"
	"github.com/mpavlovs/punchclock/internal/server/services"
)

// ---- fakes ----

type stubScreen struct{ err error }

func (s *stubScreen) CaptureScreen(context.Context) ([]byte, error) {
	return []byte("png"), s.err
}

type stubProber struct {
	info *models.SystemInfo
	err  error
}

func (s *stubProber) ProbeSystem(context.Context) (*models.SystemInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

type stubStore struct{}

func (s *stubStore) Save(ctx context.Context, key string, data []byte) error { return nil }
func (s *stubStore) URL(ctx context.Context, key string) (string, error) {
	return "blob://" + key, nil
}

// ---- helpers ----

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type entryDTO struct {
	ID           string `json:"id"`
	ContractorID string `json:"contractor_id"`
	Open         bool   `json:"open"`
	DurationMS   int64  `json:"duration_ms"`
	ProductiveMS int64  `json:"productive_ms"`
	IdleMS       int64  `json:"idle_ms"`
	Screenshots  []struct {
		Event string `json:"event"`
		Key   string `json:"key"`
	} `json:"screenshots"`
}

type contractorDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

func newTestApp(t *testing.T, prober *stubProber) *fiber.App {
	t.Helper()

	m := repomanager.NewInMemoryRepositoryManager()
	logger := logging.NewNopLogger()

	if prober == nil {
		prober = &stubProber{info: &models.SystemInfo{Hostname: "host", OS: "linux 6.8.0"}}
	}

	cs := services.NewContractorService(m, logger)
	ks := services.NewClockService(m, &stubScreen{}, prober, &stubStore{},
		services.FixedShareSplit(0.8), 200*time.Millisecond, logger)
	rs := services.NewReportService(m, time.UTC)

	return NewServer("127.0.0.1:0", cs, ks, rs, "", logger).app()
}

func doReq(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decoding body: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func registerContractor(t *testing.T, app *fiber.App, name, email string) contractorDTO {
	t.Helper()

	status, env := doReq(t, app, http.MethodPost, "/api/contractors", map[string]string{
		"name": name, "email": email,
	})
	if status != http.StatusCreated {
		t.Fatalf("register returned %d (%s)", status, env.Message)
	}

	var c contractorDTO
	if err := json.Unmarshal(env.Data, &c); err != nil {
		t.Fatalf("decoding contractor: %v", err)
	}
	return c
}

// ---- tests ----

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"ok"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Contractor Time Tracker") {
		t.Fatal("dashboard page missing title")
	}
}

func TestRegisterContractor(t *testing.T) {
	app := newTestApp(t, nil)

	c := registerContractor(t, app, "Alice", "alice@example.com")
	if c.ID == "" || c.Name != "Alice" || !c.Active {
		t.Fatalf("unexpected contractor: %+v", c)
	}

	// Invalid email fails the request DTO validation.
	status, env := doReq(t, app, http.MethodPost, "/api/contractors", map[string]string{
		"name": "Bob", "email": "not-an-email",
	})
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("want 400, got %d (%s)", status, env.Message)
	}

	// Duplicate email is rejected by the service.
	status, _ = doReq(t, app, http.MethodPost, "/api/contractors", map[string]string{
		"name": "Alice II", "email": "alice@example.com",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate email: want 400, got %d", status)
	}
}

func TestRegisterContractor_MalformedBody(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/contractors", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST /api/contractors: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}

func TestListContractors_ActiveFilter(t *testing.T) {
	app := newTestApp(t, nil)

	registerContractor(t, app, "Alice", "alice@example.com")
	bob := registerContractor(t, app, "Bob", "bob@example.com")

	status, _ := doReq(t, app, http.MethodPost, "/api/contractors/"+bob.ID+"/deactivate", nil)
	if status != http.StatusOK {
		t.Fatalf("deactivate returned %d", status)
	}

	status, env := doReq(t, app, http.MethodGet, "/api/contractors?active=true", nil)
	if status != http.StatusOK {
		t.Fatalf("list returned %d", status)
	}
	var list []contractorDTO
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Alice" {
		t.Fatalf("unexpected active list: %+v", list)
	}

	status, _ = doReq(t, app, http.MethodGet, "/api/contractors?active=banana", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("bad filter: want 400, got %d", status)
	}
}

func TestGetContractor_NotFound(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := doReq(t, app, http.MethodGet, "/api/contractors/missing", nil)
	if status != http.StatusNotFound || env.Success {
		t.Fatalf("want 404, got %d", status)
	}
}

func TestClockInOut_Flow(t *testing.T) {
	app := newTestApp(t, nil)
	c := registerContractor(t, app, "Alice", "alice@example.com")

	status, env := doReq(t, app, http.MethodPost, "/api/clock-in", map[string]string{
		"contractor_id": c.ID,
	})
	if status != http.StatusCreated {
		t.Fatalf("clock-in returned %d (%s)", status, env.Message)
	}
	var opened entryDTO
	if err := json.Unmarshal(env.Data, &opened); err != nil {
		t.Fatalf("decoding entry: %v", err)
	}
	if !opened.Open || opened.ContractorID != c.ID {
		t.Fatalf("unexpected opened entry: %+v", opened)
	}
	if len(opened.Screenshots) != 1 || opened.Screenshots[0].Event != models.EventClockIn {
		t.Fatalf("clock-in screenshot missing: %+v", opened.Screenshots)
	}

	// Second clock-in conflicts.
	status, env = doReq(t, app, http.MethodPost, "/api/clock-in", map[string]string{
		"contractor_id": c.ID,
	})
	if status != http.StatusConflict {
		t.Fatalf("second clock-in: want 409, got %d", status)
	}
	if !strings.Contains(env.Message, opened.ID) {
		t.Fatalf("conflict message should name the open entry, got %q", env.Message)
	}

	status, env = doReq(t, app, http.MethodPost, "/api/clock-out", map[string]string{
		"contractor_id": c.ID,
	})
	if status != http.StatusOK {
		t.Fatalf("clock-out returned %d (%s)", status, env.Message)
	}
	var closed entryDTO
	if err := json.Unmarshal(env.Data, &closed); err != nil {
		t.Fatalf("decoding entry: %v", err)
	}
	if closed.Open || closed.ID != opened.ID {
		t.Fatalf("unexpected closed entry: %+v", closed)
	}
	if closed.ProductiveMS+closed.IdleMS != closed.DurationMS {
		t.Fatalf("split does not add up: %d + %d != %d",
			closed.ProductiveMS, closed.IdleMS, closed.DurationMS)
	}

	// Clock-out without an open session conflicts.
	status, _ = doReq(t, app, http.MethodPost, "/api/clock-out", map[string]string{
		"contractor_id": c.ID,
	})
	if status != http.StatusConflict {
		t.Fatalf("second clock-out: want 409, got %d", status)
	}
}

func TestClockIn_MissingContractorID(t *testing.T) {
	app := newTestApp(t, nil)

	status, _ := doReq(t, app, http.MethodPost, "/api/clock-in", map[string]string{})
	if status != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", status)
	}
}

func TestActiveSession(t *testing.T) {
	app := newTestApp(t, nil)
	c := registerContractor(t, app, "Alice", "alice@example.com")

	status, env := doReq(t, app, http.MethodGet, "/api/contractors/"+c.ID+"/active-session", nil)
	if status != http.StatusOK {
		t.Fatalf("active-session returned %d", status)
	}
	if string(env.Data) != "null" {
		t.Fatalf("want null data, got %s", env.Data)
	}

	doReq(t, app, http.MethodPost, "/api/clock-in", map[string]string{"contractor_id": c.ID})

	status, env = doReq(t, app, http.MethodGet, "/api/contractors/"+c.ID+"/active-session", nil)
	if status != http.StatusOK {
		t.Fatalf("active-session returned %d", status)
	}
	var entry entryDTO
	if err := json.Unmarshal(env.Data, &entry); err != nil {
		t.Fatalf("decoding entry: %v", err)
	}
	if !entry.Open {
		t.Fatalf("expected open session, got %+v", entry)
	}
}

func TestRecentEntries(t *testing.T) {
	app := newTestApp(t, nil)
	c := registerContractor(t, app, "Alice", "alice@example.com")

	status, _ := doReq(t, app, http.MethodGet, "/api/time-entries", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("missing contractor_id: want 400, got %d", status)
	}

	doReq(t, app, http.MethodPost, "/api/clock-in", map[string]string{"contractor_id": c.ID})
	doReq(t, app, http.MethodPost, "/api/clock-out", map[string]string{"contractor_id": c.ID})

	status, env := doReq(t, app, http.MethodGet, "/api/time-entries?contractor_id="+c.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("time-entries returned %d", status)
	}
	var entries []entryDTO
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decoding entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
}

func TestEntryScreenshots(t *testing.T) {
	app := newTestApp(t, nil)
	c := registerContractor(t, app, "Alice", "alice@example.com")

	_, env := doReq(t, app, http.MethodPost, "/api/clock-in", map[string]string{"contractor_id": c.ID})
	var entry entryDTO
	if err := json.Unmarshal(env.Data, &entry); err != nil {
		t.Fatalf("decoding entry: %v", err)
	}

	status, env := doReq(t, app, http.MethodGet, "/api/time-entries/"+entry.ID+"/screenshots", nil)
	if status != http.StatusOK {
		t.Fatalf("screenshots returned %d (%s)", status, env.Message)
	}
	var links []struct {
		Event string `json:"event"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(env.Data, &links); err != nil {
		t.Fatalf("decoding links: %v", err)
	}
	if len(links) != 1 || !strings.HasPrefix(links[0].URL, "blob://") {
		t.Fatalf("unexpected links: %+v", links)
	}

	status, _ = doReq(t, app, http.MethodGet, "/api/time-entries/missing/screenshots", nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown entry: want 404, got %d", status)
	}
}

func TestAttendanceReport(t *testing.T) {
	app := newTestApp(t, nil)
	c := registerContractor(t, app, "Alice", "alice@example.com")

	status, _ := doReq(t, app, http.MethodGet, "/api/reports/attendance", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("missing params: want 400, got %d", status)
	}

	status, _ = doReq(t, app,
		http.MethodGet, "/api/reports/attendance?contractor_id="+c.ID+"&from=2025-06-10&to=2025-06-02", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("inverted range: want 400, got %d", status)
	}

	status, _ = doReq(t, app,
		http.MethodGet, "/api/reports/attendance?contractor_id=missing&from=2025-06-02&to=2025-06-02", nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown contractor: want 404, got %d", status)
	}

	status, env := doReq(t, app,
		http.MethodGet, "/api/reports/attendance?contractor_id="+c.ID+"&from=2025-06-02&to=2025-06-02", nil)
	if status != http.StatusOK {
		t.Fatalf("report returned %d", status)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatalf("decoding rows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("want empty report, got %d rows", len(rows))
	}
}

func TestSystemInfo(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := doReq(t, app, http.MethodGet, "/api/system-info", nil)
	if status != http.StatusOK {
		t.Fatalf("system-info returned %d", status)
	}
	var info models.SystemInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		t.Fatalf("decoding info: %v", err)
	}
	if info.Hostname != "host" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestSystemInfo_ProbeFailure(t *testing.T) {
	app := newTestApp(t, &stubProber{err: errors.New("sensors offline")})

	status, env := doReq(t, app, http.MethodGet, "/api/system-info", nil)
	if status != http.StatusServiceUnavailable || env.Success {
		t.Fatalf("want 503, got %d", status)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := doReq(t, app, http.MethodGet, "/api/nope", nil)
	if status != http.StatusNotFound || env.Success {
		t.Fatalf("want enveloped 404, got %d", status)
	}
}
