package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldscope/fieldscope-go/pkg/audit"
	"github.com/fieldscope/fieldscope-go/pkg/envelope"
	"github.com/fieldscope/fieldscope-go/pkg/plan"
)

// maxPlanBytes caps the request body size for check submissions.
const maxPlanBytes = 1 << 20

// ChecksAPI handles coverage check endpoints.
type ChecksAPI struct {
	store  *Store
	logger audit.Logger
}

// NewChecksAPI creates a new checks API handler. Pass a NoopLogger to
// disable auditing.
func NewChecksAPI(store *Store, logger audit.Logger) *ChecksAPI {
	if logger == nil {
		logger = audit.NoopLogger{}
	}
	return &ChecksAPI{
		store:  store,
		logger: logger,
	}
}

// HandleChecks handles GET and POST /api/v1/checks.
func (c *ChecksAPI) HandleChecks(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		c.handleListChecks(w, req)
	case http.MethodPost:
		c.handleCreateCheck(w, req)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCheckByID handles GET /api/v1/checks/:id.
func (c *ChecksAPI) HandleCheckByID(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(req.URL.Path, "/api/v1/checks/")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "Check ID is required", "")
		return
	}

	check, err := c.store.GetCheck(id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to get check", err.Error())
		return
	}
	if check == nil {
		writeJSONError(w, http.StatusNotFound, "Check not found", id)
		return
	}

	writeJSONResponse(w, http.StatusOK, check)
}

// handleListChecks handles GET /api/v1/checks.
func (c *ChecksAPI) handleListChecks(w http.ResponseWriter, req *http.Request) {
	checks, err := c.store.ListChecks(100, 0)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list checks", err.Error())
		return
	}

	resp := CheckListResponse{
		Checks: checks,
		Total:  len(checks),
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// handleCreateCheck handles POST /api/v1/checks. The request body is a plan
// document (JSON is a YAML subset, so the plan loader parses it directly).
func (c *ChecksAPI) handleCreateCheck(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxPlanBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to read request body", err.Error())
		return
	}

	start := time.Now()

	p, err := plan.ParsePlan(body)
	if err != nil {
		c.logger.Log(audit.Event{
			Timestamp: time.Now().UTC(),
			CheckID:   uuid.NewString(),
			Outcome:   audit.OutcomeInvalid,
			Error:     err.Error(),
		})
		writeJSONError(w, http.StatusBadRequest, "Invalid plan", err.Error())
		return
	}

	report, err := envelope.Evaluate(p.Requirement, p.Devices)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid plan", err.Error())
		return
	}

	check := newCheck(p, report, time.Since(start))

	if err := c.store.CreateCheck(check); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to store check", err.Error())
		return
	}

	c.logger.Log(newAuditEvent(check, report))

	writeJSONResponse(w, http.StatusCreated, check)
}

func newCheck(p *plan.Plan, report *envelope.Report, elapsed time.Duration) *Check {
	check := &Check{
		ID:           uuid.NewString(),
		PlanName:     p.Name,
		Covered:      report.Covered,
		DeviceCount:  len(p.Devices),
		SegmentCount: len(report.Segments),
		DurationUS:   elapsed.Microseconds(),
		CreatedAt:    time.Now().UTC(),
	}
	for _, seg := range report.Segments {
		check.Segments = append(check.Segments, Segment{
			LightLo:       seg.Light.Lo,
			LightHi:       seg.Light.Hi,
			ActiveDevices: seg.ActiveDevices,
			Covered:       seg.Covered,
		})
	}
	return check
}

func newAuditEvent(check *Check, report *envelope.Report) audit.Event {
	outcome := audit.OutcomeUncovered
	if check.Covered {
		outcome = audit.OutcomeCovered
	}

	event := audit.Event{
		Timestamp:    check.CreatedAt,
		CheckID:      check.ID,
		PlanName:     check.PlanName,
		Outcome:      outcome,
		DeviceCount:  check.DeviceCount,
		SegmentCount: check.SegmentCount,
		DurationUS:   check.DurationUS,
	}
	for _, seg := range report.FailedSegments() {
		event.FailedBands = append(event.FailedBands, audit.Band{Lo: seg.Light.Lo, Hi: seg.Light.Hi})
	}
	return event
}

// writeJSONResponse writes a JSON response with the given status code.
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, message, details string) {
	resp := ErrorResponse{
		Error:   message,
		Details: details,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
