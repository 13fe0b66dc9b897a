package inspections

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInspectionApp(t *testing.T) (*fiber.App, *inspectionFixture) {
	f := setupInspectionTest(t)
	h := &Handlers{Service: f.service, Validate: validator.New()}

	app := fiber.New()
	app.Post("/api/v1/inspections/create-inspection", h.CreateInspection)
	app.Get("/api/v1/inspections/get-all-inspections", h.GetAllInspections)
	app.Get("/api/v1/inspections/lookup/:assignment_id", h.Lookup)
	app.Post("/api/v1/inspections/sweep-expired", h.SweepExpired)
	return app, f
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateInspection_Created(t *testing.T) {
	app, f := setupInspectionApp(t)

	resp := postJSON(t, app, "/api/v1/inspections/create-inspection", map[string]interface{}{
		"assignment_id": f.assignment.AssignmentID.String(),
		"audit_type_id": f.auditType.AuditTypeID.String(),
		"auditor_id":    f.auditor.AuditorID.String(),
		"inspected_on":  "2024-01-02",
		"units":         2,
		"result":        "OK",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCreateInspection_ValidationFailed(t *testing.T) {
	app, f := setupInspectionApp(t)

	// Missing auditor and malformed date.
	resp := postJSON(t, app, "/api/v1/inspections/create-inspection", map[string]interface{}{
		"assignment_id": f.assignment.AssignmentID.String(),
		"audit_type_id": f.auditType.AuditTypeID.String(),
		"inspected_on":  "02/01/2024",
		"units":         2,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateInspection_DateOutOfRange(t *testing.T) {
	app, f := setupInspectionApp(t)

	resp := postJSON(t, app, "/api/v1/inspections/create-inspection", map[string]interface{}{
		"assignment_id": f.assignment.AssignmentID.String(),
		"audit_type_id": f.auditType.AuditTypeID.String(),
		"auditor_id":    f.auditor.AuditorID.String(),
		"inspected_on":  "2023-12-31",
		"units":         2,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateInspection_StalePeriodConflict(t *testing.T) {
	app, f := setupInspectionApp(t)

	resp := postJSON(t, app, "/api/v1/inspections/create-inspection", map[string]interface{}{
		"assignment_id": f.assignment.AssignmentID.String(),
		"period_id":     uuid.New().String(),
		"audit_type_id": f.auditType.AuditTypeID.String(),
		"auditor_id":    f.auditor.AuditorID.String(),
		"inspected_on":  "2024-01-02",
		"units":         2,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCreateInspection_UnknownAssignment(t *testing.T) {
	app, f := setupInspectionApp(t)

	resp := postJSON(t, app, "/api/v1/inspections/create-inspection", map[string]interface{}{
		"assignment_id": uuid.New().String(),
		"audit_type_id": f.auditType.AuditTypeID.String(),
		"auditor_id":    f.auditor.AuditorID.String(),
		"inspected_on":  "2024-01-02",
		"units":         2,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLookup_NotFound(t *testing.T) {
	app, _ := setupInspectionApp(t)

	req := httptest.NewRequest("GET", "/api/v1/inspections/lookup/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSweepExpired_DateOverride(t *testing.T) {
	app, _ := setupInspectionApp(t)

	req := httptest.NewRequest("POST", "/api/v1/inspections/sweep-expired?date=2024-01-15", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed struct {
		Data struct {
			Expired int `json:"expired"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal(t, 1, parsed.Data.Expired)
}
