package assignments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"certflow-backend/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssignmentApp(t *testing.T) (*fiber.App, *Service, *gorm.DB) {
	service, db := setupAssignmentTest(t)
	h := &Handlers{Service: service, Validate: validator.New()}

	app := fiber.New()
	app.Post("/api/v1/assignments/create-assignment", h.CreateAssignment)
	app.Get("/api/v1/assignments/get-assignment/:assignment_id", h.GetAssignment)
	app.Get("/api/v1/assignments/get-active-period/:assignment_id", h.GetActivePeriod)
	return app, service, db
}

func postAssignment(t *testing.T, app *fiber.App, payload map[string]interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/v1/assignments/create-assignment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateAssignmentHandler_Created(t *testing.T) {
	app, _, db := setupAssignmentApp(t)
	operator, certification := seedOperatorAndCertification(t, db)

	resp := postAssignment(t, app, map[string]interface{}{
		"operator_id":      operator.OperatorID.String(),
		"certification_id": certification.CertificationID.String(),
		"assigned_on":      "2024-01-01",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCreateAssignmentHandler_DuplicateConflict(t *testing.T) {
	app, _, db := setupAssignmentApp(t)
	operator, certification := seedOperatorAndCertification(t, db)

	payload := map[string]interface{}{
		"operator_id":      operator.OperatorID.String(),
		"certification_id": certification.CertificationID.String(),
		"assigned_on":      "2024-01-01",
	}
	resp := postAssignment(t, app, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postAssignment(t, app, payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCreateAssignmentHandler_BadDate(t *testing.T) {
	app, _, db := setupAssignmentApp(t)
	operator, certification := seedOperatorAndCertification(t, db)

	resp := postAssignment(t, app, map[string]interface{}{
		"operator_id":      operator.OperatorID.String(),
		"certification_id": certification.CertificationID.String(),
		"assigned_on":      "01/01/2024",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateAssignmentHandler_UnknownCertification(t *testing.T) {
	app, _, db := setupAssignmentApp(t)
	operator, _ := seedOperatorAndCertification(t, db)

	resp := postAssignment(t, app, map[string]interface{}{
		"operator_id":      operator.OperatorID.String(),
		"certification_id": uuid.New().String(),
		"assigned_on":      "2024-01-01",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetActivePeriodHandler_NotFoundWhenLapsed(t *testing.T) {
	app, service, db := setupAssignmentApp(t)
	operator, certification := seedOperatorAndCertification(t, db)

	resp := postAssignment(t, app, map[string]interface{}{
		"operator_id":      operator.OperatorID.String(),
		"certification_id": certification.CertificationID.String(),
		"assigned_on":      "2024-01-01",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var parsed struct {
		Data struct {
			Assignment struct {
				AssignmentID string `json:"assignment_id"`
			} `json:"assignment"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))

	getResp, err := app.Test(httptest.NewRequest("GET", "/api/v1/assignments/get-active-period/"+parsed.Data.Assignment.AssignmentID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, getResp.StatusCode)

	require.NoError(t, service.DB.Model(&domain.ValidationPeriod{}).
		Where("assignment_id = ?", parsed.Data.Assignment.AssignmentID).
		Update("is_active", false).Error)

	getResp, err = app.Test(httptest.NewRequest("GET", "/api/v1/assignments/get-active-period/"+parsed.Data.Assignment.AssignmentID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, getResp.StatusCode)
}
