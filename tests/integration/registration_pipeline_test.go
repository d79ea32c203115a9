package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/config"
	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/handler"
	"github.com/edupath-ng/edupath-go-api/internal/mailer"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
	"github.com/edupath-ng/edupath-go-api/internal/router"
	"github.com/edupath-ng/edupath-go-api/internal/service"
)

type capturingMailer struct {
	mu       sync.Mutex
	messages []mailer.Message
}

func (m *capturingMailer) Send(_ context.Context, msg mailer.Message) mailer.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return mailer.Result{Success: true, Message: "captured"}
}

func (m *capturingMailer) byTemplate(template string) []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []mailer.Message
	for _, msg := range m.messages {
		if msg.Template == template {
			out = append(out, msg)
		}
	}
	return out
}

func setupAPI(t *testing.T) (*fiber.App, *capturingMailer, config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Admin{}, &models.Blog{}, &models.Testimonial{}, &models.SuccessStory{}, &models.MediaAsset{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)
	mail := &capturingMailer{}

	cfg := config.Config{
		AppName:          "EduPath API Test",
		AppEnv:           "test",
		AdminJWTSecret:   "admin-secret",
		StudentJWTSecret: "student-secret",
		TokenTTL:         time.Hour,
		LoginRateLimit:   100,
		LoginRateWindow:  time.Minute,
	}

	adminTokens := service.NewTokenIssuer(cfg.AdminJWTSecret, service.TokenAudienceAdmin, cfg.TokenTTL)
	studentTokens := service.NewTokenIssuer(cfg.StudentJWTSecret, service.TokenAudienceStudent, cfg.TokenTTL)

	studentService := service.NewStudentService(repository.NewStudentRepository(db), validate, mail, studentTokens, logger)
	adminService := service.NewAdminService(repository.NewAdminRepository(db), validate, mail, adminTokens, logger)
	testimonialService := service.NewTestimonialService(repository.NewTestimonialRepository(db), validate, logger)

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:     handler.NewStudentHandler(studentService, logger),
		AdminHandler:       handler.NewAdminHandler(adminService, logger),
		TestimonialHandler: handler.NewTestimonialHandler(testimonialService, logger),
	})

	return app, mail, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response, data interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(raw, &envelope))
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
}

func adminToken(t *testing.T, cfg config.Config) string {
	t.Helper()
	issuer := service.NewTokenIssuer(cfg.AdminJWTSecret, service.TokenAudienceAdmin, cfg.TokenTTL)
	token, err := issuer.Issue(1, "admin")
	require.NoError(t, err)
	return token
}

func studentPayload() map[string]interface{} {
	return map[string]interface{}{
		"firstName":            "Ada",
		"lastName":             "Obi",
		"sex":                  "female",
		"desiredCourse":        "Medicine",
		"email":                "ada@example.com",
		"preferredInstitution": "University of Lagos",
		"mobileNumber":         "08030000000",
		"subjectCombination":   []string{"English", "Biology", "Chemistry", "Physics"},
		"parentsPhoneNumber":   "08030000001",
		"desiredUTMEScore":     310,
		"doneUTMEBefore":       false,
	}
}

// The full pipeline: an applicant registers, cannot log in while pending, an
// admin approves the record, and the emailed credential opens a session.
func TestRegistrationApprovalLoginPipeline(t *testing.T) {
	app, mail, cfg := setupAPI(t)
	token := adminToken(t, cfg)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/students/create", "", studentPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.StudentResponse
	decodeEnvelope(t, resp, &created)
	require.Regexp(t, regexp.MustCompile(`^\d{9}$`), created.StudentID)
	require.Equal(t, models.StudentStatusPending, created.Status)
	require.Len(t, mail.byTemplate(mailer.TemplateRegistration), 1)

	// Pending students cannot log in.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/students/login", "", map[string]string{
		"studentId": created.StudentID, "password": "anything",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Approval needs an admin session.
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/students/approve/1", "", map[string]interface{}{})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/api/v1/students/approve/1", token, map[string]interface{}{})
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var approved dto.StudentResponse
	decodeEnvelope(t, resp, &approved)
	require.Equal(t, models.StudentStatusApproved, approved.Status)

	approvals := mail.byTemplate(mailer.TemplateStudentApprove)
	require.Len(t, approvals, 1)
	password := approvals[0].Data["Password"]
	require.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{6}$`), password)

	// Re-approval without the reissue flag is rejected and the credential
	// keeps working.
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/students/approve/1", token, map[string]interface{}{})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/students/login", "", map[string]string{
		"studentId": created.StudentID, "password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var session dto.StudentLoginResponse
	decodeEnvelope(t, resp, &session)
	require.NotEmpty(t, session.AccessToken)
	require.Equal(t, created.StudentID, session.Student.StudentID)

	// Wrong password and unknown identifier fail identically.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/students/login", "", map[string]string{
		"studentId": created.StudentID, "password": "wrong1",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/students/login", "", map[string]string{
		"studentId": "000000000", "password": password,
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	app, _, _ := setupAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/students/create", "", studentPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/students/create", "", studentPayload())
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestExternalTestimonialModeration(t *testing.T) {
	app, _, cfg := setupAPI(t)
	token := adminToken(t, cfg)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/testimonials/external", "", map[string]string{
		"firstName": "Tunde", "lastName": "Alabi", "content": "Great coaching.",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var submitted models.Testimonial
	decodeEnvelope(t, resp, &submitted)
	require.False(t, submitted.IsApproved)

	// Invisible until approved.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/testimonials", "", nil)
	var listed []models.Testimonial
	decodeEnvelope(t, resp, &listed)
	require.Empty(t, listed)

	resp = doJSON(t, app, http.MethodPatch, "/api/v1/testimonials/approve/1", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/testimonials", "", nil)
	decodeEnvelope(t, resp, &listed)
	require.Len(t, listed, 1)
}

func TestAdminAccountLifecycle(t *testing.T) {
	app, mail, cfg := setupAPI(t)
	token := adminToken(t, cfg)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/create", token, map[string]string{
		"name": "Chidi Okar", "username": "chidi", "email": "chidi@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	welcomes := mail.byTemplate(mailer.TemplateAdminWelcome)
	require.Len(t, welcomes, 1)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"username": "chidi", "password": welcomes[0].Data["Password"],
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var session dto.AdminLoginResponse
	decodeEnvelope(t, resp, &session)
	require.NotEmpty(t, session.AccessToken)
	require.Equal(t, "chidi", session.Admin.Username)
}
