package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/handler"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/service"
)

type mockStudentService struct {
	registerResp dto.StudentResponse
	registerErr  error
	approveResp  dto.StudentResponse
	approveErr   error
	loginResp    dto.StudentLoginResponse
	loginErr     error
	lastApproved uint
	lastApprove  dto.StudentApproveRequest
}

func (m *mockStudentService) Register(_ context.Context, _ dto.StudentCreateRequest) (dto.StudentResponse, error) {
	return m.registerResp, m.registerErr
}

func (m *mockStudentService) Approve(_ context.Context, id uint, req dto.StudentApproveRequest) (dto.StudentResponse, error) {
	m.lastApproved = id
	m.lastApprove = req
	return m.approveResp, m.approveErr
}

func (m *mockStudentService) Login(_ context.Context, _ dto.StudentLoginRequest) (dto.StudentLoginResponse, error) {
	return m.loginResp, m.loginErr
}

func (m *mockStudentService) List(_ context.Context, _, _ int) (dto.StudentListResponse, error) {
	return dto.StudentListResponse{}, nil
}

func (m *mockStudentService) Get(_ context.Context, _ uint) (dto.StudentResponse, error) {
	return dto.StudentResponse{}, service.ErrStudentNotFound
}

func (m *mockStudentService) GetByStudentID(_ context.Context, _ string) (dto.StudentResponse, error) {
	return dto.StudentResponse{}, service.ErrStudentNotFound
}

func (m *mockStudentService) Update(_ context.Context, _ uint, _ dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	return dto.StudentResponse{}, nil
}

func (m *mockStudentService) Delete(_ context.Context, _ uint) error {
	return nil
}

func newStudentTestApp(svc service.StudentService) *fiber.App {
	app := fiber.New()
	h := handler.NewStudentHandler(svc, zerolog.New(io.Discard))
	group := app.Group("/api/v1/students")
	h.RegisterPublic(group)
	h.RegisterProtected(group)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

func TestStudentHandlerCreateReturns201(t *testing.T) {
	svc := &mockStudentService{registerResp: dto.StudentResponse{ID: 1, StudentID: "260000001", Status: models.StudentStatusPending}}
	app := newStudentTestApp(svc)

	resp := postJSON(t, app, "/api/v1/students/create", map[string]interface{}{"firstName": "Ada"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                `json:"success"`
		Data    dto.StudentResponse `json:"data"`
		Message string              `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "260000001", body.Data.StudentID)
}

func TestStudentHandlerCreateConflict(t *testing.T) {
	svc := &mockStudentService{registerErr: service.ErrStudentEmailTaken}
	app := newStudentTestApp(svc)

	resp := postJSON(t, app, "/api/v1/students/create", map[string]interface{}{"firstName": "Ada"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestStudentHandlerApproveReturns202(t *testing.T) {
	svc := &mockStudentService{approveResp: dto.StudentResponse{ID: 7, Status: models.StudentStatusApproved}}
	app := newStudentTestApp(svc)

	body, _ := json.Marshal(map[string]interface{}{"reissueCredential": true})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/students/approve/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	require.Equal(t, uint(7), svc.lastApproved)
	require.True(t, svc.lastApprove.ReissueCredential)
}

func TestStudentHandlerApproveConflictOnRepeat(t *testing.T) {
	svc := &mockStudentService{approveErr: service.ErrStudentAlreadyApproved}
	app := newStudentTestApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/students/approve/7", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestStudentHandlerApproveInvalidID(t *testing.T) {
	app := newStudentTestApp(&mockStudentService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/students/approve/abc", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentHandlerLoginUnauthorized(t *testing.T) {
	svc := &mockStudentService{loginErr: service.ErrInvalidCredentials}
	app := newStudentTestApp(svc)

	resp := postJSON(t, app, "/api/v1/students/login", map[string]string{"studentId": "260000001", "password": "bad"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "invalid student id or password", body.Message)
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	app := newStudentTestApp(&mockStudentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
