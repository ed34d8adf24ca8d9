package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/service"
	"github.com/MKhiriev/task-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- service fakes ----

type mockSessionService struct {
	issueFn     func(ctx context.Context, user models.User) (string, error)
	revokeFn    func(ctx context.Context, user models.User, token string) error
	revokeAllFn func(ctx context.Context, user models.User) error
	resolveFn   func(ctx context.Context, token string) (models.User, string, error)
}

func (m *mockSessionService) Issue(ctx context.Context, user models.User) (string, error) {
	return m.issueFn(ctx, user)
}

func (m *mockSessionService) Revoke(ctx context.Context, user models.User, token string) error {
	return m.revokeFn(ctx, user, token)
}

func (m *mockSessionService) RevokeAll(ctx context.Context, user models.User) error {
	return m.revokeAllFn(ctx, user)
}

func (m *mockSessionService) Resolve(ctx context.Context, token string) (models.User, string, error) {
	return m.resolveFn(ctx, token)
}

type mockUserService struct {
	registerFn func(ctx context.Context, user models.User) (models.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (models.User, string, error)
	updateFn   func(ctx context.Context, user models.User, payload service.Payload) (models.User, error)
	deleteFn   func(ctx context.Context, user models.User) (models.User, error)
}

func (m *mockUserService) Register(ctx context.Context, user models.User) (models.User, string, error) {
	return m.registerFn(ctx, user)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockUserService) Update(ctx context.Context, user models.User, payload service.Payload) (models.User, error) {
	return m.updateFn(ctx, user, payload)
}

func (m *mockUserService) Delete(ctx context.Context, user models.User) (models.User, error) {
	return m.deleteFn(ctx, user)
}

type mockAvatarService struct {
	setFn   func(ctx context.Context, userID, filename string, data []byte) error
	clearFn func(ctx context.Context, userID string) error
	getFn   func(ctx context.Context, userID string) ([]byte, error)
}

func (m *mockAvatarService) Set(ctx context.Context, userID, filename string, data []byte) error {
	return m.setFn(ctx, userID, filename, data)
}

func (m *mockAvatarService) Clear(ctx context.Context, userID string) error {
	return m.clearFn(ctx, userID)
}

func (m *mockAvatarService) Get(ctx context.Context, userID string) ([]byte, error) {
	return m.getFn(ctx, userID)
}

type mockTaskService struct {
	createFn func(ctx context.Context, owner string, req models.CreateTaskRequest) (models.Task, error)
	getFn    func(ctx context.Context, owner, taskID string) (models.Task, error)
	listFn   func(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	updateFn func(ctx context.Context, owner, taskID string, payload service.Payload) (models.Task, error)
	deleteFn func(ctx context.Context, owner, taskID string) (models.Task, error)
}

func (m *mockTaskService) Create(ctx context.Context, owner string, req models.CreateTaskRequest) (models.Task, error) {
	return m.createFn(ctx, owner, req)
}

func (m *mockTaskService) Get(ctx context.Context, owner, taskID string) (models.Task, error) {
	return m.getFn(ctx, owner, taskID)
}

func (m *mockTaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return m.listFn(ctx, filter)
}

func (m *mockTaskService) Update(ctx context.Context, owner, taskID string, payload service.Payload) (models.Task, error) {
	return m.updateFn(ctx, owner, taskID, payload)
}

func (m *mockTaskService) Delete(ctx context.Context, owner, taskID string) (models.Task, error) {
	return m.deleteFn(ctx, owner, taskID)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

// ---- helpers ----

const testToken = "good-token"

var testUser = models.User{ID: "user-1", Name: "Arryan", Email: "arryan@example.com", Age: 20}

// acceptingSessions resolves testToken to testUser and rejects everything
// else.
func acceptingSessions() *mockSessionService {
	return &mockSessionService{
		resolveFn: func(_ context.Context, token string) (models.User, string, error) {
			if token != testToken {
				return models.User{}, "", service.ErrUnauthorized
			}
			return testUser, token, nil
		},
	}
}

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		Avatar: config.Avatar{MaxBytes: config.DefaultAvatarMaxBytes},
	}
}

// newRouter builds the full router over services. Nil services are
// replaced by fakes that fail the test when called.
func newRouter(t *testing.T, services *service.Services) http.Handler {
	t.Helper()
	if services.SessionService == nil {
		services.SessionService = acceptingSessions()
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(services, testConfig(), logger.Nop()).Init()
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp.Error
}

// ---- constructor ----

func TestNewHandler(t *testing.T) {
	services := &service.Services{AppInfoService: &mockAppInfoService{version: "1.0.0"}}
	cfg := &config.StructuredConfig{
		Server: config.Server{AllowedOrigins: []string{"https://example.com"}},
		Avatar: config.Avatar{MaxBytes: 42},
	}

	h := NewHandler(services, cfg, logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, services, h.services)
	assert.Equal(t, int64(42), h.avatarMaxBytes)
	assert.Equal(t, []string{"https://example.com"}, h.cfg.AllowedOrigins)
}

func TestInit_Version(t *testing.T) {
	router := newRouter(t, &service.Services{AppInfoService: &mockAppInfoService{version: "1.2.3"}})

	rr := doRequest(t, router, http.MethodGet, "/version", nil, false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_UnknownRouteAndMethod(t *testing.T) {
	router := newRouter(t, &service.Services{})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/nope"},
		{name: "unregistered method on static route", method: http.MethodPut, path: "/users/me"},
		{name: "unregistered method on version", method: http.MethodPost, path: "/version"},
		{name: "unregistered method on param route", method: http.MethodPut, path: "/tasks/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, tt.method, tt.path, nil, true)
			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, ErrRouteNotFound.Error(), errorMessage(t, rr))
		})
	}
}

func TestInit_GatedRoutesRequireToken(t *testing.T) {
	router := newRouter(t, &service.Services{})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/users/logout"},
		{http.MethodPost, "/users/logoutAll"},
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users/me"},
		{http.MethodDelete, "/users/me"},
		{http.MethodPost, "/users/me/avatar"},
		{http.MethodDelete, "/users/me/avatar"},
		{http.MethodPost, "/tasks"},
		{http.MethodGet, "/tasks"},
		{http.MethodGet, "/tasks/abc"},
		{http.MethodPatch, "/tasks/abc"},
		{http.MethodDelete, "/tasks/abc"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rr := doRequest(t, router, route.method, route.path, nil, false)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "please authenticate", errorMessage(t, rr))
		})
	}
}

func TestInit_CORS(t *testing.T) {
	services := &service.Services{SessionService: acceptingSessions(), AppInfoService: &mockAppInfoService{version: "v"}}
	cfg := testConfig()
	cfg.Server.AllowedOrigins = []string{"https://app.example.com"}
	router := NewHandler(services, cfg, logger.Nop()).Init()

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestInit_RecoversFromPanic(t *testing.T) {
	router := newRouter(t, &service.Services{
		TaskService: &mockTaskService{
			listFn: func(context.Context, models.TaskFilter) ([]models.Task, error) {
				panic("boom")
			},
		},
	})

	rr := doRequest(t, router, http.MethodGet, "/tasks", nil, true)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
