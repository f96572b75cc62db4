package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"farmdesk/config"
	"farmdesk/internal/dto"
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/service"
	"farmdesk/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	refreshToken     string
	logoutErr        error
	logoutJTI        string
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, token string) (*dto.TokenResponse, error) {
	m.refreshToken = token
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time, _ string) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock UserService ──

type mockUserService struct {
	listResult []dto.UserResponse
	listRole   string
	getResult  *dto.UserResponse
	err        error
}

func (m *mockUserService) List(_ context.Context, role string) ([]dto.UserResponse, error) {
	m.listRole = role
	return m.listResult, m.err
}
func (m *mockUserService) GetByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getResult, m.err
}

// ── Mock EntityService ──

type mockEntityService[T model.Record] struct {
	listResult *dto.ListResponse
	listReq    *dto.ListRequest
	getResult  T
	formResult *dto.FormResponse
	formID     string
	saveResult T
	values     form.Values
	confirmed  bool
	replaced   []T
	filters    query.Filters
	exportBuf  *bytes.Buffer
	exportName string
	err        error
}

func (m *mockEntityService[T]) Kind() model.Kind {
	var zero T
	return zero.Kind()
}
func (m *mockEntityService[T]) List(_ context.Context, req *dto.ListRequest) (*dto.ListResponse, error) {
	m.listReq = req
	return m.listResult, m.err
}
func (m *mockEntityService[T]) Get(_ context.Context, _ string) (T, error) {
	return m.getResult, m.err
}
func (m *mockEntityService[T]) FormFor(_ context.Context, id string) (*dto.FormResponse, error) {
	m.formID = id
	return m.formResult, m.err
}
func (m *mockEntityService[T]) Create(_ context.Context, v form.Values) (T, error) {
	m.values = v
	return m.saveResult, m.err
}
func (m *mockEntityService[T]) Update(_ context.Context, _ string, v form.Values) (T, error) {
	m.values = v
	return m.saveResult, m.err
}
func (m *mockEntityService[T]) Delete(_ context.Context, _ string, confirmed bool) error {
	m.confirmed = confirmed
	return m.err
}
func (m *mockEntityService[T]) Replace(_ context.Context, records []T) error {
	m.replaced = records
	return m.err
}
func (m *mockEntityService[T]) SetFilters(_ context.Context, partial query.Filters) (query.Filters, error) {
	m.filters = partial
	return partial, m.err
}
func (m *mockEntityService[T]) Export(_ context.Context, req *dto.ListRequest) (*bytes.Buffer, string, error) {
	m.listReq = req
	return m.exportBuf, m.exportName, m.err
}

// ── Mock StateService / CalendarService ──

type mockStateService struct {
	dashboard *dto.DashboardResponse
	integrity *dto.IntegrityResponse
}

func (m *mockStateService) Snapshot(_ context.Context) map[model.Kind]any {
	return map[model.Kind]any{model.KindField: []any{}}
}
func (m *mockStateService) Integrity(_ context.Context) *dto.IntegrityResponse { return m.integrity }
func (m *mockStateService) Dashboard(_ context.Context) *dto.DashboardResponse { return m.dashboard }

type mockCalendarService struct {
	body    string
	err     error
	filters query.Filters
}

func (m *mockCalendarService) CropCalendar(_ context.Context, filters query.Filters) (string, error) {
	m.filters = filters
	return m.body, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() (*gin.Engine, *gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	return r, c, w
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("token_jti", "test-jti")
	c.Set("token_exp", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "ana@farm.test",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	// 验证 Set-Cookie 头
	cookie := findCookie(w, "refresh_token")
	if cookie == nil {
		t.Fatal("expected refresh_token cookie to be set")
	}
	if cookie.Value != "test-refresh-token" {
		t.Errorf("expected cookie value test-refresh-token, got %s", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("expected refresh_token cookie to be HttpOnly")
	}
}

func TestAuthHandler_Login_RememberMeCookieTTL(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{RefreshToken: "r", RememberMe: true},
	}
	h := NewAuthHandler(mock, &config.AuthConfig{
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		Cookie:                  config.CookieConfig{SameSite: "Strict"},
	})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:      "ana@farm.test",
		Password:   "password123",
		RememberMe: true,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	cookie := findCookie(w, "refresh_token")
	if cookie == nil {
		t.Fatal("expected refresh_token cookie to be set")
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("expected 7d max-age, got %d", cookie.MaxAge)
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("expected SameSite=Strict, got %v", cookie.SameSite)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidEmail(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(map[string]string{
		"email":    "not-an-email",
		"password": "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "ana@farm.test",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != response.CodeBadCredentials {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	mock := &mockAuthService{
		refreshResult: &dto.TokenResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "old-refresh",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.refreshToken != "old-refresh" {
		t.Errorf("expected token old-refresh, got %s", mock.refreshToken)
	}
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	mock := &mockAuthService{
		refreshResult: &dto.TokenResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.refreshToken != "cookie-refresh" {
		t.Errorf("expected token cookie-refresh, got %s", mock.refreshToken)
	}
}

func TestAuthHandler_RefreshToken_Revoked(t *testing.T) {
	mock := &mockAuthService{refreshErr: service.ErrInvalidToken}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "revoked"})

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if c := findCookie(w, "refresh_token"); c == nil || c.MaxAge >= 0 {
		t.Error("expected refresh_token cookie to be cleared")
	}
}

func TestAuthHandler_GetCurrentUser_Success(t *testing.T) {
	mock := &mockAuthService{
		getCurrentResult: &dto.UserResponse{
			ID:   "test-user-id",
			Name: "Test User",
			Role: "admin",
		},
	}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.GetCurrentUser(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.GetCurrentUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, nil)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutJTI != "test-jti" {
		t.Errorf("expected jti test-jti, got %s", mock.logoutJTI)
	}
	// 验证 Cookie 被清除（max-age = -1）
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" && c.MaxAge >= 0 {
			t.Error("expected refresh_token cookie to be cleared")
		}
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_ListUsers_RoleFilter(t *testing.T) {
	mock := &mockUserService{listResult: []dto.UserResponse{{ID: "u-2", Role: "scientist"}}}
	h := NewUserHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/users?role=scientist", nil)

	r := gin.New()
	r.GET("/users", h.ListUsers)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.listRole != "scientist" {
		t.Errorf("expected role filter scientist, got %q", mock.listRole)
	}
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	mock := &mockUserService{err: service.ErrUserNotFound}
	h := NewUserHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/users/ghost", nil)

	r := gin.New()
	r.GET("/users/:id", h.GetUser)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EntityHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEntityHandler_List_ParsesSortAndFilters(t *testing.T) {
	mock := &mockEntityService[*model.Crop]{listResult: &dto.ListResponse{Kind: model.KindCrop}}
	h := NewEntityHandler[*model.Crop](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/crops?sort=name:desc&status=growing&field_id=f1", nil)

	r := gin.New()
	r.GET("/crops", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.listReq.Sort != "name:desc" {
		t.Errorf("expected sort name:desc, got %q", mock.listReq.Sort)
	}
	want := query.Filters{"status": "growing", "field_id": "f1"}
	if len(mock.listReq.Filters) != len(want) {
		t.Fatalf("expected filters %v, got %v", want, mock.listReq.Filters)
	}
	for k, v := range want {
		if mock.listReq.Filters[k] != v {
			t.Errorf("expected filter %s=%s, got %s", k, v, mock.listReq.Filters[k])
		}
	}
}

func TestEntityHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"Validation", &form.ValidationError{Fields: map[string]string{"name": form.ReasonRequired}}, 422, response.CodeValidationFailed},
		{"NotFound", service.ErrRecordNotFound, 404, response.CodeRecordNotFound},
		{"NotConfirmed", service.ErrDeleteNotConfirmed, 428, response.CodeConfirmRequired},
		{"UnknownFilter", fmt.Errorf("%w: colour", query.ErrUnknownFilter), 400, response.CodeUnknownFilter},
		{"UnknownSortKey", fmt.Errorf("%w: colour", query.ErrUnknownSortKey), 400, response.CodeUnknownSortKey},
		{"InvalidSort", fmt.Errorf("%w: x:y", query.ErrInvalidSort), 400, response.CodeUnknownSortKey},
		{"InvalidRecords", service.ErrInvalidRecords, 400, response.CodeBadParams},
		{"InternalError", errors.New("unknown"), 500, response.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockEntityService[*model.Field]{err: tt.err}
			h := NewEntityHandler[*model.Field](mock)

			_, _, w := setupGin()
			req := httptest.NewRequest("GET", "/fields", nil)

			r := gin.New()
			r.GET("/fields", h.List)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestEntityHandler_Create_JSON(t *testing.T) {
	mock := &mockEntityService[*model.Field]{saveResult: &model.Field{ID: "new-1", Name: "North 40"}}
	h := NewEntityHandler[*model.Field](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/fields", jsonBody(map[string]any{
		"name":      "North 40",
		"size":      40.5,
		"soil_type": "loam",
		"tags":      []string{"a", "b"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fields", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if got := mock.values.Get("size"); got != "40.5" {
		t.Errorf("expected size 40.5, got %q", got)
	}
	if got := mock.values.All("tags"); len(got) != 2 {
		t.Errorf("expected 2 tag values, got %v", got)
	}
}

func TestEntityHandler_Create_FormEncoded(t *testing.T) {
	mock := &mockEntityService[*model.Staff]{saveResult: &model.Staff{ID: "new-1"}}
	h := NewEntityHandler[*model.Staff](mock)

	_, _, w := setupGin()
	body := "name=Ana&role=manager&assigned_fields=f1&assigned_fields=f2"
	req := httptest.NewRequest("POST", "/staff", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	r := gin.New()
	r.POST("/staff", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if got := mock.values.All("assigned_fields"); len(got) != 2 || got[1] != "f2" {
		t.Errorf("expected assigned_fields [f1 f2], got %v", got)
	}
}

func TestEntityHandler_Create_BadJSON(t *testing.T) {
	mock := &mockEntityService[*model.Field]{}
	h := NewEntityHandler[*model.Field](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/fields", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fields", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if mock.values != nil {
		t.Error("service should not be called on bad input")
	}
}

func TestEntityHandler_Update_ValidationDetails(t *testing.T) {
	mock := &mockEntityService[*model.Field]{
		err: &form.ValidationError{Fields: map[string]string{"size": form.ReasonPositive}},
	}
	h := NewEntityHandler[*model.Field](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/fields/f1", jsonBody(map[string]any{"size": -1}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/fields/:id", h.Update)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	resp := parseResponse(w)
	details, ok := resp.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("expected details object, got %T", resp.Details)
	}
	if details["size"] != form.ReasonPositive {
		t.Errorf("expected size=%q, got %v", form.ReasonPositive, details["size"])
	}
}

func TestEntityHandler_Delete_ConfirmFlag(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"Confirmed", "/fields/f1?confirm=true", true},
		{"Missing", "/fields/f1", false},
		{"Other", "/fields/f1?confirm=yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockEntityService[*model.Field]{}
			h := NewEntityHandler[*model.Field](mock)

			_, _, w := setupGin()
			req := httptest.NewRequest("DELETE", tt.target, nil)

			r := gin.New()
			r.DELETE("/fields/:id", h.Delete)
			r.ServeHTTP(w, req)

			if mock.confirmed != tt.want {
				t.Errorf("expected confirmed=%v, got %v", tt.want, mock.confirmed)
			}
		})
	}
}

func TestEntityHandler_Replace_Success(t *testing.T) {
	mock := &mockEntityService[*model.Vehicle]{}
	h := NewEntityHandler[*model.Vehicle](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/vehicles", jsonBody([]model.Vehicle{
		{ID: "v1", Type: model.VehicleTractor, Status: model.AssetAvailable},
		{ID: "v2", Type: model.VehicleTruck, Status: model.AssetInUse},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/vehicles", h.Replace)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(mock.replaced) != 2 || mock.replaced[1].ID != "v2" {
		t.Errorf("unexpected replaced records: %+v", mock.replaced)
	}
}

func TestEntityHandler_Replace_BadJSON(t *testing.T) {
	mock := &mockEntityService[*model.Vehicle]{}
	h := NewEntityHandler[*model.Vehicle](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/vehicles", jsonBody(map[string]string{"id": "v1"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/vehicles", h.Replace)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEntityHandler_SetFilters(t *testing.T) {
	mock := &mockEntityService[*model.Equipment]{}
	h := NewEntityHandler[*model.Equipment](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PATCH", "/equipment/filters", jsonBody(map[string]string{
		"status": "maintenance",
		"type":   "",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PATCH("/equipment/filters", h.SetFilters)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.filters["status"] != "maintenance" {
		t.Errorf("expected status filter, got %v", mock.filters)
	}
	if v, ok := mock.filters["type"]; !ok || v != "" {
		t.Errorf("expected empty type filter to be forwarded, got %v", mock.filters)
	}
}

func TestEntityHandler_Export_Success(t *testing.T) {
	mock := &mockEntityService[*model.Crop]{
		exportBuf:  bytes.NewBufferString("excel content"),
		exportName: "crops_20260101.xlsx",
	}
	h := NewEntityHandler[*model.Crop](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/crops/export?status=growing", nil)

	r := gin.New()
	r.GET("/crops/export", h.Export)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "crops_20260101.xlsx") {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	if mock.listReq.Filters["status"] != "growing" {
		t.Errorf("expected status filter to be forwarded, got %v", mock.listReq.Filters)
	}
}

func TestEntityHandler_EditForm_PassesID(t *testing.T) {
	mock := &mockEntityService[*model.Log]{formResult: &dto.FormResponse{Mode: "editing"}}
	h := NewEntityHandler[*model.Log](mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/logs/l1/form", nil)

	r := gin.New()
	r.GET("/logs/form", h.NewForm)
	r.GET("/logs/:id/form", h.EditForm)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.formID != "l1" {
		t.Errorf("expected form id l1, got %q", mock.formID)
	}
}

// ═══════════════════════════════════════════════════════════
// State / Calendar Tests
// ═══════════════════════════════════════════════════════════

func TestStateHandler_Dashboard(t *testing.T) {
	mock := &mockStateService{dashboard: &dto.DashboardResponse{
		Stats: []dto.DashboardStat{{Key: "fields", Title: "Total Fields", Value: 2}},
	}}
	h := NewStateHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/dashboard", nil)

	r := gin.New()
	r.GET("/dashboard", h.Dashboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Total Fields") {
		t.Errorf("expected dashboard stats in body: %s", w.Body.String())
	}
}

func TestCalendarHandler_CropCalendar(t *testing.T) {
	mock := &mockCalendarService{body: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"}
	h := NewCalendarHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/calendar/crops.ics?field_id=f1", nil)

	r := gin.New()
	r.GET("/calendar/crops.ics", h.CropCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type: %s", ct)
	}
	if mock.filters["field_id"] != "f1" {
		t.Errorf("expected field_id filter f1, got %v", mock.filters)
	}
}

func TestCalendarHandler_UnknownFilter(t *testing.T) {
	mock := &mockCalendarService{err: fmt.Errorf("%w: colour", query.ErrUnknownFilter)}
	h := NewCalendarHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/calendar/crops.ics?colour=red", nil)

	r := gin.New()
	r.GET("/calendar/crops.ics", h.CropCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
