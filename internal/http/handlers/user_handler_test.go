package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ed9408/minerva-api/internal/models"
	"github.com/ed9408/minerva-api/internal/services"
	"github.com/ed9408/minerva-api/internal/utils"
)

type stubUserService struct {
	lastRole string
	user     *models.User
	users    []models.User
	err      error
}

func (s *stubUserService) Create(_ context.Context, name, email, _ string, role string) (*models.User, error) {
	s.lastRole = role
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: 1, Name: name, Email: email, Role: role}, nil
}

func (s *stubUserService) List(context.Context) ([]models.User, error) {
	return s.users, s.err
}

func (s *stubUserService) Get(context.Context, int64) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Update(context.Context, int64, services.UserUpdateInput) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Delete(context.Context, int64) error {
	return s.err
}

func newUserRouter(stub *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewUserHandler(stub)
	router.POST("/api/v1/users", handler.Register)
	router.GET("/api/v1/users/:id", handler.Get)
	router.DELETE("/api/v1/users/:id", handler.Delete)
	return router
}

func TestRegisterUser(t *testing.T) {
	stub := &stubUserService{}
	router := newUserRouter(stub)

	payload := `{"name":"John Doe","email":"a@x.com","password":"pw","role":"user"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var body UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Email != "a@x.com" || body.Role != "user" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatal("response must not contain password material")
	}
}

func TestRegisterUserInvalidPayload(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	cases := map[string]string{
		"bad email":    `{"name":"John","email":"not-an-email","password":"pw"}`,
		"bad role":     `{"name":"John","email":"a@x.com","password":"pw","role":"boss"}`,
		"missing name": `{"email":"a@x.com","password":"pw"}`,
	}
	for name, payload := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestGetUserNotFound(t *testing.T) {
	stub := &stubUserService{err: utils.ErrNotFound("user not found")}
	router := newUserRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteUserNoContent(t *testing.T) {
	router := newUserRouter(&stubUserService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}
