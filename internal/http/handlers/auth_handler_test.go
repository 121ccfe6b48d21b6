package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ed9408/minerva-api/internal/services"
	"github.com/ed9408/minerva-api/internal/utils"
)

type stubAuthService struct {
	resp   *services.TokenResponse
	err    error
	called bool
}

func (s *stubAuthService) Login(context.Context, string, string) (*services.TokenResponse, error) {
	s.called = true
	return s.resp, s.err
}

func newLoginRouter(stub *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/auth/login", NewAuthHandler(stub).Login)
	return router
}

func postLoginForm(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginReturnsToken(t *testing.T) {
	stub := &stubAuthService{resp: &services.TokenResponse{
		AccessToken: "token-value",
		TokenType:   "bearer",
		ExpiresIn:   600,
	}}
	router := newLoginRouter(stub)

	rec := postLoginForm(router, url.Values{"username": {"a@x.com"}, "password": {"pw"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var body services.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.AccessToken != "token-value" || body.TokenType != "bearer" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	stub := &stubAuthService{err: utils.ErrInvalidCredentials()}
	router := newLoginRouter(stub)

	rec := postLoginForm(router, url.Values{"username": {"a@x.com"}, "password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	stub := &stubAuthService{}
	router := newLoginRouter(stub)

	rec := postLoginForm(router, url.Values{"username": {"a@x.com"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if stub.called {
		t.Fatal("service should not be called on validation failure")
	}
}
