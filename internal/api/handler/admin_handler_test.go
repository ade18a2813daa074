package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/worksync/session-agent/internal/core/service"
)

func TestAdminHandler_RegisterUser(t *testing.T) {
	svc := &stubWorkforce{}
	h := NewAdminHandler(svc)

	e := newEcho()
	body := `{"name":"Ana","email":"ana@example.com","password":"Abcdefgh1234!","position":"QA"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.RegisterUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registerUserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.PasswordStrength != string(service.StrengthStrong) {
		t.Errorf("expected strong password, got %q", resp.PasswordStrength)
	}
	if len(svc.registered) != 1 || svc.registered[0].Position != "QA" {
		t.Errorf("unexpected registration %+v", svc.registered)
	}
}

func TestAdminHandler_RegisterUserInvalidRole(t *testing.T) {
	h := NewAdminHandler(&stubWorkforce{})

	e := newEcho()
	body := `{"name":"Ana","email":"ana@example.com","password":"x","role":"Owner"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RegisterUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func multipartImage(t *testing.T, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="profileImage"; filename="me.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{0x89}, size)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func TestAdminHandler_UploadImage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantStatus  int
		wantUploads int
	}{
		{"png accepted", "image/png", http.StatusNoContent, 1},
		{"pdf rejected", "application/pdf", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubWorkforce{}
			h := NewAdminHandler(svc)

			body, ct := multipartImage(t, tt.contentType, 128)
			e := newEcho()
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/users/u9/image", body)
			req.Header.Set(echo.HeaderContentType, ct)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("u9")

			err := h.UploadImage(c)
			if tt.wantStatus == http.StatusNoContent {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if rec.Code != tt.wantStatus {
					t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
				}
			} else if err == nil {
				t.Fatalf("expected an error")
			}
			if len(svc.uploaded) != tt.wantUploads {
				t.Errorf("expected %d uploads, got %d", tt.wantUploads, len(svc.uploaded))
			}
		})
	}
}

func TestAdminHandler_GeneratePassword(t *testing.T) {
	h := NewAdminHandler(&stubWorkforce{})

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/password/generate", nil)
	rec := httptest.NewRecorder()

	if err := h.GeneratePassword(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp passwordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Password) != 12 {
		t.Errorf("expected 12 characters, got %d", len(resp.Password))
	}
	if resp.Strength == "" {
		t.Errorf("expected a strength grade")
	}
}

func TestAdminHandler_DestructiveActions(t *testing.T) {
	tests := []struct {
		name       string
		call       func(*AdminHandler, echo.Context) error
		query      string
		wantStatus int
		wantPrompt string
	}{
		{"users unconfirmed", (*AdminHandler).DeleteUsers, "", http.StatusPreconditionRequired, service.PromptDeleteUsers},
		{"users confirmed", (*AdminHandler).DeleteUsers, "?confirm=true", http.StatusOK, service.PromptDeleteUsers},
		{"attendance confirmed", (*AdminHandler).DeleteAttendance, "?confirm=1", http.StatusOK, service.PromptDeleteAttendance},
		{"leaves declined", (*AdminHandler).DeleteLeaves, "?confirm=false", http.StatusPreconditionRequired, service.PromptDeleteLeaves},
		{"reset confirmed", (*AdminHandler).ResetSystem, "?confirm=true", http.StatusOK, service.PromptResetSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubWorkforce{}
			h := NewAdminHandler(svc)

			e := newEcho()
			req := httptest.NewRequest(http.MethodDelete, "/v1/admin/x"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := tt.call(h, c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if len(svc.prompts) != 1 || svc.prompts[0] != tt.wantPrompt {
				t.Errorf("unexpected prompts %v", svc.prompts)
			}
			if tt.wantStatus == http.StatusPreconditionRequired && !strings.Contains(rec.Body.String(), "cannot be undone") {
				t.Errorf("expected prompt in body, got %s", rec.Body.String())
			}
		})
	}
}

