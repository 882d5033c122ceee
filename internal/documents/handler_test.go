package documents

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pdfchat-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewMemoryRepo(), local.New(t.TempDir()))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func multipartPDF(t *testing.T, fileName string, body []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	buf, contentType := multipartPDF(t, "report.pdf", []byte("%PDF-1.4 body"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var doc Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.FileName != "report.pdf" || doc.ID == "" {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestUploadEndpointMissingFile(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("validation_error")) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestFileEndpointStreamsBytes(t *testing.T) {
	r, svc := newTestRouter(t)

	doc, err := svc.Upload(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "user-1", "report.pdf", bytes.NewReader([]byte("%PDF- raw bytes")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+doc.ID+"/file", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "%PDF- raw bytes" {
		t.Fatalf("body = %q", w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `inline; filename="report.pdf"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
}

func TestDeleteEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	doc, err := svc.Upload(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "user-1", "report.pdf", bytes.NewReader([]byte("%PDF-")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+doc.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+doc.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
}
