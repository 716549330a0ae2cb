package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "finmanager/internal/errors"
	"finmanager/internal/logger"
	"finmanager/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// newObservedLogger returns a Logger whose records can be inspected.
func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewFromCore(core, "financial-manager", "test"), logs
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("expected JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func errorMessage(t *testing.T, result map[string]interface{}) string {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	msg, _ := errObj["message"].(string)
	return msg
}

func TestRespondWithError_RecordsServerErrorsOnContext(t *testing.T) {
	log, logs := newObservedLogger()
	var recorded []string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		recorded = c.Errors.Errors()
	})
	r.GET("/boom", func(c *gin.Context) {
		respondWithError(c, log, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down")), "Failed to fetch categories")
	})
	r.GET("/missing", func(c *gin.Context) {
		respondWithError(c, log, apperrors.ErrCategoryNotFound, "Failed to fetch category")
	})

	rec := doRequest(r, "GET", "/boom", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if msg := errorMessage(t, parseJSON(t, rec)); msg != "Failed to fetch categories" {
		t.Errorf("expected generic message, got %q", msg)
	}
	if len(recorded) != 1 || recorded[0] != "db down" {
		t.Errorf("expected the cause recorded on the context, got %v", recorded)
	}
	if logs.FilterMessage("Failed to fetch categories").Len() != 1 {
		t.Error("expected the failure to be logged once")
	}

	rec = doRequest(r, "GET", "/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(recorded) != 0 {
		t.Errorf("client errors must not be recorded, got %v", recorded)
	}
}
