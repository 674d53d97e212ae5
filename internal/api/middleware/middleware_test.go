package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blotto-backtest/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/matryer/is"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestErrorHandlerRecovers(t *testing.T) {
	is := is.New(t)
	r := newRouter(ErrorHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	is.Equal(w.Code, http.StatusInternalServerError)

	var body models.ErrorResponse
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &body))
	is.Equal(body.Error.Code, "INTERNAL_ERROR")
	is.Equal(body.Error.Message, "boom")
}

func TestCORSPreflight(t *testing.T) {
	is := is.New(t)
	r := newRouter(CORS([]string{"https://example.org"}))

	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	is.Equal(w.Code, http.StatusNoContent)
	is.Equal(w.Header().Get("Access-Control-Allow-Origin"), "https://example.org")
}

func TestCORSActualRequest(t *testing.T) {
	is := is.New(t)
	r := newRouter(CORS([]string{"https://example.org"}), Logger())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "https://example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	is.Equal(w.Code, http.StatusOK)
	is.Equal(w.Header().Get("Access-Control-Allow-Origin"), "https://example.org")

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	is.Equal(w.Code, http.StatusOK)
	is.Equal(w.Header().Get("Access-Control-Allow-Origin"), "")
}
