package midware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
)

func TestLocalLimit(t *testing.T) {
	viper.Set("limit.ip", 1)
	viper.Set("limit.burst", 2)
	t.Cleanup(func() {
		visitors.Lock()
		visitors.m = make(map[string]*visitor)
		visitors.Unlock()
	})

	r := gin.New()
	r.Use(FlowController)
	r.GET("/", func(c *gin.Context) { Success(c, nil) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, hit("10.0.0.1"), http.StatusOK)
	assert.Equal(t, hit("10.0.0.1"), http.StatusOK)
	assert.Equal(t, hit("10.0.0.1"), http.StatusTooManyRequests)

	// other callers keep their own budget
	assert.Equal(t, hit("10.0.0.2"), http.StatusOK)
}

func TestCors(t *testing.T) {
	viper.Set("cors.origins", []string{"https://forum.example"})

	r := gin.New()
	r.Use(Cors(), Logger)
	r.POST("/blogs/star", func(c *gin.Context) { Success(c, nil) })

	req := httptest.NewRequest(http.MethodOptions, "/blogs/star", nil)
	req.Header.Set("Origin", "https://forum.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, w.Code, http.StatusNoContent)
	assert.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "https://forum.example")

	req = httptest.NewRequest(http.MethodPost, "/blogs/star", nil)
	req.Header.Set("Origin", "https://forum.example")
	req.Header.Set(requestIdHeader, "rid-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, w.Header().Get(requestIdHeader), "rid-1")
}
