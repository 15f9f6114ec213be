package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"forum/cache"
	"forum/midware"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
	"gotest.tools/v3/assert"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func request(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router().ServeHTTP(w, req)

	res := map[string]any{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return w.Code, res
}

func TestNoRoute(t *testing.T) {
	code, res := request(t, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, code, http.StatusBadRequest)
	assert.Equal(t, res["status"], false)
	assert.Equal(t, res["msg"], "Resource Not found")
}

func TestAuthRequired(t *testing.T) {
	for _, path := range []string{"/drafts", "/blogs/star", "/comments/upvote", "/replies/delete", "/reports/blog"} {
		code, res := request(t, http.MethodPost, path, "", "{}")
		assert.Equal(t, code, http.StatusUnauthorized, path)
		assert.Equal(t, res["status"], false)
	}

	code, _ := request(t, http.MethodGet, "/users/me", "", "")
	assert.Equal(t, code, http.StatusUnauthorized)
}

func TestBadRequests(t *testing.T) {
	token, err := midware.GenerateToken(pr.NewObjectID().Hex(), time.Hour)
	assert.NilError(t, err)

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/blogs/upvote", `{}`},
		{http.MethodPost, "/blogs/removeDownvote", `{"blogId":"123"}`},
		{http.MethodPost, "/blogs/update", `{"blog":{"title":"t"}}`},
		{http.MethodPost, "/comments", `{"id":{"blogId":"` + pr.NewObjectID().Hex() + `"}}`},
		{http.MethodPost, "/replies/update", `{"reply":{"content":""}}`},
		{http.MethodPost, "/reports/reply?replyId=" + pr.NewObjectID().Hex(), `{"report":{}}`},
		{http.MethodPost, "/drafts", `{}`},
		{http.MethodPost, "/drafts/publish", `{"draftId":""}`},
		{http.MethodGet, "/blogs/one", ``},
		{http.MethodGet, "/blogs/tag", ``},
		{http.MethodGet, "/blogs/search?ld=-1", ``},
	}
	for _, c := range cases {
		code, res := request(t, c.method, c.path, token, c.body)
		assert.Equal(t, code, http.StatusBadRequest, c.path)
		assert.Equal(t, res["status"], false, c.path)
	}
}

func TestTags(t *testing.T) {
	cache.Tags.Store([]string{"go", "mongo"})

	code, res := request(t, http.MethodGet, "/blogs/tags", "", "")
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["length"], float64(2))
	assert.DeepEqual(t, res["data"], []any{"go", "mongo"})
}
