package midware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"forum/dao"

	"github.com/gin-gonic/gin"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

type envelope struct {
	Status bool   `json:"status"`
	Data   any    `json:"data"`
	Msg    string `json:"msg"`
	Err    string `json:"err"`
	Length *int   `json:"length"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(h gin.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)

	var body envelope
	json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuto(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   int
		status bool
	}{
		{"success", nil, http.StatusOK, true},
		{"duplicate report", dao.ErrDuplicateReport, http.StatusOK, false},
		{"business", dao.ErrNotFoundOrForbidden, http.StatusBadRequest, false},
		{"wrapped business", fmt.Errorf("blog: %w", dao.ErrNotFound), http.StatusBadRequest, false},
		{"store", &dao.StoreError{Op: "read blog", Err: errors.New("timeout")}, http.StatusInternalServerError, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, body := serve(func(ctx *gin.Context) { Auto(ctx, c.err, "payload") })
			assert.Equal(t, w.Code, c.code)
			assert.Equal(t, body.Status, c.status)
		})
	}
}

func TestStoreErrorDetail(t *testing.T) {
	_, body := serve(func(c *gin.Context) {
		Auto(c, &dao.StoreError{Op: "insert blog", Err: errors.New("timeout")}, nil)
	})
	assert.Equal(t, body.Err, "insert blog: timeout")
	assert.Equal(t, body.Msg, "internal error")
}

func TestSuccessMsg(t *testing.T) {
	_, body := serve(func(c *gin.Context) { Success(c, nil, "draft deleted") })
	assert.Equal(t, body.Msg, "draft deleted")
	assert.Assert(t, body.Status)
}

func TestList(t *testing.T) {
	w, body := serve(func(c *gin.Context) { List(c, nil, []string{"go", "db"}) })
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Assert(t, body.Length != nil)
	assert.Equal(t, *body.Length, 2)
	assert.Check(t, is.Len(body.Data, 2))

	_, body = serve(func(c *gin.Context) { List(c, nil, []string{}) })
	assert.Equal(t, *body.Length, 0)

	w, _ = serve(func(c *gin.Context) { List[string](c, dao.ErrNotFound, nil) })
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestErrorCode(t *testing.T) {
	w, body := serve(func(c *gin.Context) { Error(c, errors.New("nope"), http.StatusUnauthorized) })
	assert.Equal(t, w.Code, http.StatusUnauthorized)
	assert.Equal(t, body.Msg, "nope")
	assert.Assert(t, !body.Status)
}
