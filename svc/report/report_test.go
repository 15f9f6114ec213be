package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"forum/dao"
	"forum/model"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
	"gotest.tools/v3/assert"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeReporter struct {
	got  []*model.Report
	err  error
	seen map[pr.ObjectID]bool
}

func (f *fakeReporter) Report(_ context.Context, id pr.ObjectID, r *model.Report) (pr.ObjectID, error) {
	if f.err != nil {
		return pr.NilObjectID, f.err
	}
	if f.seen[r.UserId] {
		return pr.NilObjectID, dao.ErrDuplicateReport
	}
	f.seen[r.UserId] = true
	f.got = append(f.got, r)
	return pr.NewObjectID(), nil
}

func send(h gin.HandlerFunc, query, body string) (int, map[string]any) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/reports/comment", h)

	req := httptest.NewRequest(http.MethodPost, "/reports/comment?"+query, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	res := map[string]any{}
	json.Unmarshal(w.Body.Bytes(), &res)
	return w.Code, res
}

func TestReportValidation(t *testing.T) {
	f := &fakeReporter{seen: map[pr.ObjectID]bool{}}
	h := Handler(func() Reporter { return f }, "commentId")
	id := pr.NewObjectID().Hex()

	cases := []struct {
		name  string
		query string
		body  string
	}{
		{"missing id", "", `{"report":{"reportReason":1}}`},
		{"bad id", "commentId=zzz", `{"report":{"reportReason":1}}`},
		{"missing report", "commentId=" + id, `{}`},
		{"missing reason", "commentId=" + id, `{"report":{"description":"spam"}}`},
		{"zero reason", "commentId=" + id, `{"report":{"reportReason":0}}`},
		{"not json", "commentId=" + id, `report`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, res := send(h, c.query, c.body)
			assert.Equal(t, code, http.StatusBadRequest)
			assert.Equal(t, res["status"], false)
		})
	}
	assert.Equal(t, len(f.got), 0)
}

func TestReportDuplicate(t *testing.T) {
	f := &fakeReporter{seen: map[pr.ObjectID]bool{}}
	h := Handler(func() Reporter { return f }, "commentId")
	query := "commentId=" + pr.NewObjectID().Hex()
	body := `{"report":{"reportReason":2,"description":"spam"}}`

	code, res := send(h, query, body)
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["status"], true)
	assert.Equal(t, len(f.got), 1)
	assert.Equal(t, f.got[0].ReportReason, 2)
	assert.Equal(t, f.got[0].Description, "spam")

	// anonymous callers share the zero id, so the second one is a duplicate
	code, res = send(h, query, body)
	assert.Equal(t, code, http.StatusOK)
	assert.Equal(t, res["status"], false)
	assert.Equal(t, res["msg"], dao.ErrDuplicateReport.Error())
}

func TestReportTargetMissing(t *testing.T) {
	f := &fakeReporter{err: dao.ErrTargetNotFound}
	h := Handler(func() Reporter { return f }, "commentId")

	code, _ := send(h, "commentId="+pr.NewObjectID().Hex(), `{"report":{"reportReason":1}}`)
	assert.Equal(t, code, http.StatusBadRequest)
}
