package report

import (
	"context"
	"errors"

	"forum/dao"
	"forum/midware"
	"forum/model"
	"forum/svc/post"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

var errReport = errors.New("report or reportReason missing")

type Reporter interface {
	Report(ctx context.Context, id pr.ObjectID, r *model.Report) (pr.ObjectID, error)
}

// Register mounts /blog, /comment and /reply on g
func Register(g *gin.RouterGroup) {
	g.Use(midware.Authorize)
	g.POST("/blog", Handler(func() Reporter { return dao.Blogs }, "blogId")).
		POST("/comment", Handler(func() Reporter { return dao.Comments }, "commentId")).
		POST("/reply", Handler(func() Reporter { return dao.Replies }, "replyId"))
}

// Handler files the report in the body against the entity whose id is
// the key query parameter
func Handler(target func() Reporter, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := post.Id(c, key)
		if !ok {
			return
		}

		var req struct {
			Report *model.Report `json:"report"`
		}
		if !post.Bind(c, &req) {
			return
		}
		if req.Report == nil || req.Report.ReportReason < 1 {
			midware.Error(c, errReport)
			return
		}

		r := req.Report
		r.UserId = midware.UserId(c)
		rid, err := target().Report(c.Request.Context(), id, r)
		midware.Auto(c, err, bson.M{"reportId": rid}, "reported")
	}
}
