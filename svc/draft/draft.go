package draft

import (
	"errors"

	"forum/dao"
	"forum/midware"
	"forum/model"
	"forum/svc/post"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

var errDraft = errors.New("draft missing")

type draftReq struct {
	Draft *model.Draft `json:"draft" binding:"required"`
}

func Register(g *gin.RouterGroup) {
	g.Use(midware.Authorize)
	g.POST("", Create).
		POST("/update", Update).
		GET("/one", GetDraft).
		GET("/all", GetDrafts).
		POST("/delete", Delete).
		POST("/publish", Publish)
}

func bindDraft(c *gin.Context) (*model.Draft, bool) {
	var req draftReq
	if !post.Bind(c, &req) {
		return nil, false
	}
	if req.Draft == nil {
		midware.Error(c, errDraft)
		return nil, false
	}
	return req.Draft, true
}

// 新建草稿
func Create(c *gin.Context) {
	d, ok := bindDraft(c)
	if !ok {
		return
	}
	id, err := dao.Users.CreateDraft(c.Request.Context(), midware.UserId(c), d)
	midware.Auto(c, err, bson.M{"draftId": id})
}

func Update(c *gin.Context) {
	d, ok := bindDraft(c)
	if !ok {
		return
	}
	if d.Id.IsZero() {
		midware.Error(c, post.ErrInvalidId)
		return
	}
	err := dao.Users.UpdateDraft(c.Request.Context(), midware.UserId(c), d)
	midware.Auto(c, err, nil, "draft updated")
}

func GetDraft(c *gin.Context) {
	id, ok := post.Id(c, "draftId")
	if !ok {
		return
	}
	data, err := dao.Users.ReadDraft(c.Request.Context(), midware.UserId(c), id)
	midware.Auto(c, err, data)
}

func GetDrafts(c *gin.Context) {
	data, err := dao.Users.ReadDrafts(c.Request.Context(), midware.UserId(c))
	midware.List(c, err, data)
}

func Delete(c *gin.Context) {
	id, ok := post.Id(c, "draftId")
	if !ok {
		return
	}
	err := dao.Users.DeleteDraft(c.Request.Context(), midware.UserId(c), id)
	midware.Auto(c, err, nil, "draft deleted")
}

// 发布草稿
func Publish(c *gin.Context) {
	id, ok := post.Id(c, "draftId")
	if !ok {
		return
	}
	bid, err := dao.Users.PublishDraft(c.Request.Context(), midware.UserId(c), id)
	midware.Auto(c, err, bson.M{"blogId": bid}, "draft published")
}
