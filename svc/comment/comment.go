// Package comment serves comments and replies; both kinds share one handler
// set keyed by the kind name.
package comment

import (
	"errors"
	"fmt"

	"forum/dao"
	"forum/midware"
	"forum/model"
	"forum/svc/post"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

var errContent = errors.New("content missing")

type payload struct {
	Id      pr.ObjectID `json:"_id"`
	Content string      `json:"content"`
}

type handler struct {
	thread func() *dao.ThreadDao
	kind   string // body field holding the payload
	key    string // id parameter
}

// Register mounts the routes of a thread kind on g. thread is resolved per
// request so routes can be built before the daos are bound.
func Register(g *gin.RouterGroup, kind model.Kind, thread func() *dao.ThreadDao) {
	h := &handler{thread: thread, kind: kind.String(), key: kind.String() + "Id"}

	g.GET("", midware.Optional, h.Read).
		POST("", midware.Authorize, h.Create).
		POST("/delete", midware.Authorize, h.Delete).
		POST("/update", midware.Authorize, h.Update)

	post.Votes(g, func() post.Voter { return thread() }, h.key)
}

func (h *handler) payload(c *gin.Context) (*payload, bool) {
	body := map[string]*payload{}
	if !post.Bind(c, &body) {
		return nil, false
	}

	p := body[h.kind]
	if p == nil || p.Content == "" {
		midware.Error(c, fmt.Errorf("%s: %w", h.kind, errContent))
		return nil, false
	}
	return p, true
}

func (h *handler) Read(c *gin.Context) {
	id, ok := post.Id(c, h.key)
	if !ok {
		return
	}
	data, err := h.thread().ReadOne(c.Request.Context(), id, midware.UserId(c))
	midware.Auto(c, err, data)
}

// Create takes {id: {blogId|commentId|replyId}, <kind>: {content}}
func (h *handler) Create(c *gin.Context) {
	var req struct {
		Id model.Parent `json:"id"`
	}
	if !post.Bind(c, &req) {
		return
	}
	p, ok := h.payload(c)
	if !ok {
		return
	}

	cm := new(model.Comment)
	cm.Content = p.Content

	id, err := dao.Users.AddComment(c.Request.Context(), h.thread(), midware.UserId(c), cm, req.Id)
	midware.Auto(c, err, bson.M{h.key: id})
}

// Delete takes {id: {blogId|commentId|replyId}, <kind>Id}
func (h *handler) Delete(c *gin.Context) {
	var req struct {
		Id model.Parent `json:"id"`
	}
	if !post.Bind(c, &req) {
		return
	}
	id, ok := post.Id(c, h.key)
	if !ok {
		return
	}

	err := dao.Users.DeleteComment(c.Request.Context(), h.thread(), midware.UserId(c), id, req.Id)
	midware.Auto(c, err, nil, h.kind+" deleted")
}

// Update takes {<kind>: {_id, content}}
func (h *handler) Update(c *gin.Context) {
	p, ok := h.payload(c)
	if !ok {
		return
	}

	cm := new(model.Comment)
	cm.Id = p.Id
	cm.Content = p.Content

	err := h.thread().UpdateContent(c.Request.Context(), cm, midware.UserId(c))
	midware.Auto(c, err, nil, h.kind+" updated")
}
