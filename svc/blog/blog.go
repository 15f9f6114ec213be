package blog

import (
	"errors"
	"time"

	"forum/cache"
	"forum/dao"
	"forum/midware"
	"forum/model"
	"forum/svc/post"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

var errTag = errors.New("tag missing")

// Register mounts the blog routes on g
func Register(g *gin.RouterGroup) {
	g.GET("/one", midware.Optional, GetBlog).
		GET("/all", midware.Optional, GetBlogs).
		GET("/tag", midware.Optional, GetByTag).
		GET("/search", midware.Optional, Search).
		GET("/tags", GetTags).
		POST("/delete", midware.Authorize, Delete).
		POST("/update", midware.Authorize, Update).
		POST("/star", midware.Authorize, Star).
		POST("/unstar", midware.Authorize, Unstar)

	post.Votes(g, func() post.Voter { return dao.Blogs }, "blogId")
}

// 博客详情
func GetBlog(c *gin.Context) {
	id, ok := post.Id(c, "blogId")
	if !ok {
		return
	}
	data, err := dao.Blogs.ReadOne(c.Request.Context(), id, midware.UserId(c))
	midware.Auto(c, err, data)
}

func GetBlogs(c *gin.Context) {
	data, err := dao.Blogs.ReadAll(c.Request.Context(), bson.M{}, midware.UserId(c))
	midware.List(c, err, data)
}

func GetByTag(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		midware.Error(c, errTag)
		return
	}
	data, err := dao.Blogs.ReadByTag(c.Request.Context(), tag, midware.UserId(c))
	midware.List(c, err, data)
}

// Search takes the words in q and an optional ld cursor, the dateTime in
// milliseconds of the last blog already shown
func Search(c *gin.Context) {
	var req struct {
		Q  string `form:"q"`
		Ld int64  `form:"ld" binding:"min=0"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		midware.Error(c, err)
		return
	}

	before := time.Now()
	if req.Ld > 0 {
		before = time.UnixMilli(req.Ld)
	}
	data, err := dao.Blogs.Search(c.Request.Context(), req.Q, before, midware.UserId(c))
	midware.List(c, err, data)
}

func GetTags(c *gin.Context) {
	if tags, ok := cache.Tags.Load(); ok {
		midware.List(c, nil, tags)
		return
	}
	tags, err := dao.Tags.All(c.Request.Context())
	midware.List(c, err, tags)
}

// 删除博客
func Delete(c *gin.Context) {
	id, ok := post.Id(c, "_id")
	if !ok {
		return
	}
	err := dao.Users.DeleteBlog(c.Request.Context(), midware.UserId(c), id)
	midware.Auto(c, err, nil, "blog deleted")
}

// 更新博客
func Update(c *gin.Context) {
	var req struct {
		Blog struct {
			Id      pr.ObjectID `json:"_id" binding:"required"`
			Title   string      `json:"title" binding:"required,max=256"`
			Content string      `json:"content" binding:"max=20000"`
			Tags    []string    `json:"tags" binding:"max=10"`
		} `json:"blog" binding:"required"`
	}
	if !post.Bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	b := &model.Blog{Title: req.Blog.Title, Tags: req.Blog.Tags}
	b.Id = req.Blog.Id
	b.Content = req.Blog.Content

	err := dao.Blogs.UpdateContent(ctx, b, midware.UserId(c))
	if err == nil {
		err = dao.Tags.Merge(ctx, b.Tags)
	}
	midware.Auto(c, err, nil, "blog updated")
}

func Star(c *gin.Context) {
	id, ok := post.Id(c, "blogId")
	if !ok {
		return
	}
	err := dao.Users.AddStar(c.Request.Context(), midware.UserId(c), id)
	midware.Auto(c, err, nil)
}

func Unstar(c *gin.Context) {
	id, ok := post.Id(c, "blogId")
	if !ok {
		return
	}
	err := dao.Users.RemoveStar(c.Request.Context(), midware.UserId(c), id)
	midware.Auto(c, err, nil)
}
