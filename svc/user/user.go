package user

import (
	"errors"

	"forum/dao"
	"forum/midware"
	"forum/model"

	"github.com/gin-gonic/gin"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

func Register(g *gin.RouterGroup) {
	g.GET("/me", midware.Authorize, Me)
}

// Me returns the caller's profile; users who never wrote anything get an empty one
func Me(c *gin.Context) {
	uid := midware.UserId(c)
	data, err := dao.Users.GetUser(c.Request.Context(), uid)
	if errors.Is(err, dao.ErrNotFound) {
		data, err = &model.User{
			Id:       uid,
			Stars:    []pr.ObjectID{},
			Blogs:    []pr.ObjectID{},
			Replies:  []pr.ObjectID{},
			Drafts:   []model.Draft{},
			BlogList: []model.BlogBrief{},
		}, nil
	}
	midware.Auto(c, err, data)
}
