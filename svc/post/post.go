// Package post holds the request plumbing shared by blog, comment and reply routes.
package post

import (
	"context"
	"errors"
	"fmt"

	"forum/dao"
	"forum/midware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidId = errors.New("invalid id")

type Voter interface {
	Vote(ctx context.Context, op dao.VoteOp, id, uid pr.ObjectID) error
}

// Bind decodes the json body into obj; the body stays readable for later binds
func Bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBindBodyWith(obj, binding.JSON); err != nil {
		midware.Error(c, err)
		return false
	}
	return true
}

// Id reads the hex id named key from the query string, then from the json body
func Id(c *gin.Context, key string) (pr.ObjectID, bool) {
	raw := c.Query(key)
	if raw == "" {
		var body map[string]any
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil {
			raw, _ = body[key].(string)
		}
	}

	id, err := pr.ObjectIDFromHex(raw)
	if err != nil {
		midware.Error(c, fmt.Errorf("%s: %w", key, ErrInvalidId))
		return pr.NilObjectID, false
	}
	return id, true
}

// Votes registers upvote, downvote, removeUpvote and removeDownvote on g,
// each taking the target id under key. v is resolved per request so routes
// can be built before the daos are bound.
func Votes(g *gin.RouterGroup, v func() Voter, key string) {
	for _, op := range []dao.VoteOp{dao.UPVOTE, dao.DOWNVOTE, dao.REMOVE_UPVOTE, dao.REMOVE_DOWNVOTE} {
		op := op
		g.POST("/"+op.String(), midware.Authorize, func(c *gin.Context) {
			id, ok := Id(c, key)
			if !ok {
				return
			}
			err := v().Vote(c.Request.Context(), op, id, midware.UserId(c))
			midware.Auto(c, err, nil)
		})
	}
}
