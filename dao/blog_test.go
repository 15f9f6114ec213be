package dao

import (
	"context"
	"testing"
	"time"

	"forum/model"

	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestSearchFilter(t *testing.T) {
	before := time.UnixMilli(1700000000000)

	t.Run("empty query pages everything", func(t *testing.T) {
		f := searchFilter("   ", before)
		assert.DeepEqual(t, f, bson.M{"dateTime": bson.M{"$lt": before}})
	})

	t.Run("words", func(t *testing.T) {
		f := searchFilter("Go  a.b go", before)
		or := f["$or"].(bson.A)

		// tags, then title and content per word
		assert.Assert(t, is.Len(or, 5))
		assert.DeepEqual(t, or[0], bson.M{"tags": bson.M{"$in": []string{"go", "a.b"}}})
		assert.DeepEqual(t, or[3], bson.M{"title": pr.Regex{Pattern: `a\.b`, Options: "i"}})
		assert.DeepEqual(t, or[4], bson.M{"content": pr.Regex{Pattern: `a\.b`, Options: "i"}})
	})
}

func TestProject(t *testing.T) {
	e := newEntity[model.Blog](model.KIND_BLOG, nil, "title")

	anon := e.project(pr.NilObjectID)
	assert.Check(t, is.Contains(anon, "title"))
	assert.Check(t, is.Contains(anon, "upvotesCount"))
	assert.Check(t, !contains(anon, "upvotes"))
	assert.Check(t, !contains(anon, "upvoted"))

	uid := pr.NewObjectID()
	p := e.project(uid)
	assert.Check(t, is.Contains(p, "upvoted"))
	assert.Check(t, is.Contains(p, "downvoted"))
}

func TestUpdateStarsCommand(t *testing.T) {
	b := NewBlogDao(nil)
	assert.ErrorIs(t, b.UpdateStars(context.Background(), pr.NewObjectID(), "double"), ErrInvalidCommand)
}

func contains(m bson.M, key string) bool {
	_, ok := m[key]
	return ok
}
