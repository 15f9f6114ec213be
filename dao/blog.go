package dao

import (
	"context"
	"regexp"
	"strings"
	"time"

	"forum/model"
	"forum/util"
	"forum/util/mongox"

	"github.com/qiniu/qmgo"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

const searchSize = 20

type BlogDao struct {
	*Entity[model.Blog]
}

func NewBlogDao(coll *qmgo.Collection) *BlogDao {
	return &BlogDao{newEntity[model.Blog](model.KIND_BLOG, coll, "title", "tags", "stars", "coverImage")}
}

// Create inserts b as a fresh blog written by b.Author
func (b *BlogDao) Create(ctx context.Context, blog *model.Blog) (pr.ObjectID, error) {
	blog.Init(blog.Author)
	blog.Stars = 0
	blog.Tags = util.SplitTags(blog.Tags)

	if err := b.insert(ctx, blog.Id, blog); err != nil {
		return pr.NilObjectID, err
	}
	return blog.Id, nil
}

// UpdateContent replaces title, content and tags of a blog written by uid
func (b *BlogDao) UpdateContent(ctx context.Context, blog *model.Blog, uid pr.ObjectID) error {
	return b.updateContent(ctx, blog.Id, uid, bson.M{
		"title":   blog.Title,
		"content": blog.Content,
		"tags":    util.SplitTags(blog.Tags),
	})
}

func (b *BlogDao) ReadByTag(ctx context.Context, tag string, uid pr.ObjectID) ([]model.Blog, error) {
	return b.ReadAll(ctx, bson.M{"tags": strings.ToLower(strings.TrimSpace(tag))}, uid)
}

// DeleteOwned removes a blog written by uid and returns its top level reply ids
func (b *BlogDao) DeleteOwned(ctx context.Context, id, uid pr.ObjectID) ([]pr.ObjectID, error) {
	var blog model.Blog
	err := b.coll.Find(ctx, bson.M{"_id": id, "author": uid}).
		Select(bson.M{"replies": 1}).
		Apply(qmgo.Change{Remove: true}, &blog)
	if err = check(b.op("delete"), err, ErrNotFound); err != nil {
		return nil, err
	}

	log.Debug().Str("id", id.Hex()).Int("replies", len(blog.Replies)).Msg("deleted blog")
	return blog.Replies, nil
}

// UpdateStars applies "inc" or "dec"; stars never drop below zero
func (b *BlogDao) UpdateStars(ctx context.Context, id pr.ObjectID, command string) error {
	filter := bson.M{"_id": id}
	var delta int

	switch command {
	case "inc":
		delta = 1
	case "dec":
		delta = -1
		filter["stars"] = bson.M{"$gt": 0}
	default:
		return ErrInvalidCommand
	}

	err := b.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stars": delta}})
	if err = check(b.op("stars"), err, ErrNotFound); err != nil {
		log.Warn().Str("id", id.Hex()).Str("command", command).Err(err).Msg("update stars failed")
		return err
	}
	return nil
}

// searchFilter matches any word against title, content or tags, older than before
func searchFilter(q string, before time.Time) bson.M {
	filter := bson.M{"dateTime": bson.M{"$lt": before}}

	words := util.Words(q)
	if len(words) == 0 {
		return filter
	}

	or := bson.A{bson.M{"tags": bson.M{"$in": words}}}
	for _, w := range words {
		re := pr.Regex{Pattern: regexp.QuoteMeta(w), Options: "i"}
		or = append(or, bson.M{"title": re}, bson.M{"content": re})
	}
	filter["$or"] = or
	return filter
}

// Search pages through matching blogs newest first; pass the dateTime of the
// last blog seen as before to get the next page.
func (b *BlogDao) Search(ctx context.Context, q string, before time.Time, uid pr.ObjectID) ([]model.Blog, error) {
	data := make([]model.Blog, 0)
	err := b.coll.Aggregate(ctx, mongox.Pipeline().
		Match(searchFilter(q, before)).
		Sort(bson.D{{Key: "dateTime", Value: -1}}).
		Limit(searchSize).
		Project(b.project(uid)).Do()).All(&data)
	if err != nil {
		return nil, check(b.op("search"), err, ErrNotFound)
	}
	return data, nil
}
