package dao

import (
	"context"
	"time"

	"forum/model"
	"forum/util/mongox"

	"github.com/qiniu/qmgo"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

// readable post fields, vote sets excluded
var postFields = []string{
	"_id", "content", "author", "dateTime", "lastUpdate",
	"replies", "reports", "upvotesCount", "downvotesCount",
}

// Entity implements storage shared by blogs, comments and replies:
// reads with caller vote flags, content updates, deletes, votes and reports.
type Entity[T any] struct {
	Kind   model.Kind
	coll   *qmgo.Collection
	fields []string
}

func newEntity[T any](kind model.Kind, coll *qmgo.Collection, fields ...string) *Entity[T] {
	return &Entity[T]{
		Kind:   kind,
		coll:   coll,
		fields: append(append([]string{}, postFields...), fields...),
	}
}

// project selects the readable fields; a caller id adds upvoted/downvoted flags
func (e *Entity[T]) project(uid pr.ObjectID) bson.M {
	p := bson.M{}
	for _, f := range e.fields {
		p[f] = 1
	}
	if !uid.IsZero() {
		p["upvoted"] = mongox.Has(uid, "upvotes")
		p["downvoted"] = mongox.Has(uid, "downvotes")
	}
	return p
}

func (e *Entity[T]) op(name string) string {
	return name + " " + e.Kind.String()
}

func (e *Entity[T]) insert(ctx context.Context, id pr.ObjectID, doc *T) error {
	if _, err := e.coll.InsertOne(ctx, doc); err != nil {
		return check(e.op("insert"), err, ErrCreate)
	}
	log.Debug().Str("kind", e.Kind.String()).Str("id", id.Hex()).Msg("inserted")
	return nil
}

// updateContent sets fields on a document owned by uid
func (e *Entity[T]) updateContent(ctx context.Context, id, uid pr.ObjectID, set bson.M) error {
	set["lastUpdate"] = time.Now()

	err := e.coll.UpdateOne(ctx, bson.M{"_id": id, "author": uid}, bson.M{"$set": set})
	if err = check(e.op("update"), err, ErrNotFoundOrForbidden); err != nil {
		return err
	}
	log.Debug().Str("kind", e.Kind.String()).Str("id", id.Hex()).Msg("updated content")
	return nil
}

// ReadOne reads a document by id, flagging uid's votes when uid is not zero
func (e *Entity[T]) ReadOne(ctx context.Context, id, uid pr.ObjectID) (*T, error) {
	data := make([]T, 0, 1)
	err := e.coll.Aggregate(ctx, mongox.Pipeline().
		Match(bson.M{"_id": id}).
		Limit(1).
		Project(e.project(uid)).Do()).All(&data)
	if err != nil {
		return nil, check(e.op("read"), err, ErrNotFound)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return &data[0], nil
}

// ReadAll reads every document matching filter, newest first.
// An empty result is not an error.
func (e *Entity[T]) ReadAll(ctx context.Context, filter bson.M, uid pr.ObjectID) ([]T, error) {
	data := make([]T, 0)
	err := e.coll.Aggregate(ctx, mongox.Pipeline().
		Match(filter).
		Sort(bson.D{{Key: "dateTime", Value: -1}}).
		Project(e.project(uid)).Do()).All(&data)
	if err != nil {
		return nil, check(e.op("read all"), err, ErrNotFound)
	}
	return data, nil
}

// Delete removes one document by id
func (e *Entity[T]) Delete(ctx context.Context, id pr.ObjectID) error {
	err := e.coll.Remove(ctx, bson.M{"_id": id})
	if err = check(e.op("delete"), err, ErrNotFound); err != nil {
		return err
	}
	log.Debug().Str("kind", e.Kind.String()).Str("id", id.Hex()).Msg("deleted")
	return nil
}

// IsAuthor reports whether id exists and was written by uid
func (e *Entity[T]) IsAuthor(ctx context.Context, id, uid pr.ObjectID) (bool, error) {
	n, err := e.coll.Find(ctx, bson.M{"_id": id, "author": uid}).Count()
	if err != nil {
		return false, check(e.op("count"), err, ErrNotFound)
	}
	return n == 1, nil
}
