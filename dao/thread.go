package dao

import (
	"context"

	"forum/model"
	"forum/util"

	"github.com/qiniu/qmgo"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

// Forest holds the collections a reply tree spans. A blog lists its top
// level comments; comments and replies list their children, which may
// live in either node collection.
type Forest struct {
	Blogs    *qmgo.Collection
	Comments *qmgo.Collection
	Replies  *qmgo.Collection
}

// ThreadDao stores comments or replies. Every node is its own document and
// parents only keep the ordered ids of their children.
type ThreadDao struct {
	*Entity[model.Comment]
	forest *Forest
}

func NewThreadDao(kind model.Kind, coll *qmgo.Collection, forest *Forest) *ThreadDao {
	return &ThreadDao{
		Entity: newEntity[model.Comment](kind, coll, "blogId"),
		forest: forest,
	}
}

// parent resolves the collection and id holding the children list
func (t *ThreadDao) parent(p model.Parent) (*qmgo.Collection, pr.ObjectID, error) {
	switch {
	case p.ReplyId != "":
		return t.forest.Replies, util.ParseId(p.ReplyId), nil
	case p.CommentId != "":
		return t.forest.Comments, util.ParseId(p.CommentId), nil
	case p.BlogId != "":
		return t.forest.Blogs, util.ParseId(p.BlogId), nil
	}
	return nil, pr.NilObjectID, ErrMissingParent
}

// Create links c under its parent, then inserts it. Nothing is inserted when
// the parent does not exist.
func (t *ThreadDao) Create(ctx context.Context, c *model.Comment, p model.Parent) (pr.ObjectID, error) {
	coll, pid, err := t.parent(p)
	if err != nil {
		return pr.NilObjectID, err
	}

	c.Init(c.Author)
	if coll == t.forest.Blogs {
		c.BlogId = pid
	}

	err = coll.UpdateOne(ctx, bson.M{"_id": pid}, bson.M{"$push": bson.M{"replies": c.Id}})
	if err = check(t.op("link"), err, ErrCreate); err != nil {
		log.Debug().Str("kind", t.Kind.String()).Str("parent", pid.Hex()).Err(err).Msg("unable to create")
		return pr.NilObjectID, err
	}

	if err = t.insert(ctx, c.Id, c); err != nil {
		// unlink so the parent never points at a missing child
		if uerr := coll.UpdateOne(ctx, bson.M{"_id": pid}, bson.M{"$pull": bson.M{"replies": c.Id}}); uerr != nil {
			log.Error().Err(uerr).Str("parent", pid.Hex()).Str("id", c.Id.Hex()).Msg("unlink failed")
		}
		return pr.NilObjectID, err
	}
	return c.Id, nil
}

// UpdateContent replaces the content of a node written by uid
func (t *ThreadDao) UpdateContent(ctx context.Context, c *model.Comment, uid pr.ObjectID) error {
	return t.updateContent(ctx, c.Id, uid, bson.M{"content": c.Content})
}

// Delete unlinks id from its parent and removes it with all its descendants,
// returning the ids of the subtree
func (t *ThreadDao) Delete(ctx context.Context, id pr.ObjectID, p model.Parent) ([]pr.ObjectID, error) {
	coll, pid, err := t.parent(p)
	if err != nil {
		return nil, err
	}

	err = coll.UpdateOne(ctx, bson.M{"_id": pid, "replies": id}, bson.M{"$pull": bson.M{"replies": id}})
	if err = check(t.op("unlink"), err, ErrNotFound); err != nil {
		return nil, err
	}

	ids, n, err := t.forest.Purge(ctx, []pr.ObjectID{id})
	if err != nil {
		return ids, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return ids, nil
}

// Purge removes roots and every node reachable from them in both node
// collections, returning the ids walked and the count removed
func (f *Forest) Purge(ctx context.Context, roots []pr.ObjectID) ([]pr.ObjectID, int64, error) {
	if len(roots) == 0 {
		return nil, 0, nil
	}
	colls := []*qmgo.Collection{f.Comments, f.Replies}

	seen := make(map[pr.ObjectID]struct{}, len(roots))
	all := make([]pr.ObjectID, 0, len(roots))
	frontier := roots

	for len(frontier) > 0 {
		next := make([]pr.ObjectID, 0, len(frontier))
		for _, id := range frontier {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				all = append(all, id)
				next = append(next, id)
			}
		}
		if len(next) == 0 {
			break
		}

		frontier = nil
		for _, coll := range colls {
			var nodes []struct {
				Replies []pr.ObjectID `bson:"replies"`
			}
			err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": next}}).Select(bson.M{"replies": 1}).All(&nodes)
			if err != nil {
				return nil, 0, check("walk thread", err, ErrNotFound)
			}
			for _, n := range nodes {
				frontier = append(frontier, n.Replies...)
			}
		}
	}

	var removed int64
	for _, coll := range colls {
		res, err := coll.RemoveAll(ctx, bson.M{"_id": bson.M{"$in": all}})
		if err != nil {
			return all, removed, check("purge thread", err, ErrNotFound)
		}
		removed += res.DeletedCount
	}

	log.Debug().Int("nodes", len(all)).Int64("removed", removed).Msg("purged subtree")
	return all, removed, nil
}
