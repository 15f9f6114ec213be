package dao

import (
	"context"

	"forum/model"
	"forum/util"
	"forum/util/mongox"

	"github.com/qiniu/qmgo"
	"github.com/qiniu/qmgo/options"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
	mopt "go.mongodb.org/mongo-driver/mongo/options"
)

var (
	upsert = options.UpdateOptions{UpdateOptions: mopt.Update().SetUpsert(true)}

	// array fields of a new user document
	emptyUser = bson.M{
		"stars":   bson.A{},
		"blogs":   bson.A{},
		"replies": bson.A{},
	}
)

// UserDao owns the user document: drafts, starred blogs and authored content lists.
// Operations that also touch blogs or comments go through the matching dao.
type UserDao struct {
	coll     *qmgo.Collection
	Blogs    *BlogDao
	Comments *ThreadDao
	Replies  *ThreadDao
	Tags     *TagDao
}

func NewUserDao(coll *qmgo.Collection, blogs *BlogDao, comments, replies *ThreadDao, tags *TagDao) *UserDao {
	return &UserDao{coll: coll, Blogs: blogs, Comments: comments, Replies: replies, Tags: tags}
}

// ensure creates the user document on first write
func (u *UserDao) ensure(ctx context.Context, uid pr.ObjectID) error {
	onInsert := bson.M{"drafts": bson.A{}}
	for k, v := range emptyUser {
		onInsert[k] = v
	}
	err := u.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$setOnInsert": onInsert}, upsert)
	return check("ensure user", err, ErrNotFound)
}

func (u *UserDao) GetUser(ctx context.Context, uid pr.ObjectID) (*model.User, error) {
	data := make([]model.User, 0, 1)
	err := u.coll.Aggregate(ctx, mongox.Pipeline().
		Match(bson.M{"_id": uid}).
		Lookup("blogs", "blogs", "_id", "blogList").
		Project(bson.M{
			"stars": 1, "blogs": 1, "replies": 1, "drafts": 1,
			"blogList": bson.M{"_id": 1, "title": 1, "stars": 1},
		}).Do()).All(&data)
	if err != nil {
		return nil, check("read user", err, ErrNotFound)
	}
	if len(data) == 0 {
		log.Debug().Str("user", uid.Hex()).Msg("no user found")
		return nil, ErrNotFound
	}
	return &data[0], nil
}

// CreateDraft stores d under a fresh id and registers its tags
func (u *UserDao) CreateDraft(ctx context.Context, uid pr.ObjectID, d *model.Draft) (pr.ObjectID, error) {
	d.Id = pr.NewObjectID()
	d.Tags = util.SplitTags(d.Tags)

	err := u.coll.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$push": bson.M{"drafts": d}, "$setOnInsert": emptyUser},
		upsert,
	)
	if err = check("create draft", err, ErrNotFound); err != nil {
		return pr.NilObjectID, err
	}
	log.Debug().Str("user", uid.Hex()).Str("draft", d.Id.Hex()).Msg("created draft")

	if err = u.Tags.Merge(ctx, d.Tags); err != nil {
		return d.Id, err
	}
	return d.Id, nil
}

// UpdateDraft replaces the fields of the draft with d.Id
func (u *UserDao) UpdateDraft(ctx context.Context, uid pr.ObjectID, d *model.Draft) error {
	d.Tags = util.SplitTags(d.Tags)

	filter := bson.M{"_id": uid, "drafts": bson.M{"$elemMatch": bson.M{"_id": d.Id}}}
	err := u.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"drafts.$.content":    d.Content,
		"drafts.$.title":      d.Title,
		"drafts.$.tags":       d.Tags,
		"drafts.$.coverImage": d.CoverImage,
	}})
	if err = check("update draft", err, ErrDraftNotFound); err != nil {
		log.Debug().Str("user", uid.Hex()).Str("draft", d.Id.Hex()).Err(err).Msg("unable to update draft")
		return err
	}

	return u.Tags.Merge(ctx, d.Tags)
}

func (u *UserDao) ReadDraft(ctx context.Context, uid, did pr.ObjectID) (*model.Draft, error) {
	var user model.User
	err := u.coll.Find(ctx, bson.M{"_id": uid, "drafts._id": did}).
		Select(bson.M{"drafts": bson.M{"$elemMatch": bson.M{"_id": did}}}).
		One(&user)
	if err = check("read draft", err, ErrDraftNotFound); err != nil {
		return nil, err
	}
	if len(user.Drafts) == 0 {
		return nil, ErrDraftNotFound
	}
	return &user.Drafts[0], nil
}

// ReadDrafts lists the drafts of uid, empty for unknown users
func (u *UserDao) ReadDrafts(ctx context.Context, uid pr.ObjectID) ([]model.Draft, error) {
	var user model.User
	err := u.coll.Find(ctx, bson.M{"_id": uid}).Select(bson.M{"drafts": 1}).One(&user)
	if err = check("read drafts", err, ErrNotFound); err != nil && err != ErrNotFound {
		return nil, err
	}
	if user.Drafts == nil {
		user.Drafts = []model.Draft{}
	}
	return user.Drafts, nil
}

func (u *UserDao) DeleteDraft(ctx context.Context, uid, did pr.ObjectID) error {
	err := u.coll.UpdateOne(ctx,
		bson.M{"_id": uid, "drafts._id": did},
		bson.M{"$pull": bson.M{"drafts": bson.M{"_id": did}}},
	)
	if err = check("delete draft", err, ErrDraftNotFound); err != nil {
		return err
	}
	log.Debug().Str("user", uid.Hex()).Str("draft", did.Hex()).Msg("deleted draft")
	return nil
}

// PublishDraft turns a draft into a blog: create the blog, list it on the
// user, drop the draft. A failed step undoes the ones before it.
func (u *UserDao) PublishDraft(ctx context.Context, uid, did pr.ObjectID) (pr.ObjectID, error) {
	d, err := u.ReadDraft(ctx, uid, did)
	if err != nil {
		return pr.NilObjectID, err
	}

	s := newSaga("publish draft")

	bid, err := u.Blogs.Create(ctx, model.NewBlog(uid, d))
	if err != nil {
		return pr.NilObjectID, err
	}
	s.done("create blog", func(ctx context.Context) error {
		return u.Blogs.Delete(ctx, bid)
	})

	err = u.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$push": bson.M{"blogs": bid}})
	if err = check("list user blog", err, ErrNotFound); err != nil {
		return pr.NilObjectID, s.abort(err)
	}
	s.done("list user blog", func(ctx context.Context) error {
		return u.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$pull": bson.M{"blogs": bid}})
	})

	if err = u.DeleteDraft(ctx, uid, did); err != nil {
		return pr.NilObjectID, s.abort(err)
	}

	log.Info().Str("user", uid.Hex()).Str("draft", did.Hex()).Str("blog", bid.Hex()).Msg("published draft")
	return bid, nil
}

// DeleteBlog removes a blog written by uid with its comment and reply trees,
// then unlists it from the author and from every user who starred it
func (u *UserDao) DeleteBlog(ctx context.Context, uid, bid pr.ObjectID) error {
	roots, err := u.Blogs.DeleteOwned(ctx, bid, uid)
	if err != nil {
		return err
	}

	ids, _, perr := u.Comments.forest.Purge(ctx, roots)
	if perr != nil {
		log.Error().Err(perr).Str("blog", bid.Hex()).Msg("purge blog threads failed")
	}
	if err = u.unlist(ctx, ids); err != nil {
		return err
	}

	err = u.coll.UpdateOne(ctx, bson.M{"_id": uid, "blogs": bid}, bson.M{"$pull": bson.M{"blogs": bid}})
	if err = check("unlist user blog", err, ErrNotFound); err != nil {
		log.Error().Err(err).Str("user", uid.Hex()).Str("blog", bid.Hex()).Msg("blog deleted but still listed")
		return err
	}

	if _, err = u.coll.UpdateAll(ctx, bson.M{"stars": bid}, bson.M{"$pull": bson.M{"stars": bid}}); err != nil {
		return check("unstar deleted blog", err, ErrNotFound)
	}
	return perr
}

// unlist drops purged comment and reply ids from the lists of their authors
func (u *UserDao) unlist(ctx context.Context, ids []pr.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := u.coll.UpdateAll(ctx,
		bson.M{"replies": bson.M{"$in": ids}},
		bson.M{"$pull": bson.M{"replies": bson.M{"$in": ids}}},
	)
	if err != nil {
		return check("unlist user replies", err, ErrNotFound)
	}
	return nil
}

// AddStar stars bid for uid; the blog counter only moves if the user side changed
func (u *UserDao) AddStar(ctx context.Context, uid, bid pr.ObjectID) error {
	if err := u.ensure(ctx, uid); err != nil {
		return err
	}

	err := u.coll.UpdateOne(ctx,
		bson.M{"_id": uid, "stars": bson.M{"$ne": bid}},
		bson.M{"$addToSet": bson.M{"stars": bid}},
	)
	if err = check("add star", err, ErrVoteUnchanged); err != nil {
		return err
	}

	if err = u.Blogs.UpdateStars(ctx, bid, "inc"); err != nil {
		return u.pullStar(ctx, uid, bid, err)
	}
	return nil
}

func (u *UserDao) RemoveStar(ctx context.Context, uid, bid pr.ObjectID) error {
	err := u.coll.UpdateOne(ctx,
		bson.M{"_id": uid, "stars": bid},
		bson.M{"$pull": bson.M{"stars": bid}},
	)
	if err = check("remove star", err, ErrVoteUnchanged); err != nil {
		return err
	}

	// a missing blog or a zero counter keeps the unstar
	if err = u.Blogs.UpdateStars(ctx, bid, "dec"); IsStoreError(err) {
		if uerr := u.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$addToSet": bson.M{"stars": bid}}); uerr != nil {
			log.Error().Err(uerr).Str("user", uid.Hex()).Str("blog", bid.Hex()).Msg("restore star failed")
		}
		return err
	}
	return nil
}

func (u *UserDao) pullStar(ctx context.Context, uid, bid pr.ObjectID, cause error) error {
	if err := u.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$pull": bson.M{"stars": bid}}); err != nil {
		log.Error().Err(err).Str("user", uid.Hex()).Str("blog", bid.Hex()).Msg("unstar failed")
	}
	return cause
}

// AddComment creates c under p and lists it on the user. A failure on the
// user side is returned along with the id of the comment already created.
func (u *UserDao) AddComment(ctx context.Context, t *ThreadDao, uid pr.ObjectID, c *model.Comment, p model.Parent) (pr.ObjectID, error) {
	c.Author = uid
	cid, err := t.Create(ctx, c, p)
	if err != nil {
		return pr.NilObjectID, err
	}

	if err = u.ensure(ctx, uid); err == nil {
		err = u.coll.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$push": bson.M{"replies": cid}})
		err = check("list user "+t.Kind.String(), err, ErrNotFound)
	}
	if err != nil {
		log.Error().Err(err).Str("user", uid.Hex()).Str("id", cid.Hex()).Msg("comment created but not listed")
		return cid, err
	}
	return cid, nil
}

// DeleteComment removes a comment written by uid with its subtree and
// unlists every removed node from its author
func (u *UserDao) DeleteComment(ctx context.Context, t *ThreadDao, uid, cid pr.ObjectID, p model.Parent) error {
	ok, err := t.IsAuthor(ctx, cid, uid)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFoundOrForbidden
	}

	ids, err := t.Delete(ctx, cid, p)
	if uerr := u.unlist(ctx, ids); uerr != nil {
		log.Error().Err(uerr).Str("user", uid.Hex()).Str("id", cid.Hex()).Msg(t.Kind.String() + " deleted but still listed")
		if err == nil {
			err = uerr
		}
	}
	return err
}
