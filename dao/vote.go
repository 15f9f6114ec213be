package dao

import (
	"context"

	"forum/util/mongox"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

type VoteOp uint8

const (
	UPVOTE VoteOp = iota + 1
	DOWNVOTE
	REMOVE_UPVOTE
	REMOVE_DOWNVOTE
)

func (op VoteOp) String() string {
	switch op {
	case UPVOTE:
		return "upvote"
	case DOWNVOTE:
		return "downvote"
	case REMOVE_UPVOTE:
		return "removeUpvote"
	case REMOVE_DOWNVOTE:
		return "removeDownvote"
	}
	return "unknown"
}

// voteFilter only matches when the vote would change something
func voteFilter(op VoteOp, id, uid pr.ObjectID) (bson.M, error) {
	switch op {
	case UPVOTE:
		return bson.M{"_id": id, "upvotes": bson.M{"$ne": uid}}, nil
	case DOWNVOTE:
		return bson.M{"_id": id, "downvotes": bson.M{"$ne": uid}}, nil
	case REMOVE_UPVOTE:
		return bson.M{"_id": id, "upvotes": uid}, nil
	case REMOVE_DOWNVOTE:
		return bson.M{"_id": id, "downvotes": uid}, nil
	}
	return nil, ErrInvalidCommand
}

// votePipeline mutates the vote sets and recounts both in the same write.
// Adding a vote also drops the opposite one.
func votePipeline(op VoteOp, uid pr.ObjectID) ([]bson.D, error) {
	set := bson.M{}
	switch op {
	case UPVOTE:
		set["upvotes"] = mongox.With("upvotes", uid)
		set["downvotes"] = mongox.Without("downvotes", uid)
	case DOWNVOTE:
		set["downvotes"] = mongox.With("downvotes", uid)
		set["upvotes"] = mongox.Without("upvotes", uid)
	case REMOVE_UPVOTE:
		set["upvotes"] = mongox.Without("upvotes", uid)
	case REMOVE_DOWNVOTE:
		set["downvotes"] = mongox.Without("downvotes", uid)
	default:
		return nil, ErrInvalidCommand
	}

	return mongox.Pipeline().
		Set(set).
		Set(bson.M{
			"upvotesCount":   mongox.Size("upvotes"),
			"downvotesCount": mongox.Size("downvotes"),
		}).Do(), nil
}

// Vote applies op for uid. ErrVoteUnchanged covers both a missing entity and
// a vote already in the requested state.
func (e *Entity[T]) Vote(ctx context.Context, op VoteOp, id, uid pr.ObjectID) error {
	filter, err := voteFilter(op, id, uid)
	if err != nil {
		return err
	}
	update, err := votePipeline(op, uid)
	if err != nil {
		return err
	}

	err = e.coll.UpdateOne(ctx, filter, update)
	if err = check(e.op(op.String()), err, ErrVoteUnchanged); err != nil {
		return err
	}

	log.Debug().Str("kind", e.Kind.String()).Str("id", id.Hex()).Str("user", uid.Hex()).Msg(op.String())
	return nil
}

func (e *Entity[T]) Upvote(ctx context.Context, id, uid pr.ObjectID) error {
	return e.Vote(ctx, UPVOTE, id, uid)
}

func (e *Entity[T]) Downvote(ctx context.Context, id, uid pr.ObjectID) error {
	return e.Vote(ctx, DOWNVOTE, id, uid)
}

func (e *Entity[T]) RemoveUpvote(ctx context.Context, id, uid pr.ObjectID) error {
	return e.Vote(ctx, REMOVE_UPVOTE, id, uid)
}

func (e *Entity[T]) RemoveDownvote(ctx context.Context, id, uid pr.ObjectID) error {
	return e.Vote(ctx, REMOVE_DOWNVOTE, id, uid)
}
