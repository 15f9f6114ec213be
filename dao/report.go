package dao

import (
	"context"

	"forum/model"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

// Report appends r to the entity unless r.UserId already reported it.
// A zero match is told apart as duplicate or missing target by a second lookup.
func (e *Entity[T]) Report(ctx context.Context, id pr.ObjectID, r *model.Report) (pr.ObjectID, error) {
	r.Id = pr.NewObjectID()

	filter := bson.M{"_id": id, "reports.userId": bson.M{"$ne": r.UserId}}
	err := e.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"reports": r}})
	if err == nil {
		log.Debug().Str("kind", e.Kind.String()).Str("id", id.Hex()).Str("report", r.Id.Hex()).Msg("reported")
		return r.Id, nil
	}
	if err = check(e.op("report"), err, ErrTargetNotFound); err != ErrTargetNotFound {
		return pr.NilObjectID, err
	}

	n, err := e.coll.Find(ctx, bson.M{"_id": id}).Count()
	if err != nil {
		return pr.NilObjectID, check(e.op("report"), err, ErrTargetNotFound)
	}
	if n == 0 {
		log.Warn().Str("kind", e.Kind.String()).Str("id", id.Hex()).Msg("report target not found")
		return pr.NilObjectID, ErrTargetNotFound
	}

	log.Debug().Str("kind", e.Kind.String()).Str("id", id.Hex()).Str("user", r.UserId.Hex()).Msg("already reported")
	return pr.NilObjectID, ErrDuplicateReport
}
