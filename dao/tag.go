package dao

import (
	"context"

	"forum/model"
	"forum/util"

	"github.com/qiniu/qmgo"
	"go.mongodb.org/mongo-driver/bson"
)

const registryId = "registry"

type TagDao struct {
	coll *qmgo.Collection
}

func NewTagDao(coll *qmgo.Collection) *TagDao {
	return &TagDao{coll: coll}
}

// Merge adds tags to the registry, creating it on first use
func (t *TagDao) Merge(ctx context.Context, tags []string) error {
	tags = util.SplitTags(tags)
	if len(tags) == 0 {
		return nil
	}

	err := t.coll.UpdateOne(ctx,
		bson.M{"_id": registryId},
		bson.M{"$addToSet": bson.M{"tags": bson.M{"$each": tags}}},
		upsert,
	)
	return check("merge tags", err, ErrNotFound)
}

// All returns every registered tag, empty before the first merge
func (t *TagDao) All(ctx context.Context) ([]string, error) {
	var reg model.TagRegistry
	err := t.coll.Find(ctx, bson.M{"_id": registryId}).One(&reg)
	if err = check("read tags", err, ErrNotFound); err != nil {
		if err == ErrNotFound {
			return []string{}, nil
		}
		return nil, err
	}
	if reg.Tags == nil {
		reg.Tags = []string{}
	}
	return reg.Tags, nil
}
