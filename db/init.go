package db

import (
	"context"

	"forum/util"

	"github.com/go-redis/redis/v8"
	"github.com/qiniu/qmgo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	Client *qmgo.Client

	LimitDB *redis.Client // flow control, nil when disabled

	ForumDB *qmgo.Database

	Blog    *qmgo.Collection // blogs
	Comment *qmgo.Collection // comments under blogs
	Reply   *qmgo.Collection // replies, same shape as comments
	User    *qmgo.Collection // users with embedded drafts
	Tag     *qmgo.Collection // single tag registry document
)

type index struct {
	coll    **qmgo.Collection
	uniques []string
	indexes []string
}

// Open connects to mongo (and redis when enabled) and ensures indexes
func Open(ctx context.Context) error {
	var err error
	Client, err = qmgo.NewClient(ctx, &qmgo.Config{Uri: viper.GetString("mongo.uri")})
	if err != nil {
		return err
	}
	if err = Client.Ping(5); err != nil {
		return err
	}

	ForumDB = Client.Database(viper.GetString("mongo.database"))

	Blog = ForumDB.Collection("blogs")
	Comment = ForumDB.Collection("comments")
	Reply = ForumDB.Collection("replies")
	User = ForumDB.Collection("users")
	Tag = ForumDB.Collection("tags")

	indexes := []index{
		{&Blog, nil, []string{"author", "tags", "-dateTime", "reports.userId"}},
		{&Comment, nil, []string{"author", "reports.userId"}},
		{&Reply, nil, []string{"author", "reports.userId"}},
		{&User, nil, []string{"drafts._id"}},
	}

	pool := util.NewPool(len(indexes))
	for _, i := range indexes {
		i := i
		pool.Go(func() error {
			return (*i.coll).EnsureIndexes(ctx, i.uniques, i.indexes)
		})
	}
	if err = pool.Wait(); err != nil {
		return err
	}

	// Redis
	if viper.GetBool("redis.enable") {
		LimitDB = redis.NewClient(&redis.Options{
			Addr: viper.GetString("redis.addr"), DB: viper.GetInt("redis.db"),
		})
		if err = LimitDB.Ping(ctx).Err(); err != nil {
			return err
		}
	}

	log.Info().Str("db", ForumDB.GetDatabaseName()).Msg("init database success")
	return nil
}

// Close releases the mongo and redis clients
func Close(ctx context.Context) {
	if LimitDB != nil {
		LimitDB.Close()
	}
	if Client != nil {
		Client.Close(ctx)
	}
}
