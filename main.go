package main

import (
	"context"
	"errors"
	"time"

	"forum/cache"
	"forum/dao"
	"forum/db"
	"forum/midware"
	"forum/model"
	"forum/svc/blog"
	"forum/svc/comment"
	"forum/svc/draft"
	"forum/svc/report"
	"forum/svc/user"
	"forum/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var errNoRoute = errors.New("Resource Not found")

func router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), midware.Logger, midware.Cors(), midware.FlowController, midware.Zip)

	r.NoRoute(func(c *gin.Context) {
		midware.Error(c, errNoRoute)
	})

	blog.Register(r.Group("/blogs"))

	comment.Register(r.Group("/comments"), model.KIND_COMMENT, func() *dao.ThreadDao { return dao.Comments })
	comment.Register(r.Group("/replies"), model.KIND_REPLY, func() *dao.ThreadDao { return dao.Replies })

	report.Register(r.Group("/reports"))
	draft.Register(r.Group("/drafts"))
	user.Register(r.Group("/users"))

	return r
}

func main() {
	loadConfig()
	util.InitLog(viper.GetString("log.level"))
	gin.SetMode(viper.GetString("server.mode"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	if err := db.Open(ctx); err != nil {
		log.Fatal().Err(err).Msg("init database")
	}
	cancel()
	defer db.Close(context.Background())

	dao.Init()
	cache.Tags.Refresh(dao.Tags.All, viper.GetDuration("tags.refresh"))
	midware.StartFlowControl()

	panic(router().Run(viper.GetString("server.addr")))
}
