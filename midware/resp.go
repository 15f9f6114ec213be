package midware

import (
	"errors"
	"net/http"

	"forum/dao"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func render(c *gin.Context, code int, body bson.M) {
	src, err := json.Marshal(body)
	if err != nil {
		log.Error().Err(err).Msg("encode response")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Abort()
	c.Data(code, "application/json; charset=utf-8", src)
}

// Auto picks the response from err: business rejections are 400,
// a duplicate report is a 200 with status false, store failures are 500
func Auto(c *gin.Context, err error, data any, msg ...string) {
	switch {
	case err == nil:
		Success(c, data, msg...)
	case errors.Is(err, dao.ErrDuplicateReport):
		Warning(c, err.Error())
	case dao.IsStoreError(err):
		Fail(c, err)
	default:
		Error(c, err)
	}
}

// List is Auto for collections, adding their length
func List[T any](c *gin.Context, err error, data []T) {
	if err != nil {
		Auto(c, err, nil)
		return
	}
	render(c, http.StatusOK, bson.M{
		"status": true, "data": data, "length": len(data),
	})
}

func Error(c *gin.Context, err error, code ...int) {
	if len(code) > 0 {
		render(c, code[0], bson.M{
			"status": false, "msg": err.Error(),
		})
	} else {
		render(c, http.StatusBadRequest, bson.M{
			"status": false, "msg": err.Error(),
		})
	}
}

// Fail reports a store failure with its detail
func Fail(c *gin.Context, err error) {
	render(c, http.StatusInternalServerError, bson.M{
		"status": false, "msg": "internal error", "err": err.Error(),
	})
}

func Success(c *gin.Context, data any, msg ...string) {
	if len(msg) > 0 {
		render(c, http.StatusOK, bson.M{
			"status": true, "data": data, "msg": msg[0],
		})
	} else {
		render(c, http.StatusOK, bson.M{
			"status": true, "data": data,
		})
	}
}

func Warning(c *gin.Context, msg string) {
	render(c, http.StatusOK, bson.M{
		"status": false, "msg": msg,
	})
}
