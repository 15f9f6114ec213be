package midware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const requestIdHeader = "X-Request-Id"

// Logger tags each request with an id and logs it once served
func Logger(c *gin.Context) {
	rid := c.GetHeader(requestIdHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Header(requestIdHeader, rid)
	c.Set("rid", rid)

	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	var ev *zerolog.Event
	switch {
	case status >= 500:
		ev = log.Error()
	case status >= 400:
		ev = log.Warn()
	default:
		ev = log.Debug()
	}
	ev.Str("rid", rid).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Dur("cost", time.Since(start)).
		Str("ip", c.ClientIP()).
		Msg("request")
}
