package midware

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"forum/db"
	"forum/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

const (
	poolKey = "global"
	idleTTL = time.Minute * 10
)

var (
	errBusy      = errors.New("server is busy")
	errForbidden = errors.New("api forbidden")

	ctx = context.Background()

	visitors = struct {
		sync.Mutex
		m map[string]*visitor
	}{m: make(map[string]*visitor)}
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// StartFlowControl refills the shared token pool, or sweeps idle
// per-ip limiters when redis is disabled
func StartFlowControl() {
	if db.LimitDB == nil {
		util.GoJob(sweepVisitors, time.Minute)
		return
	}

	poolSize := viper.GetInt64("limit.pool")
	if poolSize <= 0 {
		return
	}
	util.GoJob(func() {
		length, err := db.LimitDB.LLen(ctx, poolKey).Result()
		if err != nil {
			log.Warn().Err(err).Msg("flow control refill")
			return
		}
		if length < poolSize {
			db.LimitDB.LPush(ctx, poolKey, 1)
		}
	}, time.Minute/time.Duration(poolSize))
}

// 流量控制
func FlowController(c *gin.Context) {
	if db.LimitDB == nil {
		localLimit(c)
		return
	}
	ip := c.ClientIP()

	r, err := db.LimitDB.LPop(ctx, poolKey).Result()
	if r == "" || err != nil {
		Error(c, errBusy, http.StatusForbidden)
		return
	}

	ok, _ := db.LimitDB.Exists(ctx, ip).Result()
	if ok == 1 {
		times, _ := db.LimitDB.Incr(ctx, ip).Result()
		if times > viper.GetInt64("limit.ip") {
			Error(c, errForbidden, http.StatusForbidden)
		}
	} else {
		db.LimitDB.SetEX(ctx, ip, 1, time.Minute)
	}
}

func localLimit(c *gin.Context) {
	if !limiter(c.ClientIP()).Allow() {
		Error(c, errForbidden, http.StatusTooManyRequests)
	}
}

func limiter(ip string) *rate.Limiter {
	visitors.Lock()
	defer visitors.Unlock()

	v, ok := visitors.m[ip]
	if !ok {
		every := rate.Inf
		if perMinute := viper.GetInt("limit.ip"); perMinute > 0 {
			every = rate.Every(time.Minute / time.Duration(perMinute))
		}
		v = &visitor{limiter: rate.NewLimiter(every, viper.GetInt("limit.burst"))}
		visitors.m[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func sweepVisitors() {
	visitors.Lock()
	for ip, v := range visitors.m {
		if time.Since(v.lastSeen) > idleTTL {
			delete(visitors.m, ip)
		}
	}
	visitors.Unlock()
}
