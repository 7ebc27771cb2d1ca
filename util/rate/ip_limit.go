package rate

import (
	"context"
	"sync"
	"time"

	"github.com/Conflux-Chain/go-conflux-util/viper"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Option struct {
	Rate  rate.Limit
	Burst int
}

// Config is the per IP rate limit configuration.
type Config struct {
	Enabled bool
	// Requests per second allowed for each IP
	Rate float64 `default:"10"`
	// Max requests allowed in a burst for each IP
	Burst int `default:"20"`
	// Interval to purge inactive visitors
	GCInterval time.Duration `default:"1m"`
	// Visitors inactive for a while will be purged
	GCTimeout time.Duration `default:"10m"`
}

type visitor struct {
	limiter  *rate.Limiter // token bucket
	lastSeen time.Time     // used for GC when visitor inactive for a while
}

// IpLimiter is used to limit requests from different users.
type IpLimiter struct {
	Option

	// ip => visitor
	visitors map[string]*visitor

	mu sync.Mutex
}

// MustNewIpLimiterFromViper creates IP limiter from configuration, or returns nil if disabled.
func MustNewIpLimiterFromViper() (*IpLimiter, Config) {
	var conf Config
	viper.MustUnmarshalKey("rpc.rateLimit", &conf)

	if !conf.Enabled {
		return nil, conf
	}

	logrus.WithFields(logrus.Fields{
		"rate":  conf.Rate,
		"burst": conf.Burst,
	}).Info("Per IP rate limit enabled")

	return NewIpLimiter(rate.Limit(conf.Rate), conf.Burst), conf
}

func NewIpLimiter(rate rate.Limit, burst int) *IpLimiter {
	return &IpLimiter{
		Option:   Option{rate, burst},
		visitors: make(map[string]*visitor),
	}
}

func (l *IpLimiter) Allow(ip string, n int) bool {
	return l.allowAt(ip, n, time.Now())
}

func (l *IpLimiter) allowAt(ip string, n int, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(l.Rate, l.Burst),
		}
		l.visitors[ip] = v
	}

	v.lastSeen = now

	return v.limiter.AllowN(now, n)
}

func (l *IpLimiter) GC(timeout time.Duration) {
	l.gcAt(timeout, time.Now())
}

func (l *IpLimiter) gcAt(timeout time.Duration, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, v := range l.visitors {
		if v.lastSeen.Add(timeout).Before(now) {
			delete(l.visitors, ip)
		}
	}
}

// ScheduleGC purges inactive visitors periodically until context done.
func (l *IpLimiter) ScheduleGC(ctx context.Context, interval, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.GC(timeout)
		}
	}
}

func (l *IpLimiter) numVisitors() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.visitors)
}
