package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// IngestsTotal counts accepted lead-capture webhooks.
	IngestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadrelay_ingests_total",
		Help: "Number of lead submissions accepted for storage.",
	})

	// LookupsTotal counts agent lookups, partitioned by outcome.
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadrelay_lookups_total",
		Help: "Number of agent variable lookups by result.",
	}, []string{"result"})
)

// Handler exposes the default prometheus registry on a gin route.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
