package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/endpoints/observability"
	"github.com/kbukum/endpoints/version"
)

// healthResponse is the /health body.
type healthResponse struct {
	*observability.ServiceHealth
	Timestamp string `json:"timestamp"`
}

// Health returns a handler that aggregates the given checkers. A down
// component answers 503; degraded still answers 200.
func Health(serviceName string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(serviceName, version.Version)
		for _, hc := range checkers {
			sh.AddComponent(hc.CheckHealth(c.Request.Context()))
		}

		status := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, healthResponse{
			ServiceHealth: sh,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
		})
	}
}
