package observability

import "context"

// HealthStatus is up, degraded or down.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusDown     HealthStatus = "down"
)

var severity = map[HealthStatus]int{
	HealthStatusUp:       0,
	HealthStatusDegraded: 1,
	HealthStatusDown:     2,
}

// Health is one component's report.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthChecker reports the health of one component.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// ServiceHealth is the /health body: the worst component status wins.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth starts out up with no components.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{Service: service, Status: HealthStatusUp, Version: version}
}

// AddComponent records h and lowers the service status to h's if worse.
func (sh *ServiceHealth) AddComponent(h Health) {
	sh.Components = append(sh.Components, h)
	if severity[h.Status] > severity[sh.Status] {
		sh.Status = h.Status
	}
}

// Availability is anything that can say whether it can serve, such as a
// provider.
type Availability interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// AvailabilityChecker turns an Availability into a HealthChecker. When
// Degraded reports true an available target is degraded with its message,
// as for a dispatcher answering with the fallback response.
type AvailabilityChecker struct {
	Target   Availability
	Degraded func() (bool, string)
}

func (c AvailabilityChecker) CheckHealth(ctx context.Context) Health {
	h := Health{Name: c.Target.Name(), Status: HealthStatusUp}
	switch {
	case !c.Target.IsAvailable(ctx):
		h.Status, h.Message = HealthStatusDown, "not available"
	case c.Degraded != nil:
		if degraded, msg := c.Degraded(); degraded {
			h.Status, h.Message = HealthStatusDegraded, msg
		}
	}
	return h
}
