package core

// ServiceStatus is the health of a module as reported on /healthz.
type ServiceStatus string

const (
	StatusHealthy   ServiceStatus = "HEALTHY"
	StatusUnhealthy ServiceStatus = "UNHEALTHY"
	StatusUnknown   ServiceStatus = "UNKNOWN"
	StatusDegraded  ServiceStatus = "DEGRADED"
)
