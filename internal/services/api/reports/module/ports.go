package module

import (
	"backoffice/internal/platform/net/middleware"
	"backoffice/internal/services/api/reports/domain"
)

// Ports are what other modules may use from reports
type Ports struct {
	Reports domain.ServicePort
}

// Deps are the ports reports expects from other modules
type Deps struct {
	// Auth guards every route, a nil port answers 401
	Auth middleware.AuthPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
