package module

import (
	"backoffice/internal/platform/net/middleware"
	authdom "backoffice/internal/services/api/auth/domain"
)

// Ports is what other modules consume from auth
type Ports struct {
	// Auth guards routes through httpkit.Protected
	Auth middleware.AuthPort
	// Sessions exposes login, logout and the current identity
	Sessions authdom.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
