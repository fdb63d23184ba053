// Package module is the contract modules satisfy and the port lookups between them
package module

import (
	phttp "backoffice/internal/platform/net/http"
)

// Module can mount routes and expose ports to other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
