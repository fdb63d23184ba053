package module

import (
	"time"

	"backoffice/internal/platform/config"
	authsvc "backoffice/internal/services/api/auth/service"
)

// FromConfig reads CORE_API_AUTH_* values, the account defaults to admin/admin
func FromConfig(cfg config.Conf) authsvc.Options {
	ac := cfg.Prefix("AUTH_")
	return authsvc.Options{
		Username:      ac.MayString("USER", "admin"),
		Password:      ac.MayString("PASSWORD", "admin"),
		Role:          ac.MayString("ROLE", "admin"),
		LookupTimeout: ac.MayDuration("LOOKUP_TIMEOUT", 2*time.Second),
	}
}
