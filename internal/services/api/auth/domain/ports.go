package domain

import "context"

// ServicePort defines the service contract for auth
type ServicePort interface {
	Login(ctx context.Context, in LoginInput) (Session, error)
	Logout(ctx context.Context, token string) (bool, error)
	Current(ctx context.Context, token string) (Identity, error)
}

// TokenPort resolves a bearer token to a user id for the auth middleware
type TokenPort interface {
	ParseToken(token string) (userID string, tenantID string, err error)
}
