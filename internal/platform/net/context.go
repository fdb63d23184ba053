// Package net carries request scoped values and the wire envelope shared by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	keyUserID ctxKey = "user_id"
	keyRole   ctxKey = "role"
)

// WithRequestID sets the request id the way chi's RequestID middleware does
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// WithUser annotates context with the signed in user and role
func WithUser(ctx context.Context, userID, role string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	if role != "" {
		ctx = context.WithValue(ctx, keyRole, role)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// UserID returns the signed in user on the context if present
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(keyUserID).(string)
	return v
}

// Role returns the role of the signed in user if present
func Role(ctx context.Context) string {
	v, _ := ctx.Value(keyRole).(string)
	return v
}
