// Package http writes the json envelope and hosts the chi backed server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"backoffice/internal/platform/logger"
	pnet "backoffice/internal/platform/net"
)

// Envelope is the body shape of every json response
type Envelope = pnet.Wire

// JSON encodes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Debug().Err(err).Msg("client went away mid response")
	}
}

// RespondError writes err as an error envelope, 5xx causes are logged with the request id
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	if status >= stdhttp.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	JSON(w, status, body)
}

// Response is what return style handlers produce
// an error Body becomes an error envelope and Status is ignored
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		w.Header()[k] = append(w.Header()[k], vv...)
	}
	switch body := resp.Body.(type) {
	case error:
		RespondError(w, r, body)
	default:
		if resp.Status == stdhttp.StatusNoContent {
			w.WriteHeader(resp.Status)
			return
		}
		status, env := pnet.Success(resp.Status, body, pnet.RequestID(r.Context()))
		JSON(w, status, env)
	}
}

// Handle turns a Response returning func into a handler
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 with data
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent is a 204 without a body
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error is an error response, status comes from the error code
func Error(err error) Response { return Response{Body: err} }
