package net

import (
	"net/http"

	perr "backoffice/internal/platform/errors"
)

// Wire is the json body of every api response
// success fills Data, failure fills Code and Error and sometimes Field
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// Success wraps data, status 0 means 200
func Success(status int, data any, reqID string) (int, Wire) {
	if status == 0 {
		status = http.StatusOK
	}
	w := envelope(status, reqID)
	w.Data = data
	return status, w
}

// Error maps err to its status and client safe message, a nil err is a bare 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return Success(0, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	e := perr.WireFrom(err)
	w := envelope(status, reqID)
	w.Code, w.Error, w.Field = e.Code, e.Message, e.Field
	return status, w
}
