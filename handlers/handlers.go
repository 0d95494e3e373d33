package handlers

import (
	"net/http"

	"albumserver/sharing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Response struct {
	Error string       `json:"error"`
	Code  sharing.Kind `json:"code,omitempty"`
}

var OKResponse = Response{}

// LoginLimits configures the durable login throttle, zero attempts turns it off
type LoginLimits struct {
	Attempts int
	Window   int64 // seconds
}

// API holds what the JSON end-points need
type API struct {
	Sharing *sharing.Service
	DB      *gorm.DB
	Log     zerolog.Logger
	Login   LoginLimits
}

var statusByKind = map[sharing.Kind]int{
	sharing.KindNotAuthenticated:       http.StatusUnauthorized,
	sharing.KindNotAMember:             http.StatusForbidden,
	sharing.KindForbidden:              http.StatusForbidden,
	sharing.KindAlreadyMember:          http.StatusConflict,
	sharing.KindDuplicateInvite:        http.StatusConflict,
	sharing.KindInviteQuotaExceeded:    http.StatusConflict,
	sharing.KindInvalidOrExpiredInvite: http.StatusGone,
	sharing.KindMaxUsesReached:         http.StatusGone,
	sharing.KindEmailMismatch:          http.StatusForbidden,
	sharing.KindNotFound:               http.StatusNotFound,
	sharing.KindInvalidArgument:        http.StatusUnprocessableEntity,
	sharing.KindRateLimited:            http.StatusTooManyRequests,
	sharing.KindStoreFailure:           http.StatusInternalServerError,
}

// Fail writes a sharing error with its own message and kind.
// Store failures are logged and hidden behind a generic message.
func (a *API) Fail(c *gin.Context, err error) {
	kind := sharing.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if kind == sharing.KindStoreFailure {
		a.Log.Error().Err(err).Str("path", c.Request.URL.Path).Str("request_id", c.GetString("request_id")).Msg("request failed")
		c.JSON(status, Response{Error: sharing.ErrStoreFailure.Message, Code: kind})
		return
	}
	c.JSON(status, Response{Error: messageOf(err), Code: kind})
}

func messageOf(err error) string {
	var e *sharing.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Error: err.Error(), Code: sharing.KindInvalidArgument})
}
