package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	onvif "github.com/SridarDhandapani/onvif-gateway"
)

const kindInvalidRequest = "invalid_request"

// request is the body every endpoint accepts: the device to contact plus the
// operation parameters a few endpoints need.
type request struct {
	onvif.ConnectionTarget
	ProfileToken       string `json:"profile_token"`
	RecordingToken     string `json:"recording_token"`
	ConfigurationToken string `json:"configuration_token"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// handle binds the body, creates the capability client, runs invoke and
// writes either the typed record or the classified error.
func handle[C any, T any](
	s *Server,
	operation string,
	open func(context.Context, onvif.ConnectionTarget, onvif.Settings) (C, error),
	check func(request) error,
	invoke func(context.Context, C, request) (T, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			s.reject(c, operation, err)
			return
		}
		if check != nil {
			if err := check(req); err != nil {
				s.reject(c, operation, err)
				return
			}
		}

		ctx := c.Request.Context()
		start := time.Now()

		result, err := func() (T, error) {
			client, err := open(ctx, req.ConnectionTarget, s.settings)
			if err != nil {
				var zero T
				return zero, err
			}
			return invoke(ctx, client, req)
		}()
		if err != nil {
			s.fail(c, operation, req.ConnectionTarget, start, err)
			return
		}

		s.metrics.observe(operation, "ok", time.Since(start))
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) reject(c *gin.Context, operation string, err error) {
	s.metrics.rejected(operation)
	c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{
		Kind:    kindInvalidRequest,
		Message: err.Error(),
	}})
}

func (s *Server) fail(c *gin.Context, operation string, target onvif.ConnectionTarget, start time.Time, err error) {
	kind := onvif.KindOf(err)
	if kind == "" {
		kind = onvif.KindServiceInvocation
	}
	s.metrics.observe(operation, string(kind), time.Since(start))

	s.log.Error().
		Err(err).
		Str("operation", operation).
		Str("kind", string(kind)).
		Str("target", target.String()).
		Str(requestIDKey, c.GetString(requestIDKey)).
		Msg("ONVIF operation failed")

	c.JSON(statusOf(kind), gin.H{"error": errorBody{
		Kind:    string(kind),
		Message: err.Error(),
	}})
}

// statusOf maps an error kind to the HTTP status returned to the caller
func statusOf(kind onvif.ErrorKind) int {
	if kind == onvif.KindTimeout {
		return http.StatusGatewayTimeout
	}
	return http.StatusConflict
}

func requireProfileToken(req request) error {
	if req.ProfileToken == "" {
		return errors.New("profile_token is required")
	}
	return nil
}
