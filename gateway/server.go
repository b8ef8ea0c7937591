// Package gateway exposes the ONVIF capability clients as JSON endpoints.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	onvif "github.com/SridarDhandapani/onvif-gateway"
)

// Server is the HTTP gateway. Every request builds its own capability
// client from the request body and discards it when done.
type Server struct {
	engine   *gin.Engine
	settings onvif.Settings
	log      zerolog.Logger
	metrics  *metrics
}

// New builds the gateway around already resolved client settings
func New(settings onvif.Settings, log zerolog.Logger) *Server {
	clientLog := log.With().Str("component", "onvif").Logger()
	settings.Logger = &clientLog

	s := &Server{
		engine:   gin.New(),
		settings: settings,
		log:      log,
		metrics:  newMetrics(),
	}
	s.engine.Use(gin.Recovery(), requestID(), accessLog(log))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", s.metrics.handler())

	api := s.engine.Group("/api/v1")

	api.POST("/device_information", handle(s, "device_information", onvif.NewDeviceClient, nil,
		func(ctx context.Context, c *onvif.DeviceClient, _ request) (onvif.DeviceInformation, error) {
			return c.GetDeviceInformation(ctx)
		}))
	api.POST("/system_date_time", handle(s, "system_date_time", onvif.NewDeviceClient, nil,
		func(ctx context.Context, c *onvif.DeviceClient, _ request) (onvif.SystemDateTime, error) {
			return c.GetSystemDateAndTime(ctx)
		}))
	api.POST("/system_uris", handle(s, "system_uris", onvif.NewDeviceClient, nil,
		func(ctx context.Context, c *onvif.DeviceClient, _ request) (onvif.SystemUris, error) {
			return c.GetSystemUris(ctx)
		}))
	api.POST("/hostname", handle(s, "hostname", onvif.NewDeviceClient, nil,
		func(ctx context.Context, c *onvif.DeviceClient, _ request) (onvif.Hostname, error) {
			return c.GetHostname(ctx)
		}))
	api.POST("/users", handle(s, "users", onvif.NewDeviceClient, nil,
		func(ctx context.Context, c *onvif.DeviceClient, _ request) (onvif.Users, error) {
			return c.GetUsers(ctx)
		}))

	api.POST("/audio_outputs", handle(s, "audio_outputs", onvif.NewMediaClient, nil,
		func(ctx context.Context, c *onvif.MediaClient, _ request) (onvif.AudioOutputs, error) {
			return c.GetAudioOutputs(ctx)
		}))
	api.POST("/profiles", handle(s, "profiles", onvif.NewMediaClient, nil,
		func(ctx context.Context, c *onvif.MediaClient, _ request) (onvif.MediaProfiles, error) {
			return c.GetProfiles(ctx)
		}))
	api.POST("/stream_uri", handle(s, "stream_uri", onvif.NewMediaClient, requireProfileToken,
		func(ctx context.Context, c *onvif.MediaClient, req request) (onvif.MediaURI, error) {
			return c.GetStreamUri(ctx, req.ProfileToken)
		}))

	api.POST("/video_encoder_configurations", handle(s, "video_encoder_configurations", onvif.NewMedia2Client, nil,
		func(ctx context.Context, c *onvif.Media2Client, _ request) (onvif.VideoEncoderConfigurations, error) {
			return c.GetVideoEncoderConfigurations(ctx)
		}))
	api.POST("/osds", handle(s, "osds", onvif.NewMedia2Client, nil,
		func(ctx context.Context, c *onvif.Media2Client, req request) (onvif.OSDs, error) {
			return c.GetOSDs(ctx, req.ConfigurationToken)
		}))

	api.POST("/replay_uri", handle(s, "replay_uri", onvif.NewReplayClient, nil,
		func(ctx context.Context, c *onvif.ReplayClient, req request) (onvif.ReplayURI, error) {
			return c.GetReplayUri(ctx, req.RecordingToken)
		}))
}

// Handler returns the gateway as a plain http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then drains in-flight requests for
// up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("ONVIF gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down ONVIF gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
