package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"wcidash/internal/config"
	"wcidash/internal/models"
	"wcidash/internal/observability"
)

type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}

// paramError is a client mistake in a path or query parameter.
type paramError struct {
	msg string
}

func (e *paramError) Error() string { return "invalid parameter: " + e.msg }

// bindAndValidate fills p from path and query parameters and checks its tags.
func bindAndValidate(c echo.Context, p any) error {
	if err := c.Bind(p); err != nil {
		return &paramError{msg: bindMessage(err)}
	}
	if err := c.Validate(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &paramError{msg: strings.ToLower(verrs[0].Field()) + " fails " + verrs[0].Tag()}
		}
		return &paramError{msg: err.Error()}
	}
	return nil
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}

// NewServer builds the echo instance with middleware, the handler routes
// and, when gatherer is non-nil, the Prometheus endpoint.
func NewServer(cfg config.Config, h *Handler, logger zerolog.Logger, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{v: validator.New()}
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	httpLog := observability.Component(logger, "http")

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := httpLog.Info()
			if v.Error != nil {
				ev = httpLog.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
	}))
	if cfg.Server.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/healthz" || c.Path() == cfg.Metrics.Path
			},
			Store: middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.RateLimit)),
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "rate limit exceeded"})
			},
		}))
	}

	if cfg.Metrics.Enabled && gatherer != nil {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	h.RegisterRoutes(e)
	return e
}
