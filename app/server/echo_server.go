// Package server exposes the concordance over HTTP as a small JSON API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/senkathir/sorkuvai/app/common"
	"github.com/senkathir/sorkuvai/app/config"
)

func StartServer(controller *Controller, serverConf config.ServerConfig) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		field := ""

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprintf("%v", he.Message)
			}
		}

		if ue, ok := err.(*common.UserVisibleError); ok {
			code = ue.HttpCode
			msg = ue.Message
			field = ue.Field
		}

		c.Logger().Error(err)

		if !c.Response().Committed {
			body := map[string]string{"error": msg}
			if field != "" {
				body["field"] = field
			}
			if jsonErr := c.JSON(code, body); jsonErr != nil {
				c.Logger().Error(jsonErr)
			}
		}
	}

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	if len(serverConf.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: serverConf.AllowedOrigins,
			AllowMethods: []string{http.MethodGet},
		}))
	}

	if serverConf.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: middleware.DefaultSkipper,
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(serverConf.RateLimit),
					Burst:     3 * serverConf.RateLimit,
					ExpiresIn: 3 * time.Minute,
				},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.String(http.StatusForbidden, "Forbidden")
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.String(http.StatusTooManyRequests, "Too Many Requests")
			},
		}))
	}

	if serverConf.GzipLevel != 0 {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: serverConf.GzipLevel, MinLength: 512}))
	}

	if serverConf.TimeoutSeconds != 0 {
		e.Use(middleware.ContextTimeout(time.Duration(serverConf.TimeoutSeconds) * time.Second))
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogRemoteIP: true,
		LogLatency:  serverConf.LogLatency,
		HandleError: true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Int64("latency_ms", v.Latency.Milliseconds()),
					slog.String("remote_ip", v.RemoteIP),
				)
			} else {
				logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
					slog.String("remote_ip", v.RemoteIP),
					slog.Int64("latency_ms", v.Latency.Milliseconds()),
				)
			}
			return nil
		},
	}))

	e.GET("/health", controller.GetHealth)
	e.GET("/search", controller.GetSearch)
	e.GET("/works", controller.GetWorks)
	e.GET("/verse/:verse_id", controller.GetVerse)
	e.GET("/collections", controller.GetCollections)
	e.GET("/collections/tree", controller.GetCollectionTree)

	addr := fmt.Sprintf("%s:%d", serverConf.Address, serverConf.Port)
	e.Logger.Fatal(e.Start(addr))
}
