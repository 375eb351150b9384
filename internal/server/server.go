package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jr777pal/PetNest-India/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

// echo本体の生成（ルートはRegisterRoutesで載せる）
func New(cfg config.Config, logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger = logger

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := log.JSON{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
				logger.Errorj(fields)
				return nil
			}
			logger.Infoj(fields)
			return nil
		},
	}))

	// cookie（refresh/csrf）を使うのでcredentials許可。originはFEだけ
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     allowedOrigins(cfg.FEURL),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token", "X-Client-ID"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

func allowedOrigins(feURL string) []string {
	var out []string
	for _, o := range strings.Split(feURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}

// ctxがキャンセルされたら処理中のリクエストを待って止める
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
