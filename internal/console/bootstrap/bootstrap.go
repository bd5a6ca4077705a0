// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/console/internal/console/conf"
	"github.com/go-arcade/console/pkg/log"
	"github.com/go-arcade/console/pkg/metrics"
	"github.com/go-arcade/console/pkg/safe"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	HttpApp *fiber.App
	Metrics *metrics.Server
	Logger  *zap.Logger
	AppConf *conf.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	httpApp *fiber.App,
	metricsServer *metrics.Server,
	logger *zap.Logger,
	appConf *conf.AppConfig,
) *App {
	return &App{
		HttpApp: httpApp,
		Metrics: metricsServer,
		Logger:  logger,
		AppConf: appConf,
	}
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	if err := app.Metrics.Start(); err != nil {
		log.Errorw("metrics server start failed", "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	safe.Go(func() {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		log.Infow("HTTP listener started",
			"address", addr,
			"backend", appConf.Backend.Mode,
		)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed", "address", addr, "error", err)
		}
	})

	sig := <-quit
	log.Infow("received signal, shutting down gracefully", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(appConf.Http.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	if err := app.Metrics.Stop(shutdownCtx); err != nil {
		log.Errorw("metrics server shutdown error", "error", err)
	}

	// 等待后台名称刷新，关闭数据库连接
	cleanup()

	log.Info("Server shutdown complete")
	_ = app.Logger.Sync()
}
