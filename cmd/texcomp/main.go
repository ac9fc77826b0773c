// texcomp is a desktop viewer for images and meshes.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/texcomp/internal/config"
	"github.com/Faultbox/texcomp/internal/logger"
)

func main() {
	runtime.LockOSThread()

	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	cfg, cfgPath, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.DefaultOptions(cfg.Logging.File)
	opts.Level = cfg.Logging.Level
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== texcomp ===", zap.String("config", cfgPath))

	app, err := NewApp(cfg, cfgPath)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		dialog.Message("%v", err).Title("texcomp").Error()
		os.Exit(1)
	}
	app.Open(flags.Files...)
	app.Run()
	app.Close()
	logger.Info("closed normally")
}

// exit handles File > Exit: the backend loop has no stop call, so settings
// are saved here before leaving.
func (app *App) exit() {
	app.Close()
	logger.Sync()
	os.Exit(0)
}
