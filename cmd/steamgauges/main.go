package main

import "C" // This is required to import the C code

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/steamgauges/extension/internal/alerts"
	"github.com/steamgauges/extension/internal/api"
	"github.com/steamgauges/extension/internal/bodies"
	"github.com/steamgauges/extension/internal/cache"
	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/internal/dispatcher"
	"github.com/steamgauges/extension/internal/handlers"
	"github.com/steamgauges/extension/internal/influx"
	"github.com/steamgauges/extension/internal/instruments"
	"github.com/steamgauges/extension/internal/logging"
	"github.com/steamgauges/extension/internal/monitor"
	intOtel "github.com/steamgauges/extension/internal/otel"
	"github.com/steamgauges/extension/internal/parser"
	"github.com/steamgauges/extension/internal/storage"
	"github.com/steamgauges/extension/internal/worker"
	"github.com/steamgauges/extension/pkg/hostbridge"
)

const (
	ExtensionName = "steamgauges"
)

// CurrentExtensionVersion is overridden at build time with -ldflags.
var CurrentExtensionVersion = "dev"

// global variables
var (
	// ModuleFolder is where the library was loaded from. Relative paths in
	// the config resolve against it.
	ModuleFolder string

	SessionStartTime = time.Now()

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// Services
	handlerService  *handlers.Service
	monitorService  *monitor.Service
	workerManager   *worker.Manager
	eventDispatcher *dispatcher.Dispatcher
	storageBackend  storage.Backend
	influxManager   *influx.Manager
	alertPublisher  *alerts.Publisher

	logFile      io.WriteCloser
	logPath      string
	stopWorker   context.CancelFunc
	workerDone   chan struct{}
	shutdownOnce sync.Once
)

// init is run automatically when the module is loaded. Everything heavier
// than the version string waits for the first host call.
func init() {
	hostbridge.SetVersion(CurrentExtensionVersion)
	hostbridge.OnFirstCall(setup)
}

func setup() {
	ModuleFolder = hostbridge.ModuleDir()

	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, "info", nil)
	Logger = SlogManager.Logger()

	if err := config.Load(ModuleFolder); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	setupLogging()

	if err := setupServices(); err != nil {
		Logger.Error("Failed to set up services", "error", err)
	}
}

// resolvePath anchors a configured relative path at the module folder.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(ModuleFolder, p)
}

func setupLogging() {
	logsDir := resolvePath(config.GetString("logsDir"))
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		Logger.Error("Failed to create logs directory", "error", err, "path", logsDir)
	}
	logPath = logging.LogFilePath(logsDir, ExtensionName, SessionStartTime)
	logFile = logging.NewRotatingFile(logPath)

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		var err error
		OTelProvider, err = intOtel.New(intOtel.FromSettings(otelCfg, CurrentExtensionVersion, logFile))
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
			OTelProvider = nil
		} else if otelCfg.Endpoint != "" {
			Logger.Info("OTel provider initialized", "file", logPath, "endpoint", otelCfg.Endpoint)
		} else {
			Logger.Info("OTel provider initialized", "file", logPath)
		}
	}

	opts := []logging.Option{
		logging.WithContext(func() []slog.Attr {
			if handlerService == nil {
				return nil
			}
			return handlerService.State().LogAttrs()
		}),
	}
	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.NewGraylogWriter(gl.Address)
		if err != nil {
			Logger.Warn("Graylog disabled", "error", err)
		} else {
			opts = append(opts, logging.WithGraylog(w))
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	SlogManager.Setup(logFile, config.GetString("logLevel"), otelLogProvider, opts...)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", logPath, "version", CurrentExtensionVersion)
}

func setupServices() error {
	zlog := logging.NewZerolog(logFile, config.GetString("logLevel"))

	catalog := bodies.Default()
	if p := resolvePath(config.GetString("bodies.catalog")); p != "" {
		extra, err := bodies.LoadFile(p)
		if err != nil {
			Logger.Warn("Failed to load body catalog, using built-in bodies", "error", err, "path", p)
		} else {
			catalog.Merge(extra)
			Logger.Info("Loaded body catalog", "path", p, "bodies", len(catalog.Names()))
		}
	}

	approaches := cache.NewApproachCache()
	panel, err := instruments.NewPanel(config.Settings(), instruments.Env{
		Bodies:     catalog,
		Approaches: approaches,
	}, Logger)
	if err != nil {
		return fmt.Errorf("failed to create panel: %w", err)
	}

	storageCfg := config.GetStorageConfig()
	storageCfg.Memory.OutputDir = resolvePath(storageCfg.Memory.OutputDir)
	storageCfg.SQLite.Path = resolvePath(storageCfg.SQLite.Path)
	recorderCfg := config.GetRecorderConfig()

	storageBackend, err = storage.NewBackend(storageCfg, zlog, recorderCfg.FlushInterval)
	if err != nil {
		Logger.Error("Failed to create storage backend, flights will not be recorded", "error", err)
		storageBackend = nil
	} else if err := storageBackend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend", "error", err, "type", storageCfg.Type)
		storageBackend = nil
	} else {
		Logger.Info("Storage backend initialized", "type", storageCfg.Type)
	}

	deps := worker.Dependencies{Backend: storageBackend, Logger: Logger}

	// Interfaces stay nil unless the sink is usable.
	if cfg := config.GetInfluxConfig(); cfg.Enabled {
		influxManager = influx.NewManager(cfg, zlog, filepath.Join(filepath.Dir(logPath), "influx_backup.log.gz"))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := influxManager.Connect(ctx)
		cancel()
		if err != nil {
			Logger.Warn("InfluxDB telemetry disabled", "error", err)
			influxManager = nil
		} else {
			deps.Telemetry = influxManager
		}
	}

	if cfg := config.GetMQTTConfig(); cfg.Enabled {
		alertPublisher = alerts.New(cfg, zlog)
		if err := alertPublisher.Connect(); err != nil {
			Logger.Warn("MQTT alerts disabled", "error", err, "broker", cfg.Broker)
			alertPublisher = nil
		} else {
			deps.Alerts = alertPublisher
		}
	}

	workerManager = worker.NewManager(deps, recorderCfg)
	ctx, cancel := context.WithCancel(context.Background())
	stopWorker = cancel
	workerDone = make(chan struct{})
	go func() {
		defer close(workerDone)
		workerManager.Run(ctx)
	}()

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	var uploader handlers.FlightUploader
	if cfg := config.GetUploadConfig(); cfg.Enabled {
		client := api.New(cfg.ServerURL, cfg.APIKey)
		uploader = client
		go checkServerStatus(client)
	}

	handlerService = handlers.NewService(handlers.Dependencies{
		Parser:           parser.NewParser(Logger),
		Panel:            panel,
		Approaches:       approaches,
		Recorder:         workerManager,
		Backend:          storageBackend,
		Uploader:         uploader,
		LogManager:       SlogManager,
		ExtensionVersion: CurrentExtensionVersion,
	}, nil)
	handlerService.RegisterHandlers(eventDispatcher)
	monitorService = monitor.NewService(monitor.Dependencies{
		Recorder: workerManager,
		Flights:  handlerService.State(),
		Logger:   Logger,
		Path:     resolvePath(config.GetString("monitor.statusFile")),
		Interval: viper.GetDuration("monitor.interval"),
	})
	if err := monitorService.Start(); err != nil {
		Logger.Info("Status file disabled", "reason", err)
	}

	eventDispatcher.Register(":STATUS:", func(dispatcher.Event) (any, error) {
		bs, err := json.Marshal(monitorService.Status())
		if err != nil {
			return nil, err
		}
		return json.RawMessage(bs), nil
	})
	eventDispatcher.Register(":SHUTDOWN:", func(dispatcher.Event) (any, error) {
		return "ok", shutdown()
	}, dispatcher.Logged())

	hostbridge.SetDispatcher(eventDispatcher)
	Logger.Info("Dispatcher ready", "commands", eventDispatcher.Commands())
	return nil
}

func checkServerStatus(c *api.Client) {
	if err := c.Healthcheck(); err != nil {
		Logger.Info("Flight log server is offline", "error", err)
	} else {
		Logger.Info("Flight log server is online")
	}
}

// shutdown stops the recorder and closes every sink. Later calls are no-ops.
func shutdown() error {
	var errs []error
	shutdownOnce.Do(func() {
		if monitorService != nil {
			monitorService.Stop()
		}
		if stopWorker != nil {
			stopWorker()
			<-workerDone
		}
		if storageBackend != nil {
			errs = append(errs, storageBackend.Close())
		}
		if handlerService != nil {
			handlerService.WaitUploads()
		}
		if influxManager != nil {
			errs = append(errs, influxManager.Close())
		}
		if alertPublisher != nil {
			alertPublisher.Close()
		}
		if OTelProvider != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			errs = append(errs, OTelProvider.Shutdown(ctx))
			cancel()
		}
		Logger.Info("Shut down")
	})
	return errors.Join(errs...)
}

func main() {
	if err := runCLI(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
