package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "roast_advisor/docs"
	"roast_advisor/internal/display"
	"roast_advisor/internal/handlers"
	"roast_advisor/internal/logger"
	"roast_advisor/internal/models"
	"roast_advisor/internal/repository"
	"roast_advisor/internal/repository/db"
	"roast_advisor/internal/server"
	"roast_advisor/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// @title           Roast Advisor API
// @version         1.0
// @description     Slow-roast finish estimates and oven recommendations.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	var logCfg logger.Config
	if err := viper.UnmarshalKey("logger", &logCfg); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("invalid logger config", "err", err)
	}
	log := logger.Init(logCfg)

	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	opts, err := serviceOptions()
	if err != nil {
		log.Fatalw("invalid service config", "err", err)
	}

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, opts)
	apiHandler := handlers.NewHandler(services, log).
		WithStreamInterval(viper.GetDuration("ws.interval")).
		WithAllowedOrigins(viper.GetStringSlice("ws.allowed_origins"))

	var srvCfg server.Config
	if err := viper.UnmarshalKey("server", &srvCfg); err != nil {
		log.Fatalw("invalid server config", "err", err)
	}
	srv := server.New(srvCfg)
	runHTTPServer(srv, viper.GetString("server.port"), apiHandler, log)

	waitForShutdown(srv, log)
}

// loadConfig reads configs/config.yml when present; ROAST_* env vars override any key.
func loadConfig() error {
	setDefaults()

	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.SetEnvPrefix("roast")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_header_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "60s")

	viper.SetDefault("db.path", "roast.db")

	viper.SetDefault("logger.level", logger.InfoLevel)
	viper.SetDefault("logger.format", logger.ConsoleFormat)

	viper.SetDefault("auth.token_ttl", "12h")

	viper.SetDefault("ws.interval", "30s")
	viper.SetDefault("ws.allowed_origins", []string{})

	viper.SetDefault("session.default_target", 203)
	viper.SetDefault("session.default_unit", string(display.Fahrenheit))

	d := models.DefaultSettings()
	viper.SetDefault("settings.smoothing_window", d.SmoothingWindow)
	viper.SetDefault("settings.min_readings_for_recommendation", d.MinReadingsForRecommendation)
	viper.SetDefault("settings.min_time_span_minutes", d.MinTimeSpanMinutes)
	viper.SetDefault("settings.on_track_threshold_minutes", d.OnTrackThresholdMinutes)
	viper.SetDefault("settings.step_size", d.StepSize)
	viper.SetDefault("settings.max_step_size", d.MaxStepSize)
	viper.SetDefault("settings.oven_temp_min", d.OvenTempMin)
	viper.SetDefault("settings.oven_temp_max", d.OvenTempMax)
	viper.SetDefault("settings.oven_temp_stale_minutes", d.OvenTempStaleMinutes)
}

func serviceOptions() (service.Options, error) {
	defaults := models.DefaultSettings()
	if err := viper.UnmarshalKey("settings", &defaults); err != nil {
		return service.Options{}, err
	}
	if err := defaults.Validate(); err != nil {
		return service.Options{}, err
	}
	return service.Options{
		Defaults:      defaults,
		DefaultTarget: viper.GetFloat64("session.default_target"),
		DefaultUnit:   viper.GetString("session.default_unit"),
		SigningKey:    viper.GetString("auth.signing_key"),
		TokenTTL:      viper.GetDuration("auth.token_ttl"),
	}, nil
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	log.Infow("opening sqlite", "path", dbPath)
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
