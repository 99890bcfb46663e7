package main

import (
	"flag"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"plate-capture-service/internal/config"
	"plate-capture-service/internal/db"
	"plate-capture-service/internal/engine"
	httpapi "plate-capture-service/internal/http"
	"plate-capture-service/internal/logging"
	"plate-capture-service/internal/repository"
	"plate-capture-service/internal/service"
)

func main() {
	cfgFile := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fallback := logging.New("info", "console")
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	var captureStore service.CaptureStore
	var watchlistStore service.WatchlistStore

	switch cfg.Storage.Driver {
	case "postgres":
		gdb, err := db.Connect(cfg.Database.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		captureStore = repository.NewCaptureRepository(gdb)
		watchlistStore = repository.NewWatchlistRepository(gdb)
		log.Info().
			Str("host", cfg.Database.Host).
			Str("database", cfg.Database.Name).
			Msg("connected to postgres")
	case "memory":
		captureStore = repository.NewMemoryCaptureStore()
		watchlistStore = repository.NewMemoryWatchlistStore()
		log.Warn().Msg("using in-memory storage, captures are lost on restart")
	}

	transcoder, err := engine.NewImageMagickTranscoder(cfg.Engine.ConvertPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize transcoder")
	}

	recognizer, err := engine.NewPlateDetector(
		cfg.Engine.PythonPath,
		cfg.Engine.DetectorScript,
		cfg.Engine.DetectorModel,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize plate detector")
	}

	captureService := service.NewCaptureService(captureStore, transcoder, recognizer, cfg.Engine.ScalePercent, log)
	watchlistService := service.NewWatchlistService(watchlistStore, log)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpapi.RequestLogger(log))
	router.Use(cors.Default())

	handler := httpapi.NewHandler(captureService, watchlistService, log)
	handler.Register(router, httpapi.Auth(cfg.Auth.JWTSecret))

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("storage", cfg.Storage.Driver).
		Int("scale_percent", cfg.Engine.ScalePercent).
		Msg("server starting")

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
