package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mxcd/go-config/config"
	"github.com/rs/zerolog/log"

	"corpusgate/internal/blob"
	"corpusgate/internal/blob/local"
	"corpusgate/internal/blob/s3"
	"corpusgate/internal/server"
	"corpusgate/internal/util"
)

func main() {
	if err := util.InitConfig(); err != nil {
		log.Panic().Err(err).Msg("error initializing config")
	}
	config.Print()

	if err := util.InitLogger(); err != nil {
		log.Panic().Err(err).Msg("error initializing logger")
	}

	signedURLTTL, err := time.ParseDuration(config.Get().String("SIGNED_URL_TTL"))
	if err != nil {
		log.Panic().Err(err).Msg("error parsing SIGNED_URL_TTL")
	}

	blobConfig := &blob.Config{
		Provider: blob.Provider(config.Get().String("STORAGE_PROVIDER")),
		S3: s3.Config{
			Region:         config.Get().String("S3_REGION"),
			Endpoint:       config.Get().String("S3_ENDPOINT"),
			BucketPrefix:   config.Get().String("S3_BUCKET_PREFIX"),
			AccessKey:      config.Get().String("S3_ACCESS_KEY"),
			SecretKey:      config.Get().String("S3_SECRET_KEY"),
			ForcePathStyle: config.Get().Bool("S3_FORCE_PATH_STYLE"),
		},
		Local: local.Config{
			Dir:     config.Get().String("LOCAL_STORAGE_DIR"),
			BaseURL: config.Get().String("BASE_URL"),
		},
	}

	locator, err := blob.NewLocator(context.Background(), blobConfig)
	if err != nil {
		log.Panic().Err(err).Msg("error initializing blob locator")
	}

	options := &server.ServerOptions{
		DevMode:      config.Get().Bool("DEV"),
		Port:         config.Get().Int("PORT"),
		APIKeys:      config.Get().StringArray("API_KEYS"),
		Locator:      locator,
		SignedURLTTL: signedURLTTL,
	}
	if localLocator, ok := locator.(*local.Locator); ok {
		options.LocalBlobs = localLocator
	}

	s, err := server.NewServer(options)
	if err != nil {
		log.Panic().Err(err).Msg("error initializing server")
	}

	if err := s.RegisterRoutes(); err != nil {
		log.Panic().Err(err).Msg("error registering routes")
	}

	// Start server in a goroutine so we can listen for shutdown signals
	go func() {
		if err := s.Run(); err != nil {
			log.Panic().Err(err).Msg("error running server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.Shutdown(ctx)
	log.Info().Msg("server shutdown complete")
}
