package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/Deveshu04/expert-succotash/src/api"
	"github.com/Deveshu04/expert-succotash/src/config"
	"github.com/Deveshu04/expert-succotash/src/utils"
	aws_handler "github.com/Deveshu04/expert-succotash/src/utils/aws"
	"github.com/Deveshu04/expert-succotash/src/worker"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}

	logger := utils.NewLogger(cfg)

	if cfg.AWS.SecretName != "" {
		if err := overlayAWSSecrets(cfg); err != nil {
			logger.Fatal("Error while loading secrets: ", err)
			return
		}
	}

	errC, err := run(cfg, logger)
	if err != nil {
		logger.Error("Couldn't run: ", err)
		return
	}

	if err := <-errC; err != nil {
		logger.Error("Error while running: ", err)
	}
}

// overlayAWSSecrets applies the JSON secret payload (jwt secret, provider API
// keys) on top of the file-based configuration.
func overlayAWSSecrets(cfg *config.Config) error {
	awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return err
	}
	secrets, err := awsHandler.SecretManager.GetSecretMap(cfg.AWS.SecretName)
	if err != nil {
		return err
	}
	cfg.OverlaySecrets(secrets)
	return nil
}

func run(cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)

	var httpServer *http.Server
	if cfg.Service.Type == config.WORKER {
		server, err := worker.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		httpServer = worker.NewHTTPServer(server, cfg)
	} else {
		server, err := api.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		httpServer = api.NewHTTPServer(server, cfg)
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"service": string(cfg.Service.Type),
			"addr":    httpServer.Addr,
		}).Info("starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or
		// Close, the returned error is ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
