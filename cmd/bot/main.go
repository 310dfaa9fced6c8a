package main

import (
	log "github.com/sirupsen/logrus"

	"fizzybot/internal/config"
	"fizzybot/internal/server"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	s, err := server.Init(cfg)
	if err != nil {
		log.WithError(err).Fatal("initialization failed")
	}

	s.Run()
}
