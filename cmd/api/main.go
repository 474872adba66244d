package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"omnicasa-gateway/internal/auth"
	"omnicasa-gateway/pkg/logger"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a bearer token for the given subject and exit")
	flag.Parse()

	cfg, err := LoadConfiguration()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *issueToken != "" {
		details, err := auth.GenerateJWT(*issueToken, "", cfg.JWT.Secret, cfg.JWT.TTL)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(details.Token)
		return
	}

	logCloser := initLogger(cfg.Logging)
	defer logCloser.Close()

	app, err := NewApp(cfg)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize application: %v", err)
		os.Exit(1)
	}
	defer app.cleanup()

	app.InitializeServer()
	app.StartServer()
}
