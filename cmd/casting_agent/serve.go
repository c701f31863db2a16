package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/casting-agent/internal/apply"
	"github.com/jonathan/casting-agent/internal/mail"
	"github.com/jonathan/casting-agent/internal/server"
)

const defaultPort = 3001

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the scrape and scrape-and-apply endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env, then 3001)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfig)
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Port
	}
	if port == 0 {
		if env := os.Getenv("PORT"); env != "" {
			if p, err := strconv.Atoi(env); err == nil {
				port = p
			}
		}
	}
	if port == 0 {
		port = defaultPort
	}

	// A missing key must not crash startup; sends will simply fail.
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		log.Printf("[SERVE] SENDGRID_API_KEY is not set; application sends will fail")
	}

	dispatcher := apply.NewDispatcher(mail.NewSendGridSender(apiKey))
	if cfg.SendDelayMS > 0 {
		dispatcher.Delay = time.Duration(cfg.SendDelayMS) * time.Millisecond
	}

	srv := server.New(server.Config{
		Port:       port,
		Collect:    collector(cfg),
		Dispatcher: dispatcher,
	})

	return srv.Start()
}
