package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Liam-Hayes8/Job-Matcher/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the live job matching endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	app, err := buildApp(context.Background())
	if err != nil {
		return err
	}
	defer app.close()

	if servePort != 0 {
		app.cfg.Port = servePort
	}

	srv := server.New(server.Deps{
		Config:     app.cfg,
		Aggregator: app.aggregator,
		Embedder:   app.embedder,
		Logger:     app.logger,
	})
	return srv.Start()
}
