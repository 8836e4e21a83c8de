package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/filmqa/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question pipeline over HTTP",
	Long: `Serve exposes the pipeline as a small HTTP API: POST /api/answer with a
JSON body {"question": "..."} returns the full result record, GET /api/health
reports liveness.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "listen address")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	listen, _ := cmd.Flags().GetString("listen")

	log := newLogger()
	p := buildPipeline(log)
	actions := server.NewActions(p, version, log)

	log.Info().Str("listen", listen).Msg("starting HTTP API")
	return server.NewRouter(actions).Run(listen)
}
