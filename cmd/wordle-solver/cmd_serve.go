package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/httpserver"
)

func (a *app) serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			srv := httpserver.New(st, a.lists, httpserver.Options{
				Play: a.setup(),
				Salt: a.cfg.DailySalt,
			})
			log.Info().Str("port", a.cfg.Port).Str("backend", a.setup().BackendName()).Msg("starting wordle-solver")
			return srv.Start(":" + a.cfg.Port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (PORT)")
	return cmd
}
