package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/pbaille/trip/internal/advisor"
	"github.com/pbaille/trip/internal/api"
	"github.com/pbaille/trip/internal/config"
	"github.com/pbaille/trip/internal/itinerary"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg
			if cmd.Flags().Changed("addr") {
				c.Addr = addr
			}

			app := fx.New(
				fx.Supply(c),
				fx.Provide(provideStore, provideAdvisor, provideServer),
				fx.Invoke(startServer),
				fx.NopLogger,
			)
			if err := app.Err(); err != nil {
				return err
			}

			app.Run()
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "server address")
	return cmd
}

func provideStore(lc fx.Lifecycle, c config.Config) (*itinerary.Store, error) {
	s, slot, err := openStore(context.Background(), c)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return slot.Close()
		},
	})
	return s, nil
}

func provideAdvisor(lc fx.Lifecycle, c config.Config) (*advisor.Advisor, error) {
	adv, err := advisor.FromConfig(context.Background(), c.Advisor(), c.City, c.TipTimeout)
	if err != nil {
		return nil, err
	}
	if !adv.Available() {
		log.Println("No tip provider key configured, tips will return a placeholder")
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return adv.Close()
		},
	})
	return adv, nil
}

func provideServer(c config.Config, s *itinerary.Store, adv *advisor.Advisor) *api.Server {
	return api.New(s, adv, c.Addr, c.TipRatePerMinute)
}

func startServer(lc fx.Lifecycle, c config.Config, srv *api.Server) {
	httpSrv := srv.HTTPServer()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting server on %s", c.Addr)
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return api.Shutdown(ctx, httpSrv)
		},
	})
}
