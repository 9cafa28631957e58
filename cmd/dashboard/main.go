package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Saran-k-ece/Forensync/dashboard"
)

func main() {
	var (
		apiURL   string
		username string
		password string
		interval time.Duration
	)

	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Headless evidence dashboard watcher",
		Long:  "Logs in to the evidence API, polls for new records and prints notifications and stats.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			client := dashboard.NewClient(apiURL)
			if _, err := client.Login(ctx, username, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			log.Info("logged in", zap.String("api", apiURL), zap.String("username", username))

			poller := dashboard.NewPoller(client,
				dashboard.WithInterval(interval),
				dashboard.WithLogger(log),
				dashboard.WithOnNotify(func(n dashboard.Notification) {
					fmt.Printf("NEW EVIDENCE  %s  %s @ %s (%s)\n",
						n.EvidenceID, n.Evidence.EvidenceName, n.Evidence.Location, n.Evidence.Status)
				}),
			)
			poller.Start(ctx)
			defer poller.Stop()

			stats := time.NewTicker(interval)
			defer stats.Stop()
			for {
				select {
				case <-ctx.Done():
					log.Info("shutting down")
					return nil
				case <-stats.C:
					s := poller.Stats()
					log.Info("evidence stats",
						zap.Int("total", s.Total),
						zap.Int("new", s.New),
						zap.Int("locations", s.Locations),
						zap.Int("inTransit", s.InTransit),
					)
				}
			}
		},
	}

	root.Flags().StringVar(&apiURL, "api", envOr("FORENSYNC_API", "http://127.0.0.1:8080"), "evidence API base URL")
	root.Flags().StringVar(&username, "username", envOr("ADMIN_USERNAME", "admin"), "administrator username")
	root.Flags().StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "administrator password")
	root.Flags().DurationVar(&interval, "interval", dashboard.DefaultPollInterval, "poll interval")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
