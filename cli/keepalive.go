package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gastos-labs/gastos-gateway/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

// keepAliveOptions configures the health-endpoint poller that stops the
// hosting platform from suspending an idle service.
type keepAliveOptions struct {
	url      string
	interval time.Duration
	timeout  time.Duration
	duration time.Duration // 0 = forever
}

// KeepAliveCmd polls a URL on a fixed interval. Pointed at this service's own
// /healthz (or at the n8n instance) it keeps free-tier hosting awake.
func KeepAliveCmd() *cobra.Command {
	opts := keepAliveOptions{}
	cmd := &cobra.Command{
		Use:   "keepalive",
		Short: "Ping a URL on a fixed interval to prevent idle suspension",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.url == "" {
				return fmt.Errorf("--url is required")
			}
			log := logger.NewLogger(logger.DefaultConfig())
			return runKeepAlive(cmd.Context(), log, opts)
		},
	}
	cmd.Flags().StringVar(&opts.url, "url", "", "URL to ping (e.g. https://myapp.onrender.com/healthz)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 10*time.Minute, "Time between pings")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-request timeout")
	cmd.Flags().DurationVar(&opts.duration, "for", 0, "Total time to keep pinging (0 = forever)")
	return cmd
}

// runKeepAlive pings immediately, then on every tick, until the duration
// elapses or the context is canceled. Ping failures are logged and do not
// stop the loop.
func runKeepAlive(ctx context.Context, log logger.Logger, opts keepAliveOptions) error {
	client := resty.New().SetTimeout(opts.timeout)
	log.Info("keep-alive started", "url", opts.url, "interval", opts.interval, "duration", opts.duration)

	var deadline <-chan time.Time
	if opts.duration > 0 {
		timer := time.NewTimer(opts.duration)
		defer timer.Stop()
		deadline = timer.C
	}
	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	ping(ctx, log, client, opts.url)
	for {
		select {
		case <-ctx.Done():
			log.Info("keep-alive stopped")
			return nil
		case <-deadline:
			log.Info("keep-alive duration elapsed")
			return nil
		case <-ticker.C:
			ping(ctx, log, client, opts.url)
		}
	}
}

func ping(ctx context.Context, log logger.Logger, client *resty.Client, url string) {
	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Error("ping failed", "url", url, "error", err)
		return
	}
	log.Info("ping ok", "url", url, "status", resp.StatusCode())
}
