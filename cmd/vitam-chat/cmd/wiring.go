package cmd

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/vitam-chat/internal/config"
	"github.com/donaldgifford/vitam-chat/internal/notify"
	"github.com/donaldgifford/vitam-chat/internal/upstream"
	"github.com/donaldgifford/vitam-chat/pkg/normalize"
)

// newNormalizer builds a normalizer from chat config. Empty fields keep the
// package defaults, so a zero ChatConfig is usable offline.
func newNormalizer(c config.ChatConfig) *normalize.Normalizer {
	mapperOpts := []normalize.MapperOption{
		normalize.WithIDGenerator(normalize.ClockIDs{Prefix: c.IDPrefix}),
	}
	if c.PlaceholderName != "" {
		mapperOpts = append(mapperOpts, normalize.WithPlaceholderName(c.PlaceholderName))
	}

	opts := []normalize.Option{normalize.WithMapper(normalize.NewMapper(mapperOpts...))}
	if c.FallbackText != "" {
		opts = append(opts, normalize.WithFallbackText(c.FallbackText))
	}
	return normalize.New(opts...)
}

func newNotifier(cfg config.NotificationsConfig, log *slog.Logger) notify.Notifier {
	if cfg.Discord.Enabled {
		return notify.NewDiscordNotifier(cfg.Discord.WebhookURL)
	}
	return notify.NewNoOpNotifier(log)
}

// newRateLimiter returns nil when rate limiting is switched off.
func newRateLimiter(cfg config.RateLimitConfig) *upstream.RateLimiter {
	if !cfg.IsEnabled() {
		return nil
	}
	return upstream.NewRateLimiter(cfg.PerSecond, cfg.Burst, cfg.DailyLimit)
}

func newWebhookClient(
	cfg config.UpstreamConfig,
	rl *upstream.RateLimiter,
	tp trace.TracerProvider,
	log *slog.Logger,
) *upstream.WebhookClient {
	opts := []upstream.WebhookOption{
		upstream.WithTimeout(cfg.Timeout),
		upstream.WithHeaders(cfg.Headers),
		upstream.WithTracerProvider(tp),
		upstream.WithLogger(log),
	}
	if rl != nil {
		opts = append(opts, upstream.WithRateLimiter(rl))
	}
	return upstream.NewWebhookClient(cfg.Endpoint, opts...)
}
