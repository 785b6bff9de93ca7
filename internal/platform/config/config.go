package config

import (
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	WorkerPollInterval time.Duration

	EnableInvitationExpirer       bool
	EnableOutboxRelay             bool
	EnableInvitationEventConsumer bool
	EnableCooldownReleaser        bool
	EnableScrapeRunRetention      bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "dttracker"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	pollInterval := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("WORKER_POLL_INTERVAL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			pollInterval = parsed
		}
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		WorkerPollInterval: pollInterval,

		EnableInvitationExpirer:       envBool("ENABLE_INVITATION_EXPIRER", true),
		EnableOutboxRelay:             envBool("ENABLE_OUTBOX_RELAY", true),
		EnableInvitationEventConsumer: envBool("ENABLE_INVITATION_EVENT_CONSUMER", true),
		EnableCooldownReleaser:        envBool("ENABLE_COOLDOWN_RELEASER", true),
		EnableScrapeRunRetention:      envBool("ENABLE_SCRAPE_RUN_RETENTION", false),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
