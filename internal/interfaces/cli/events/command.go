// Package events tails plan lifecycle events for operators.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/infrastructure/pubsub"
	"github.com/kimono-rental/kimono/internal/interfaces/cli/clienv"
)

var (
	env     string
	source  string
	groupID string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print plan events as they are published",
		Long: `Subscribe to plan created, updated and retired events and print one JSON
line per event until interrupted. The source defaults to Kafka when brokers
are configured and Redis pub/sub otherwise.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&source, "source", "", "Event source: kafka or redis")
	cmd.Flags().StringVar(&groupID, "group", "", "Kafka consumer group; empty reads from the latest offset without committing")

	return cmd
}

type subscriber interface {
	Subscribe(ctx context.Context, handler pubsub.PlanEventHandler) error
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := clienv.Load(clienv.Resolve(env))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src := source
	if src == "" {
		src = "redis"
		if cfg.Kafka.Enabled() {
			src = "kafka"
		}
	}

	var sub subscriber
	switch src {
	case "kafka":
		if !cfg.Kafka.Enabled() {
			return fmt.Errorf("kafka brokers are not configured")
		}
		consumer := pubsub.NewKafkaPlanEventConsumer(
			pubsub.NewKafkaReader(cfg.Kafka.Brokers, cfg.Kafka.PlanTopic, groupID),
			log.With("component", "kafka_consumer"))
		defer consumer.Close()
		sub = consumer
	case "redis":
		if !cfg.Redis.Enabled() {
			return fmt.Errorf("redis host is not configured")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		sub = pubsub.NewRedisPlanEventBus(client, log.With("component", "redis_event_bus"))
	default:
		return fmt.Errorf("unknown event source %q", src)
	}

	log.Infow("tailing plan events", "source", src)
	err = sub.Subscribe(ctx, printer(cmd.OutOrStdout()))
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func printer(out io.Writer) pubsub.PlanEventHandler {
	enc := json.NewEncoder(out)
	return func(ctx context.Context, event plan.Event) {
		_ = enc.Encode(event)
	}
}
