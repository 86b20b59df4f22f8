package main

import (
	"github.com/joho/godotenv"

	"github.com/waseet/event-social/internal/config"
	"github.com/waseet/event-social/internal/mailer"
	"github.com/waseet/event-social/internal/notifier"
	"github.com/waseet/event-social/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadNotifier()
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	mail := mailer.New(cfg.ResendAPIKey, cfg.MailFrom, logger)
	dispatcher := notifier.New(mail, logger)

	logger.Info().Str("queue", cfg.QueueName).Msg("notifier starting")
	if err := queue.Consume(cfg.AMQPURL, cfg.QueueName, dispatcher, logger); err != nil {
		logger.Fatal().Err(err).Msg("notifier stopped")
	}
}
