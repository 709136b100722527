package queue

import (
	"context"
	"errors"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/logger"
	"github.com/rs/zerolog/log"
)

const (
	queueSize   = 1024
	sendTimeout = 5 * time.Second
	maxAttempts = 3
)

var ErrQueueFull = errors.New("message queue is full")

// Sender is the part of *bot.Bot the queue needs.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type pending struct {
	msg      *bot.SendMessageParams
	attempts int
}

var messageQueue = make(chan pending, queueSize)

// RetryPushMessage queues a message Telegram refused with 429.
func RetryPushMessage(msg *bot.SendMessageParams) error {
	return push(messageQueue, pending{msg: msg})
}

func push(q chan pending, p pending) error {
	select {
	case q <- p:
		return nil
	default:
		log.Warn().Func(logger.WithCategory(logger.CategoryBot)).Msg("message queue is full, dropping message")
		return ErrQueueFull
	}
}

// InitPushMessage resends queued messages until ctx ends, waiting out
// Telegram's retry_after between attempts.
func InitPushMessage(ctx context.Context, s Sender) {
	run(ctx, s, messageQueue)
}

func run(ctx context.Context, s Sender, q chan pending) {
	for {
		select {
		case <-ctx.Done():
			return
		case p := <-q:
			deliver(ctx, s, q, p)
		}
	}
}

func deliver(ctx context.Context, s Sender, q chan pending, p pending) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	p.attempts++
	_, err := s.SendMessage(sendCtx, p.msg)
	if err == nil {
		return
	}

	var tooMany *bot.TooManyRequestsError
	if !errors.As(err, &tooMany) || p.attempts >= maxAttempts {
		log.Error().Func(logger.WithCategory(logger.CategoryBot)).Err(err).Int("attempts", p.attempts).Msg("queued message dropped")
		return
	}

	log.Error().Func(logger.WithCategory(logger.CategoryBot)).Int("retryAfter", tooMany.RetryAfter).Msg("too many req waitting......")
	select {
	case <-ctx.Done():
		return
	case <-time.After(time.Duration(tooMany.RetryAfter) * time.Second):
	}
	_ = push(q, p)
}
