package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"overcooked-floor/floor-svc/internal/domain"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type MenuCacheInvalidator interface {
	Invalidate(ctx context.Context, menuItemID string) error
}

// MenuConsumer drops cached menu entries when the menu service announces a change, so later
// AddItems calls snapshot current names and prices.
type MenuConsumer struct {
	Reader MessageReader
	Cache  MenuCacheInvalidator
	Logger *zap.Logger
	// RetryDelay is the pause after a failed read before reading again.
	RetryDelay time.Duration
}

func NewMenuConsumer(reader MessageReader, cache MenuCacheInvalidator, logger *zap.Logger) *MenuConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuConsumer{Reader: reader, Cache: cache, Logger: logger, RetryDelay: time.Second}
}

// Start reads until ctx is cancelled or the reader is closed. Malformed messages are logged and
// skipped.
func (c *MenuConsumer) Start(ctx context.Context) error {
	c.Logger.Info("menu consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				c.Logger.Info("menu reader closed")
				return nil
			}
			c.Logger.Warn("read menu update", zap.Error(err), zap.Duration("retry_in", c.RetryDelay))
			if !c.wait(ctx) {
				return nil
			}
			continue
		}

		var update domain.MenuUpdate
		if err := json.Unmarshal(message.Value, &update); err != nil {
			c.Logger.Warn("decode menu update", zap.Error(err), zap.ByteString("key", message.Key))
			continue
		}
		if update.MenuItemID == "" {
			update.MenuItemID = string(message.Key)
		}
		if err := c.ProcessUpdate(ctx, update); err != nil {
			c.Logger.Warn("invalidate menu cache", zap.String("menu_item_id", update.MenuItemID), zap.Error(err))
		}
	}
}

func (c *MenuConsumer) ProcessUpdate(ctx context.Context, update domain.MenuUpdate) error {
	if update.MenuItemID == "" {
		return fmt.Errorf("menu update %q without menu item id", update.Type)
	}
	if err := c.Cache.Invalidate(ctx, update.MenuItemID); err != nil {
		return fmt.Errorf("invalidate %s: %w", update.MenuItemID, err)
	}
	c.Logger.Debug("menu cache invalidated", zap.String("menu_item_id", update.MenuItemID), zap.String("type", update.Type))
	return nil
}

// wait sleeps for RetryDelay and reports false when ctx ended first.
func (c *MenuConsumer) wait(ctx context.Context) bool {
	timer := time.NewTimer(c.RetryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
