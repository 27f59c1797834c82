package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/PointStore_Go/internal/domain"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/metrics"
	"github.com/osse101/PointStore_Go/internal/notify"
)

// useHandler performs the use flow for one item type
type useHandler func(ctx context.Context, entry domain.InventoryEntry) error

// nicknameChange is validated before a CHANGE_NICK call
type nicknameChange struct {
	Nickname string `validate:"required,min=2,max=10"`
}

// useHandler returns the handler for an item type. Every ItemType has a case.
func (s *Store) useHandler(t domain.ItemType) useHandler {
	switch t {
	case domain.ItemTypeChangeNick:
		return s.useChangeNick
	case domain.ItemTypeDecoNick:
		return s.useDecoNick
	case domain.ItemTypeRandomIcon:
		return s.useRandomIcon
	case domain.ItemTypeRandomRoulette:
		return s.useRoulette
	case domain.ItemTypeVoucher:
		return s.confirmThenUse(notify.PromptVoucher)
	case domain.ItemTypeRandomPoint:
		return s.confirmThenUse(notify.PromptRandomPoint)
	case domain.ItemTypeLevelUp:
		return s.confirmThenUse(notify.PromptLevelUp)
	case domain.ItemTypeOther:
		return s.confirmThenUse(notify.PromptGenericUse)
	default:
		return s.confirmThenUse(notify.PromptGenericUse)
	}
}

func (s *Store) useChangeNick(ctx context.Context, entry domain.InventoryEntry) error {
	value, ok := s.ui.Prompt(ctx, notify.PromptNickname)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return fmt.Errorf("%s: %w", opUse, domain.ErrCancelled)
	}
	if err := s.validate.Struct(nicknameChange{Nickname: value}); err != nil {
		return fmt.Errorf("%s: %w", opUse, domain.ErrInvalidNickname)
	}
	return s.genericUse(ctx, entry, value)
}

func (s *Store) useDecoNick(ctx context.Context, entry domain.InventoryEntry) error {
	if entry.IsEquipped() {
		return fmt.Errorf("%s %s: %w", opUse, entry.ItemName, domain.ErrAlreadyEquipped)
	}
	if !s.ui.Confirm(ctx, fmt.Sprintf(notify.PromptDecoNick, entry.ItemName)) {
		return fmt.Errorf("%s: %w", opUse, domain.ErrCancelled)
	}
	return s.genericUse(ctx, entry, "")
}

func (s *Store) useRandomIcon(ctx context.Context, entry domain.InventoryEntry) error {
	if !s.ui.Confirm(ctx, notify.PromptDrawIcon) {
		return fmt.Errorf("%s: %w", opDraw, domain.ErrCancelled)
	}

	result, err := s.client.DrawIcon(ctx, entry.ID)
	if err != nil {
		return err
	}

	metrics.IconDraws.WithLabelValues(string(result.Rarity)).Inc()
	logger.FromContext(ctx).Info(LogMsgIconDrawn, "entry", entry.ID, "icon", result.Name, "rarity", result.Rarity)
	notify.Success(ctx, s.ui, fmt.Sprintf(notify.MsgDrawResultFormat, result.Rarity, result.Name))
	s.afterMutation(ctx, domain.TopicInventory, domain.TopicIcons, domain.TopicProfile)
	return nil
}

// useRoulette never calls the authority; tickets are spent on the roulette screen
func (s *Store) useRoulette(ctx context.Context, _ domain.InventoryEntry) error {
	if !s.ui.Confirm(ctx, notify.PromptGoToRoulette) {
		return fmt.Errorf("%s: %w", opUse, domain.ErrCancelled)
	}
	logger.FromContext(ctx).Info(LogMsgRouletteHandoff)
	s.ui.Navigate(ctx, notify.ScreenRoulette)
	return nil
}

func (s *Store) confirmThenUse(prompt string) useHandler {
	return func(ctx context.Context, entry domain.InventoryEntry) error {
		if !s.ui.Confirm(ctx, prompt) {
			return fmt.Errorf("%s: %w", opUse, domain.ErrCancelled)
		}
		return s.genericUse(ctx, entry, "")
	}
}

func (s *Store) genericUse(ctx context.Context, entry domain.InventoryEntry, extraValue string) error {
	if err := s.client.UseItem(ctx, entry.ID, extraValue); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgItemUsed, "entry", entry.ID, "type", entry.ItemType)
	notify.Success(ctx, s.ui, notify.MsgUseDone)
	s.afterMutation(ctx, domain.TopicInventory, domain.TopicProfile, domain.TopicLedger)
	return nil
}
