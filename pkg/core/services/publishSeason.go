package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/troop900/treelot/pkg/core/model"
)

// NotificationSender delivers best-effort notifications. A failed send never
// fails the operation that triggered it. pkg/clients/gmailclient implements it.
type NotificationSender interface {
	SendEmail(to, subject, body string) error
}

// PublishSeasonStore is the storage subset needed to publish a season.
type PublishSeasonStore interface {
	GetSeason(ctx context.Context, id string) (*model.Season, error)
	PublishDraftShiftsForSeason(ctx context.Context, seasonID string) (published int, activated bool, err error)
}

// PublishSeasonResult summarizes a publish run.
type PublishSeasonResult struct {
	SeasonID        string
	ShiftsPublished int
	SeasonActivated bool
}

// PublishSeason moves every draft shift of the season to published, opening
// them for signups, and activates the season if it was not active yet. At
// least one draft shift must exist. The store primitive does all status
// writes in one transaction, so a mid-publish failure leaves every shift
// draft. When a notifier and recipients are given, an announcement is sent
// after publishing; send failures are logged only.
func PublishSeason(ctx context.Context, store PublishSeasonStore, notifier NotificationSender, logger *zap.Logger, seasonID string, announceTo []string) (*PublishSeasonResult, error) {
	season, err := store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season %s: %w", seasonID, err)
	}

	published, activated, err := store.PublishDraftShiftsForSeason(ctx, seasonID)
	if err != nil {
		if errors.Is(err, model.ErrNoDraftShifts) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to publish season %s: %w", seasonID, err)
	}

	if notifier != nil && len(announceTo) > 0 {
		subject := fmt.Sprintf("%s schedule published", season.Name)
		body := fmt.Sprintf("The %s schedule is now available: %d shifts from %s to %s. Sign up for your shifts!",
			season.Name, published,
			season.StartDate.Format("Jan 2"), season.EndDate.Format("Jan 2, 2006"))
		for _, to := range announceTo {
			if err := notifier.SendEmail(to, subject, body); err != nil {
				logger.Warn("Failed to send publish announcement",
					zap.String("recipient", to), zap.Error(err))
			}
		}
	}

	logger.Info("Season published",
		zap.String("season_id", seasonID),
		zap.Int("shifts_published", published),
		zap.Bool("season_activated", activated))

	return &PublishSeasonResult{
		SeasonID:        seasonID,
		ShiftsPublished: published,
		SeasonActivated: activated,
	}, nil
}
