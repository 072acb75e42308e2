package services

import (
	"context"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
)

// notifier records activity notifications. It is a no-op without a
// repository, and failures are only logged.
type notifier struct {
	repo   repositories.NotificationRepository
	logger logging.Logger
}

func (n notifier) notify(ctx context.Context, kind, actorID, recipientID, targetID, targetType, message string) {
	if n.repo == nil || actorID == recipientID || recipientID == "" {
		return
	}
	err := n.repo.CreateNotification(ctx, &models.Notification{
		Type:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    targetID,
		TargetType:  targetType,
		Message:     message,
	})
	if err != nil {
		n.logger.Warn(ctx, "notification not recorded", "type", kind, "recipient", recipientID, "error", err)
	}
}
