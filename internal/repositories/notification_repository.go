package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.Notification, int64, error)
	GetGrouped(ctx context.Context, recipientID string, now time.Time) (*models.GroupedNotifications, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uint, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("%w: create notification: %v", common.ErrorStorage, err)
	}
	return nil
}

func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.Notification, int64, error) {
	var total int64
	notifications := []models.Notification{}

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: count notifications: %v", common.ErrorStorage, err)
	}

	offset := (page - 1) * limit
	err := db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list notifications: %v", common.ErrorStorage, err)
	}
	return notifications, total, nil
}

// GetGrouped buckets a recipient's notifications by day relative to now.
// The older bucket is capped at 50 entries.
func (r *postgresNotificationRepository) GetGrouped(ctx context.Context, recipientID string, now time.Time) (*models.GroupedNotifications, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -7)

	g := &models.GroupedNotifications{
		Today:     []models.Notification{},
		Yesterday: []models.Notification{},
		ThisWeek:  []models.Notification{},
		Older:     []models.Notification{},
	}
	db := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID).Order("created_at DESC").Session(&gorm.Session{})

	queries := []struct {
		dest  *[]models.Notification
		query *gorm.DB
	}{
		{&g.Today, db.Where("created_at >= ?", todayStart)},
		{&g.Yesterday, db.Where("created_at >= ? AND created_at < ?", yesterdayStart, todayStart)},
		{&g.ThisWeek, db.Where("created_at >= ? AND created_at < ?", weekStart, yesterdayStart)},
		{&g.Older, db.Where("created_at < ?", weekStart).Limit(50)},
	}
	for _, q := range queries {
		if err := q.query.Find(q.dest).Error; err != nil {
			return nil, fmt.Errorf("%w: group notifications: %v", common.ErrorStorage, err)
		}
	}
	return g, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count unread: %v", common.ErrorStorage, err)
	}
	return count, nil
}

// MarkAsRead only touches a notification owned by recipientID.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID uint, recipientID string) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("%w: mark read: %v", common.ErrorStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %d", common.ErrorNotFound, notificationID)
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("%w: mark all read: %v", common.ErrorStorage, err)
	}
	return nil
}
