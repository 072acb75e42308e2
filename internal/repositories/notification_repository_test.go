package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newNotificationRepoWithMock(t *testing.T) (NotificationRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return NewPostgresNotificationRepository(db), mock
}

var notificationColumns = []string{"id", "type", "actor_id", "recipient_id", "message", "is_read", "created_at"}

func TestNotifications_GetByRecipientIDPagination(t *testing.T) {
	repo, mock := newNotificationRepoWithMock(t)
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications" WHERE recipient_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE recipient_id = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("u1", 10, 20).
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow(5, "like", "a1", "u1", "liked your post", false, created))

	got, total, err := repo.GetByRecipientID(context.Background(), "u1", 3, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, got, 1)
	assert.Equal(t, uint(5), got[0].ID)
	assert.Equal(t, "a1", got[0].ActorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifications_GetByRecipientIDCountFails(t *testing.T) {
	repo, mock := newNotificationRepoWithMock(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WillReturnError(errors.New("db down"))

	_, _, err := repo.GetByRecipientID(context.Background(), "u1", 1, 10)

	assert.ErrorIs(t, err, common.ErrorStorage)
}

func TestNotifications_GetGroupedBuckets(t *testing.T) {
	repo, mock := newNotificationRepoWithMock(t)
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	todayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterdayStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	weekStart := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE recipient_id = \$1 AND \(?created_at >= \$2\)? ORDER BY created_at DESC`).
		WithArgs("u1", todayStart).
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow(3, "follow", "a1", "u1", "started following you", false, now.Add(-time.Hour)))
	mock.ExpectQuery(`WHERE recipient_id = \$1 AND \(?created_at >= \$2 AND created_at < \$3\)? ORDER BY created_at DESC`).
		WithArgs("u1", yesterdayStart, todayStart).
		WillReturnRows(sqlmock.NewRows(notificationColumns))
	mock.ExpectQuery(`WHERE recipient_id = \$1 AND \(?created_at >= \$2 AND created_at < \$3\)? ORDER BY created_at DESC`).
		WithArgs("u1", weekStart, yesterdayStart).
		WillReturnRows(sqlmock.NewRows(notificationColumns))
	mock.ExpectQuery(`WHERE recipient_id = \$1 AND \(?created_at < \$2\)? ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("u1", weekStart, 50).
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow(1, "like", "a2", "u1", "liked your post", true, weekStart.Add(-time.Hour)))

	g, err := repo.GetGrouped(context.Background(), "u1", now)

	require.NoError(t, err)
	require.Len(t, g.Today, 1)
	assert.Equal(t, uint(3), g.Today[0].ID)
	assert.NotNil(t, g.Yesterday)
	assert.Empty(t, g.Yesterday)
	assert.Empty(t, g.ThisWeek)
	require.Len(t, g.Older, 1)
	assert.Equal(t, uint(1), g.Older[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifications_MarkAsReadScopedToRecipient(t *testing.T) {
	const update = `UPDATE "notifications" SET "is_read"=\$1 WHERE \(?id = \$2 AND recipient_id = \$3\)?`

	t.Run("own notification", func(t *testing.T) {
		repo, mock := newNotificationRepoWithMock(t)
		mock.ExpectExec(update).WithArgs(true, 7, "u1").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkAsRead(context.Background(), 7, "u1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("someone else's notification", func(t *testing.T) {
		repo, mock := newNotificationRepoWithMock(t)
		mock.ExpectExec(update).WithArgs(true, 7, "intruder").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkAsRead(context.Background(), 7, "intruder")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure", func(t *testing.T) {
		repo, mock := newNotificationRepoWithMock(t)
		mock.ExpectExec(update).WillReturnError(errors.New("db down"))

		assert.ErrorIs(t, repo.MarkAsRead(context.Background(), 7, "u1"), common.ErrorStorage)
	})
}

func TestNotifications_MarkAllAsReadAndUnreadCount(t *testing.T) {
	repo, mock := newNotificationRepoWithMock(t)
	mock.ExpectExec(`UPDATE "notifications" SET "is_read"=\$1 WHERE \(?recipient_id = \$2 AND is_read = \$3\)?`).
		WithArgs(true, "u1", false).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications" WHERE \(?recipient_id = \$1 AND is_read = \$2\)?`).
		WithArgs("u1", false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	require.NoError(t, repo.MarkAllAsRead(context.Background(), "u1"))
	count, err := repo.GetUnreadCount(context.Background(), "u1")

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
