package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/stretchr/testify/require"
)

// fakeNotifications records created notifications in memory.
type fakeNotifications struct {
	mu      sync.Mutex
	created []models.Notification
	err     error
}

func (f *fakeNotifications) CreateNotification(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotifications) GetByRecipientID(context.Context, string, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotifications) GetGrouped(context.Context, string, time.Time) (*models.GroupedNotifications, error) {
	return nil, nil
}

func (f *fakeNotifications) GetUnreadCount(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeNotifications) MarkAsRead(context.Context, uint, string) error { return nil }

func (f *fakeNotifications) MarkAllAsRead(context.Context, string) error { return nil }

func (f *fakeNotifications) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func seedUser(t *testing.T, store *repositories.MemoryStore, name string) string {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u.ID.Hex()
}

func seedPost(t *testing.T, store *repositories.MemoryStore, ownerID string) string {
	t.Helper()
	p := &models.Post{UserID: ownerID, Content: "hello"}
	require.NoError(t, store.CreatePost(context.Background(), p))
	require.NoError(t, store.AddPostRef(context.Background(), ownerID, p.ID.Hex()))
	return p.ID.Hex()
}

func newGraph(store *repositories.MemoryStore, notes repositories.NotificationRepository) *SocialGraph {
	return NewSocialGraph(store, store, notes, logging.Discard())
}
