package repositories

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps users, posts, stories and chats in process memory. It
// backs STORAGE_DRIVER=memory and the tests. Values are copied in and out so
// callers never share state with the store.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*models.User
	posts    map[primitive.ObjectID]*models.Post
	stories  map[primitive.ObjectID]*models.Story
	chats    map[string]*models.Chat
	failures map[string]error
}

// NewMemoryStore initializes an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[primitive.ObjectID]*models.User),
		posts:    make(map[primitive.ObjectID]*models.Post),
		stories:  make(map[primitive.ObjectID]*models.Story),
		chats:    make(map[string]*models.Chat),
		failures: make(map[string]error),
	}
}

// FailOn makes every later call of the named method return err. A nil err
// clears the failure.
func (m *MemoryStore) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, method)
		return
	}
	m.failures[method] = err
}

// fail must be called with mu held.
func (m *MemoryStore) fail(method string) error {
	if err, ok := m.failures[method]; ok {
		return fmt.Errorf("%w: %s: %v", common.ErrorStorage, method, err)
	}
	return nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", common.ErrorNotFound, kind, id)
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Posts = slices.Clone(u.Posts)
	c.Followers = slices.Clone(u.Followers)
	c.Following = slices.Clone(u.Following)
	return &c
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	c.MediaURLs = slices.Clone(p.MediaURLs)
	c.Likes = slices.Clone(p.Likes)
	c.Comments = slices.Clone(p.Comments)
	return &c
}

func copyChat(ch *models.Chat) *models.Chat {
	c := *ch
	c.Messages = slices.Clone(ch.Messages)
	return &c
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Users

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateUser"); err != nil {
		return err
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("%w: user %s", common.ErrorDuplicate, user.Username)
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.Posts = orEmpty(user.Posts)
	user.Followers = orEmpty(user.Followers)
	user.Following = orEmpty(user.Following)
	m.users[user.ID] = copyUser(user)
	return nil
}

func (m *MemoryStore) userByID(id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	u, ok := m.users[oid]
	if !ok {
		return nil, notFound("user", id)
	}
	return u, nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetUserByID"); err != nil {
		return nil, err
	}
	u, err := m.userByID(id)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (m *MemoryStore) findUser(method string, match func(*models.User) bool, key string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(method); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, notFound("user", key)
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser("GetUserByUsername", func(u *models.User) bool { return u.Username == username }, username)
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser("GetUserByEmail", func(u *models.User) bool { return u.Email == email }, email)
}

func (m *MemoryStore) GetUsersByIDs(_ context.Context, ids []string) ([]models.UserCompact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetUsersByIDs"); err != nil {
		return nil, err
	}
	out := []models.UserCompact{}
	for _, id := range ids {
		if u, err := m.userByID(id); err == nil {
			out = append(out, u.ToCompact())
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateProfile(_ context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateProfile"); err != nil {
		return nil, err
	}
	u, err := m.userByID(id)
	if err != nil {
		return nil, err
	}
	if update.Username != "" {
		u.Username = update.Username
	}
	if update.ProfilePic != "" {
		u.ProfilePic = update.ProfilePic
	}
	if update.About != "" {
		u.About = update.About
	}
	return copyUser(u), nil
}

// mutateUserSet adds or removes value in the slice picked by field.
func (m *MemoryStore) mutateUserSet(method, userID, value string, add bool, field func(*models.User) *[]string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(method); err != nil {
		return false, err
	}
	u, err := m.userByID(userID)
	if err != nil {
		return false, err
	}
	set := field(u)
	i := slices.Index(*set, value)
	switch {
	case add && i < 0:
		*set = append(*set, value)
		return true, nil
	case !add && i >= 0:
		*set = slices.Delete(*set, i, i+1)
		return true, nil
	}
	return false, nil
}

func following(u *models.User) *[]string { return &u.Following }
func followers(u *models.User) *[]string { return &u.Followers }
func postRefs(u *models.User) *[]string  { return &u.Posts }

func (m *MemoryStore) AddFollowing(_ context.Context, userID, targetID string) (bool, error) {
	return m.mutateUserSet("AddFollowing", userID, targetID, true, following)
}

func (m *MemoryStore) RemoveFollowing(_ context.Context, userID, targetID string) (bool, error) {
	return m.mutateUserSet("RemoveFollowing", userID, targetID, false, following)
}

func (m *MemoryStore) AddFollower(_ context.Context, userID, followerID string) (bool, error) {
	return m.mutateUserSet("AddFollower", userID, followerID, true, followers)
}

func (m *MemoryStore) RemoveFollower(_ context.Context, userID, followerID string) (bool, error) {
	return m.mutateUserSet("RemoveFollower", userID, followerID, false, followers)
}

func (m *MemoryStore) AddPostRef(_ context.Context, userID, postID string) error {
	_, err := m.mutateUserSet("AddPostRef", userID, postID, true, postRefs)
	return err
}

func (m *MemoryStore) RemovePostRef(_ context.Context, userID, postID string) error {
	_, err := m.mutateUserSet("RemovePostRef", userID, postID, false, postRefs)
	return err
}

// Posts

func (m *MemoryStore) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreatePost"); err != nil {
		return err
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()
	post.Likes = orEmpty(post.Likes)
	post.Comments = orEmpty(post.Comments)
	m.posts[post.ID] = copyPost(post)
	return nil
}

func (m *MemoryStore) postByID(id string) (*models.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	p, ok := m.posts[oid]
	if !ok {
		return nil, notFound("post", id)
	}
	return p, nil
}

func (m *MemoryStore) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetPostByID"); err != nil {
		return nil, err
	}
	p, err := m.postByID(id)
	if err != nil {
		return nil, err
	}
	return copyPost(p), nil
}

func (m *MemoryStore) listPosts(method string, match func(*models.Post) bool, skip, limit int64) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(method); err != nil {
		return nil, err
	}
	all := []models.Post{}
	for _, p := range m.posts {
		if match(p) {
			all = append(all, *copyPost(p))
		}
	}
	slices.SortStableFunc(all, func(a, b models.Post) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return page(all, skip, limit), nil
}

func page[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}

func (m *MemoryStore) GetPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	return m.listPosts("GetPosts", func(*models.Post) bool { return true }, skip, limit)
}

func (m *MemoryStore) GetPostsByUserID(_ context.Context, userID string, skip, limit int64) ([]models.Post, error) {
	return m.listPosts("GetPostsByUserID", func(p *models.Post) bool { return p.UserID == userID }, skip, limit)
}

func (m *MemoryStore) GetPostsByUserIDs(_ context.Context, userIDs []string, skip, limit int64) ([]models.Post, error) {
	return m.listPosts("GetPostsByUserIDs", func(p *models.Post) bool { return slices.Contains(userIDs, p.UserID) }, skip, limit)
}

func (m *MemoryStore) mutatePost(method, postID string, fn func(*models.Post)) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(method); err != nil {
		return nil, err
	}
	p, err := m.postByID(postID)
	if err != nil {
		return nil, err
	}
	fn(p)
	return copyPost(p), nil
}

func (m *MemoryStore) AddLike(_ context.Context, postID, userID string) (*models.Post, error) {
	return m.mutatePost("AddLike", postID, func(p *models.Post) {
		if !slices.Contains(p.Likes, userID) {
			p.Likes = append(p.Likes, userID)
		}
	})
}

func (m *MemoryStore) RemoveLike(_ context.Context, postID, userID string) (*models.Post, error) {
	return m.mutatePost("RemoveLike", postID, func(p *models.Post) {
		p.Likes = slices.DeleteFunc(p.Likes, func(id string) bool { return id == userID })
	})
}

func (m *MemoryStore) AddComment(_ context.Context, postID string, comment models.Comment) (*models.Post, error) {
	return m.mutatePost("AddComment", postID, func(p *models.Post) {
		p.Comments = append(p.Comments, comment)
	})
}

func (m *MemoryStore) DeletePost(_ context.Context, postID string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeletePost"); err != nil {
		return nil, err
	}
	p, err := m.postByID(postID)
	if err != nil {
		return nil, err
	}
	delete(m.posts, p.ID)
	return p, nil
}

// Stories

func (m *MemoryStore) CreateStory(_ context.Context, story *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateStory"); err != nil {
		return err
	}
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now().UTC()
	c := *story
	m.stories[story.ID] = &c
	return nil
}

func (m *MemoryStore) GetStoryByID(_ context.Context, id string) (*models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetStoryByID"); err != nil {
		return nil, err
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	s, ok := m.stories[oid]
	if !ok {
		return nil, notFound("story", id)
	}
	c := *s
	return &c, nil
}

func (m *MemoryStore) listStories(method string, match func(*models.Story) bool, limit int64) ([]models.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(method); err != nil {
		return nil, err
	}
	out := []models.Story{}
	for _, s := range m.stories {
		if match(s) {
			out = append(out, *s)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Story) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return page(out, 0, limit), nil
}

func (m *MemoryStore) GetStories(_ context.Context, limit int64) ([]models.Story, error) {
	return m.listStories("GetStories", func(*models.Story) bool { return true }, limit)
}

func (m *MemoryStore) GetStoriesByUserID(_ context.Context, userID string) ([]models.Story, error) {
	return m.listStories("GetStoriesByUserID", func(s *models.Story) bool { return s.UserID == userID }, 0)
}

// Chats

func (m *MemoryStore) AppendMessage(_ context.Context, chatID string, msg models.Message) (*models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AppendMessage"); err != nil {
		return nil, err
	}
	chat, ok := m.chats[chatID]
	if !ok {
		chat = &models.Chat{ID: chatID, Messages: []models.Message{}}
		m.chats[chatID] = chat
	}
	if !chat.HasMessage(msg.ID) {
		chat.Messages = append(chat.Messages, msg)
	}
	return copyChat(chat), nil
}

func (m *MemoryStore) GetChat(_ context.Context, chatID string) (*models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetChat"); err != nil {
		return nil, err
	}
	chat, ok := m.chats[chatID]
	if !ok {
		return nil, notFound("chat", chatID)
	}
	return copyChat(chat), nil
}

var (
	_ UserRepository  = (*MemoryStore)(nil)
	_ PostRepository  = (*MemoryStore)(nil)
	_ StoryRepository = (*MemoryStore)(nil)
	_ ChatRepository  = (*MemoryStore)(nil)
	_ UserRepository  = (*MongoUserRepository)(nil)
	_ PostRepository  = (*MongoPostRepository)(nil)
	_ StoryRepository = (*MongoStoryRepository)(nil)
	_ ChatRepository  = (*MongoChatRepository)(nil)
)
