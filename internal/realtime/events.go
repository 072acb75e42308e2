package realtime

import (
	"encoding/json"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
)

// Inbound event names.
const (
	EventCreateStory    = "create-story"
	EventCreateNewStory = "create-new-story"
	EventUserSearch     = "user-search"
	EventFetchProfile   = "fetch-profile"
	EventPostLiked      = "postLiked"
	EventPostUnliked    = "postUnLiked"
	EventFollowUser     = "followUser"
	EventUnfollowUser   = "unFollowUser"
	EventMakeComment    = "makeComment"
	EventDeletePost     = "delete-post"
	EventUpdateProfile  = "updateProfile"
	EventFetchFriends   = "fetch-friends"
	EventFetchMessages  = "fetch-messages"
	EventUpdateMessages = "update-messages"
	EventNewMessage     = "new-message"
	EventJoinChat       = "join-chat"
	EventLeaveChat      = "leave-chat"
	EventMessage        = "message"
)

// Outbound event names.
const (
	EventStoryCreated    = "story-created"
	EventSearchedUser    = "searched-user"
	EventProfileFetched  = "profile-fetched"
	EventLikeUpdated     = "likeUpdated"
	EventUserFollowed    = "userFollowed"
	EventCommentAdded    = "commentAdded"
	EventPostDeleted     = "postDeleted"
	EventProfileUpdated  = "profileUpdated"
	EventFriendsFetched  = "friends-data-fetched"
	EventMessagesUpdated = "messages-updated"
	EventMessageFromUser = "message-from-user"
	EventChatJoined      = "chat-joined"
	EventChatLeft        = "chat-left"
	EventError           = "error"
)

// Envelope is the wire frame in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func encodeFrame(event string, data any) ([]byte, error) {
	return json.Marshal(outbound{Event: event, Data: data})
}

// Inbound payloads

type CreateStoryPayload struct {
	UserID    string `json:"userId" validate:"required"`
	Username  string `json:"username"`
	MediaType string `json:"mediaType" validate:"omitempty,oneof=image video"`
	MediaURL  string `json:"mediaUrl" validate:"required"`
	Text      string `json:"text" validate:"max=500"`
}

type UserSearchPayload struct {
	Username string `json:"username" validate:"required"`
}

type FetchProfilePayload struct {
	ID string `json:"_id" validate:"required"`
}

type LikePayload struct {
	UserID string `json:"userId" validate:"required"`
	PostID string `json:"postId" validate:"required"`
}

type FollowPayload struct {
	OwnID           string `json:"ownId" validate:"required"`
	FollowingUserID string `json:"followingUserId" validate:"required"`
}

type CommentPayload struct {
	PostID   string `json:"postId" validate:"required"`
	Username string `json:"username" validate:"required"`
	Comment  string `json:"comment" validate:"required,max=2200"`
}

type DeletePostPayload struct {
	PostID string `json:"postId" validate:"required"`
}

type UpdateProfilePayload struct {
	UserID     string `json:"userId" validate:"required"`
	ProfilePic string `json:"profilePic"`
	Username   string `json:"username" validate:"omitempty,min=2,max=50"`
	About      string `json:"about" validate:"max=500"`
}

type FetchFriendsPayload struct {
	UserID string `json:"userId" validate:"required"`
}

type ChatPayload struct {
	ChatID string `json:"chatId" validate:"required"`
}

type NewMessagePayload struct {
	ChatID   string    `json:"chatId" validate:"required"`
	ID       string    `json:"id" validate:"required"`
	Text     string    `json:"text"`
	File     string    `json:"file"`
	SenderID string    `json:"senderId" validate:"required"`
	Date     time.Time `json:"date"`
}

// Outbound payloads

type storyCreated struct {
	Story *models.Story `json:"story"`
}

type searchedUser struct {
	User *models.User `json:"user"`
}

type profileFetched struct {
	Profile *models.User `json:"profile"`
}

type LikeUpdated struct {
	PostID string   `json:"postId"`
	Likes  []string `json:"likes"`
}

type userFollowed struct {
	Following []string `json:"following"`
}

type CommentAdded struct {
	PostID   string           `json:"postId"`
	Comments []models.Comment `json:"comments"`
}

type PostDeleted struct {
	PostID string `json:"postId"`
}

type profileUpdated struct {
	UserID     string `json:"userId"`
	ProfilePic string `json:"profilePic"`
	Username   string `json:"username"`
	About      string `json:"about"`
}

type friendsFetched struct {
	FriendsData []models.UserCompact `json:"friendsData"`
}

type messagesUpdated struct {
	Chat *models.Chat `json:"chat"`
}

type roomMessage struct {
	models.Message
	ChatID string `json:"chatId"`
}

type messageFromUser struct {
	Message roomMessage `json:"message"`
}

type chatMembership struct {
	ChatID string `json:"chatId"`
}

type errorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

func rawOrNull(data json.RawMessage) json.RawMessage {
	if len(data) == 0 {
		return json.RawMessage("null")
	}
	return data
}
