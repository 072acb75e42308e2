package realtime

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
)

func (r *Router) routes() map[string]handlerFunc {
	v := r.validator
	createStory := bind(v, r.createStory)
	fetchMessages := bind(v, r.fetchMessages)

	return map[string]handlerFunc{
		EventCreateStory:    createStory,
		EventCreateNewStory: createStory,
		EventUserSearch:     bind(v, r.userSearch),
		EventFetchProfile:   bind(v, r.fetchProfile),
		EventPostLiked:      bind(v, r.likePost),
		EventPostUnliked:    bind(v, r.unlikePost),
		EventFollowUser:     bind(v, r.followUser),
		EventUnfollowUser:   bind(v, r.unfollowUser),
		EventMakeComment:    bind(v, r.makeComment),
		EventDeletePost:     bind(v, r.deletePost),
		EventUpdateProfile:  bind(v, r.updateProfile),
		EventFetchFriends:   bind(v, r.fetchFriends),
		EventFetchMessages:  fetchMessages,
		EventUpdateMessages: fetchMessages,
		EventNewMessage:     bind(v, r.newMessage),
		EventJoinChat:       bind(v, r.joinChat),
		EventLeaveChat:      bind(v, r.leaveChat),
		EventMessage:        r.relay,
	}
}

func (r *Router) createStory(ctx context.Context, c *Client, p *CreateStoryPayload) error {
	story, err := r.svc.Content.CreateStory(ctx, p.UserID, p.Username, models.CreateStoryRequest{
		MediaURL:  p.MediaURL,
		MediaType: p.MediaType,
		Text:      p.Text,
	})
	if err != nil {
		return err
	}
	return r.reply(c, EventStoryCreated, storyCreated{Story: story})
}

// userSearch answers with a null user when nobody has that name.
func (r *Router) userSearch(ctx context.Context, c *Client, p *UserSearchPayload) error {
	user, err := r.svc.Profiles.FindByUsername(ctx, p.Username)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return r.reply(c, EventSearchedUser, searchedUser{User: user})
}

func (r *Router) fetchProfile(ctx context.Context, c *Client, p *FetchProfilePayload) error {
	user, err := r.svc.Profiles.FindByID(ctx, p.ID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return r.reply(c, EventProfileFetched, profileFetched{Profile: user})
}

func (r *Router) likePost(ctx context.Context, _ *Client, p *LikePayload) error {
	post, err := r.svc.Graph.LikePost(ctx, p.PostID, p.UserID)
	if err != nil {
		return err
	}
	return r.Broadcast(EventLikeUpdated, LikeUpdated{PostID: p.PostID, Likes: post.Likes})
}

func (r *Router) unlikePost(ctx context.Context, _ *Client, p *LikePayload) error {
	post, err := r.svc.Graph.UnlikePost(ctx, p.PostID, p.UserID)
	if err != nil {
		return err
	}
	return r.Broadcast(EventLikeUpdated, LikeUpdated{PostID: p.PostID, Likes: post.Likes})
}

func (r *Router) followUser(ctx context.Context, c *Client, p *FollowPayload) error {
	user, err := r.svc.Graph.Follow(ctx, p.OwnID, p.FollowingUserID)
	if err != nil {
		return err
	}
	return r.reply(c, EventUserFollowed, userFollowed{Following: user.Following})
}

func (r *Router) unfollowUser(ctx context.Context, c *Client, p *FollowPayload) error {
	user, err := r.svc.Graph.Unfollow(ctx, p.OwnID, p.FollowingUserID)
	if err != nil {
		return err
	}
	return r.reply(c, EventUserFollowed, userFollowed{Following: user.Following})
}

func (r *Router) makeComment(ctx context.Context, _ *Client, p *CommentPayload) error {
	post, err := r.svc.Graph.AddComment(ctx, p.PostID, p.Username, p.Comment)
	if err != nil {
		return err
	}
	return r.Broadcast(EventCommentAdded, CommentAdded{PostID: p.PostID, Comments: post.Comments})
}

func (r *Router) deletePost(ctx context.Context, _ *Client, p *DeletePostPayload) error {
	if err := r.svc.Graph.DeletePost(ctx, p.PostID); err != nil {
		return err
	}
	return r.Broadcast(EventPostDeleted, PostDeleted{PostID: p.PostID})
}

func (r *Router) updateProfile(ctx context.Context, c *Client, p *UpdateProfilePayload) error {
	user, err := r.svc.Profiles.UpdateProfile(ctx, p.UserID, models.ProfileUpdate{
		Username:   p.Username,
		ProfilePic: p.ProfilePic,
		About:      p.About,
	})
	if err != nil {
		return err
	}
	return r.reply(c, EventProfileUpdated, profileUpdated{
		UserID:     user.ID.Hex(),
		ProfilePic: user.ProfilePic,
		Username:   user.Username,
		About:      user.About,
	})
}

func (r *Router) fetchFriends(ctx context.Context, c *Client, p *FetchFriendsPayload) error {
	friends, err := r.svc.Profiles.Friends(ctx, p.UserID)
	if err != nil {
		return err
	}
	return r.reply(c, EventFriendsFetched, friendsFetched{FriendsData: friends})
}

// fetchMessages joins the chat room and returns the chat, or null when no
// message was ever sent to it.
func (r *Router) fetchMessages(ctx context.Context, c *Client, p *ChatPayload) error {
	r.hub.Join(c, p.ChatID)
	chat, err := r.svc.Chats.Get(ctx, p.ChatID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return r.reply(c, EventMessagesUpdated, messagesUpdated{Chat: chat})
}

// newMessage stores the message, returns the chat to the sender and forwards
// the stored message to the other members of the room.
func (r *Router) newMessage(ctx context.Context, c *Client, p *NewMessagePayload) error {
	chat, err := r.svc.Chats.Append(ctx, p.ChatID, models.Message{
		ID:       p.ID,
		Text:     p.Text,
		File:     p.File,
		SenderID: p.SenderID,
		Date:     p.Date,
	})
	if err != nil {
		return err
	}
	r.hub.Join(c, p.ChatID)

	if err := r.reply(c, EventMessagesUpdated, messagesUpdated{Chat: chat}); err != nil {
		return err
	}
	stored := models.Message{ID: p.ID, Text: p.Text, File: p.File, SenderID: p.SenderID, Date: p.Date}
	for _, m := range chat.Messages {
		if m.ID == p.ID {
			stored = m
			break
		}
	}
	return r.broadcastToRoom(p.ChatID, EventMessageFromUser,
		messageFromUser{Message: roomMessage{Message: stored, ChatID: p.ChatID}}, c.id)
}

func (r *Router) joinChat(_ context.Context, c *Client, p *ChatPayload) error {
	r.hub.Join(c, p.ChatID)
	return r.reply(c, EventChatJoined, chatMembership{ChatID: p.ChatID})
}

func (r *Router) leaveChat(_ context.Context, c *Client, p *ChatPayload) error {
	r.hub.Leave(c, p.ChatID)
	return r.reply(c, EventChatLeft, chatMembership{ChatID: p.ChatID})
}

// relay echoes any payload to every connection.
func (r *Router) relay(_ context.Context, _ *Client, data json.RawMessage) error {
	return r.Broadcast(EventMessage, rawOrNull(data))
}
