package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
)

type Profiles struct {
	users repositories.UserRepository
}

func NewProfiles(users repositories.UserRepository) *Profiles {
	return &Profiles{users: users}
}

func (p *Profiles) FindByID(ctx context.Context, id string) (*models.User, error) {
	return p.users.GetUserByID(ctx, id)
}

func (p *Profiles) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return p.users.GetUserByUsername(ctx, username)
}

// UpdateProfile overwrites the non-empty fields of update.
func (p *Profiles) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error) {
	if update.Username != "" {
		other, err := p.users.GetUserByUsername(ctx, update.Username)
		switch {
		case err == nil && other.ID.Hex() != userID:
			return nil, fmt.Errorf("%w: username %s is taken", common.ErrorDuplicate, update.Username)
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return nil, err
		}
	}
	return p.users.UpdateProfile(ctx, userID, update)
}

// Friends returns the users who both follow and are followed by userID, in
// the order of the user's following list. An unknown user has no friends.
func (p *Profiles) Friends(ctx context.Context, userID string) ([]models.UserCompact, error) {
	user, err := p.users.GetUserByID(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return []models.UserCompact{}, nil
	}
	if err != nil {
		return nil, err
	}

	followers := make(map[string]struct{}, len(user.Followers))
	for _, id := range user.Followers {
		followers[id] = struct{}{}
	}
	mutual := make([]string, 0)
	for _, id := range user.Following {
		if _, ok := followers[id]; ok {
			mutual = append(mutual, id)
		}
	}
	if len(mutual) == 0 {
		return []models.UserCompact{}, nil
	}
	return p.users.GetUsersByIDs(ctx, mutual)
}
