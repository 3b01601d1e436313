package service

import "inkwell/dao"

// ProfileService manages the directed follow relation and profile reads.
type ProfileService struct {
	users   *dao.UserDAO
	follows *dao.FollowDAO
}

func NewProfileService(users *dao.UserDAO, follows *dao.FollowDAO) *ProfileService {
	return &ProfileService{users: users, follows: follows}
}

// GetProfile resolves a user by username. The following flag is omitted
// for anonymous viewers and for self-views.
func (s *ProfileService) GetProfile(viewerID *uint64, username string) (ProfileView, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if dao.IsNotFound(err) {
			return ProfileView{}, ErrUserNotFound
		}
		return ProfileView{}, err
	}

	var following *bool
	if viewerID != nil && *viewerID != user.ID {
		f, err := s.follows.Exists(*viewerID, user.ID)
		if err != nil {
			return ProfileView{}, err
		}
		following = &f
	}
	return ProjectProfile(user, following), nil
}

// Follow inserts the directed edge follower → target. Self-follows and
// duplicate edges are conflicts.
func (s *ProfileService) Follow(followerID uint64, username string) (ProfileView, error) {
	target, err := s.users.GetByUsername(username)
	if err != nil {
		if dao.IsNotFound(err) {
			return ProfileView{}, ErrUserNotFound
		}
		return ProfileView{}, err
	}
	if target.ID == followerID {
		return ProfileView{}, ErrCannotFollowSelf
	}

	exists, err := s.follows.Exists(followerID, target.ID)
	if err != nil {
		return ProfileView{}, err
	}
	if exists {
		return ProfileView{}, ErrAlreadyFollowing
	}

	if err := s.follows.Create(followerID, target.ID); err != nil {
		// The existence check is advisory; the composite key decides races.
		if dao.IsDuplicateKey(err) {
			return ProfileView{}, ErrAlreadyFollowing
		}
		return ProfileView{}, err
	}

	following := true
	return ProjectProfile(target, &following), nil
}

// Unfollow removes the edge; an absent edge is a conflict.
func (s *ProfileService) Unfollow(followerID uint64, username string) (ProfileView, error) {
	target, err := s.users.GetByUsername(username)
	if err != nil {
		if dao.IsNotFound(err) {
			return ProfileView{}, ErrUserNotFound
		}
		return ProfileView{}, err
	}
	if target.ID == followerID {
		return ProfileView{}, ErrCannotUnfollowSelf
	}

	exists, err := s.follows.Exists(followerID, target.ID)
	if err != nil {
		return ProfileView{}, err
	}
	if !exists {
		return ProfileView{}, ErrNotFollowing
	}

	if err := s.follows.Delete(followerID, target.ID); err != nil {
		return ProfileView{}, err
	}

	following := false
	return ProjectProfile(target, &following), nil
}
