package service

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors. Services only classify; the API layer maps them to
// status codes and response messages.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrForbidden = errors.New("operation forbidden")

	ErrArticleConflict = errors.New("article slug already exists")
	ErrEmailTaken      = errors.New("email already exists")
	ErrUsernameTaken   = errors.New("username already exists")

	ErrAlreadyFavorited = errors.New("article already favorited")
	ErrNotFavorited     = errors.New("article not favorited yet")

	ErrAlreadyFollowing   = errors.New("already following user")
	ErrNotFollowing       = errors.New("not following user")
	ErrCannotFollowSelf   = errors.New("cannot follow yourself")
	ErrCannotUnfollowSelf = errors.New("cannot unfollow yourself")

	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// PublishNotFoundError carries the slugs that blocked a bulk publish.
// The whole batch fails; nothing is published.
type PublishNotFoundError struct {
	Slugs []string
}

func (e *PublishNotFoundError) Error() string {
	return fmt.Sprintf("articles not found or not publishable: %s", strings.Join(e.Slugs, ", "))
}

func (e *PublishNotFoundError) Is(target error) bool {
	return target == ErrArticleNotFound
}
