package application

import "errors"

// ErrNotOwner means the requester is authenticated but does not own the
// resource it is trying to mutate.
var ErrNotOwner = errors.New("not authorized")

// Owned is any resource that records its creator. The owner reference is set
// at creation and never changes.
type Owned interface {
	OwnerID() string
}

// RequireOwner is the single ownership check used for every mutating
// operation: the resource's owner reference must equal the session's user id
// exactly. It compares identifiers, never usernames.
func RequireOwner(res Owned, userID string) error {
	if res.OwnerID() != userID {
		return ErrNotOwner
	}
	return nil
}
