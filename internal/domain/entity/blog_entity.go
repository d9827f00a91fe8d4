package entity

import "time"

// Blog is a post authored by a user. AuthorID is immutable after creation;
// every mutation must come from that user.
type Blog struct {
	ID             string
	AuthorID       string
	AuthorUsername string
	Title          string
	Content        string
	Tags           []string
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (b *Blog) OwnerID() string { return b.AuthorID }
