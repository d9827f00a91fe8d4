package entity

import "time"

// Comment belongs to exactly one blog and one author.
type Comment struct {
	ID             string
	BlogID         string
	AuthorID       string
	AuthorUsername string
	Content        string
	CreatedAt      time.Time
}

func (c *Comment) OwnerID() string { return c.AuthorID }
