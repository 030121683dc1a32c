package entity

import "time"

// Favorite links a user to an anime. The pair is not unique at the data
// layer; removing a favorite deletes every matching row.
type Favorite struct {
	ID        int64
	UserID    int64
	AnimeID   int64
	CreatedAt time.Time
}
