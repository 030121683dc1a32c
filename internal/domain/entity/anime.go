package entity

import "time"

// AnimeStatus is the airing status of a catalog entry.
type AnimeStatus string

const (
	StatusOngoing   AnimeStatus = "ongoing"
	StatusCompleted AnimeStatus = "completed"
	StatusUpcoming  AnimeStatus = "upcoming"
)

func (s AnimeStatus) Valid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusUpcoming:
		return true
	}
	return false
}

// Anime is a catalog entry. Mutated only through the admin procedures;
// Rating uses a 0-100 scale, Genre is a comma-separated tag string.
type Anime struct {
	ID            int64
	Title         string
	Description   string
	Genre         string
	Episodes      int
	Status        AnimeStatus
	CoverImageURL string
	TrailerURL    string
	ReleaseYear   int
	Rating        int
	Views         int
	IsPremiumOnly bool
	UploadedBy    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
