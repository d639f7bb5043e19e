package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
}

type Campsite struct {
	ID          int64
	UserID      string
	Name        string
	Description *string
	DateVisited *string // ISO calendar date, e.g. "2024-05-01"
	Rating      *int
	City        *string
	State       *string
	Country     *string
	Notes       *string
	Lat         *float64
	Lng         *float64
	CreatedAt   time.Time
}

type Photo struct {
	ID            int64
	UserID        string
	CampsiteID    int64
	StorageBucket string
	StoragePath   string
	OriginalName  string
	ContentType   string
	SizeBytes     int64
	CreatedAt     time.Time
}

// NewCampsite carries the writable fields for campsite creation. Optional
// fields are nil when not provided.
type NewCampsite struct {
	Name        string
	Description *string
	DateVisited *string
	Rating      *int
	City        *string
	State       *string
	Country     *string
	Notes       *string
	Lat         *float64
	Lng         *float64
}

// CampsiteFilter narrows List results. Zero values mean "no constraint".
type CampsiteFilter struct {
	MinRating    int
	State        string
	VisitedAfter string // inclusive ISO date lower bound on date_visited
}
