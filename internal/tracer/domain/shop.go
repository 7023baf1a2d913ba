package domain

import "time"

// Shop is created lazily the first time a purchase references an unseen shop
// name and is never updated or deleted. Shop names are globally unique.
type Shop struct {
	ID        string
	Shopname  string
	CreatedAt time.Time
}
