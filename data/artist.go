package data

import "time"

// Artists have many albums and many songs, both via artist_id on the child
// row.
type Artist struct {
	ID int64

	// like "Nina Simone"
	Name string
	Bio  string

	// Stamped by gorm on insert if left zero.
	CreatedAt time.Time
}

type ArtistDTO struct {
	ArtistID  int64  `json:"artistId"`
	Name      string `json:"name" binding:"required"`
	Bio       string `json:"bio" binding:"required"`
	CreatedAt Time   `json:"createdAt"`
}

func (a *Artist) DTO() ArtistDTO {
	return ArtistDTO{
		ArtistID:  a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		CreatedAt: Time{Time: a.CreatedAt},
	}
}

// Apply overwrites every mutable field of the artist. The id is left alone.
func (d *ArtistDTO) Apply(a *Artist) {
	a.Name = d.Name
	a.Bio = d.Bio
	a.CreatedAt = d.CreatedAt.Time
}
