package data

import "time"

// Songs belong to one artist and, optionally, to one album. A nil AlbumID is
// a single or an album that has since been deleted.
type Song struct {
	ID    int64
	Title string

	ArtistID int64
	AlbumID  *int64

	// like "jazz"
	Genre       string
	ReleaseDate *time.Time
}

type SongDTO struct {
	SongID      int64  `json:"songId"`
	Title       string `json:"title" binding:"required"`
	ArtistID    int64  `json:"artistId"`
	AlbumID     *int64 `json:"albumId"`
	Genre       string `json:"genre"`
	ReleaseDate *Time  `json:"releaseDate"`
}

func (s *Song) DTO() SongDTO {
	return SongDTO{
		SongID:      s.ID,
		Title:       s.Title,
		ArtistID:    s.ArtistID,
		AlbumID:     s.AlbumID,
		Genre:       s.Genre,
		ReleaseDate: wrapTime(s.ReleaseDate),
	}
}

func (d *SongDTO) Apply(s *Song) {
	s.Title = d.Title
	s.ArtistID = d.ArtistID
	s.AlbumID = d.AlbumID
	s.Genre = d.Genre
	s.ReleaseDate = d.ReleaseDate.unwrap()
}
