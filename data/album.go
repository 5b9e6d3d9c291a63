package data

import "time"

// Albums belong to one artist and have many songs via album_id on the song.
type Album struct {
	ID    int64
	Title string

	ReleaseDate *time.Time

	// like "https://example.com/covers/wild-is-the-wind.jpg"
	CoverImage string

	ArtistID int64
}

type AlbumDTO struct {
	AlbumID     int64  `json:"albumId"`
	Title       string `json:"title" binding:"required"`
	ReleaseDate *Time  `json:"releaseDate"`
	CoverImage  string `json:"coverImage"`
	ArtistID    int64  `json:"artistId"`
}

func (a *Album) DTO() AlbumDTO {
	return AlbumDTO{
		AlbumID:     a.ID,
		Title:       a.Title,
		ReleaseDate: wrapTime(a.ReleaseDate),
		CoverImage:  a.CoverImage,
		ArtistID:    a.ArtistID,
	}
}

func (d *AlbumDTO) Apply(a *Album) {
	a.Title = d.Title
	a.ReleaseDate = d.ReleaseDate.unwrap()
	a.CoverImage = d.CoverImage
	a.ArtistID = d.ArtistID
}
