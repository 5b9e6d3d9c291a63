package server

import (
	"github.com/amonks/musiclib/data"
	"github.com/amonks/musiclib/db"
	"github.com/amonks/musiclib/resource"
	"github.com/gin-gonic/gin"
)

var (
	artistMapping = resource.Mapping[data.Artist, data.ArtistDTO]{
		ToDTO: (*data.Artist).DTO,
		Apply: (*data.ArtistDTO).Apply,
		ID:    func(d *data.ArtistDTO) int64 { return d.ArtistID },
	}
	albumMapping = resource.Mapping[data.Album, data.AlbumDTO]{
		ToDTO: (*data.Album).DTO,
		Apply: (*data.AlbumDTO).Apply,
		ID:    func(d *data.AlbumDTO) int64 { return d.AlbumID },
	}
	songMapping = resource.Mapping[data.Song, data.SongDTO]{
		ToDTO: (*data.Song).DTO,
		Apply: (*data.SongDTO).Apply,
		ID:    func(d *data.SongDTO) int64 { return d.SongID },
	}
)

// registerAPI mounts /Artist, /Album, and /Song on g, each with the same five
// CRUD routes, plus listings of the rows that point at a given artist or
// album.
func registerAPI(g *gin.RouterGroup, d *db.DB) {
	artists := db.NewTable[data.Artist](d)
	albums := db.NewTable[data.Album](d)
	songs := db.NewTable[data.Song](d)

	resource.New("Artist", artists, artistMapping).
		With(
			resource.Children[data.Album, data.AlbumDTO]{
				Path: "Albums", Column: "artist_id", Store: albums, ToDTO: albumMapping.ToDTO,
			},
			resource.Children[data.Song, data.SongDTO]{
				Path: "Songs", Column: "artist_id", Store: songs, ToDTO: songMapping.ToDTO,
			},
		).
		Register(g)

	resource.New("Album", albums, albumMapping).
		With(
			resource.Children[data.Song, data.SongDTO]{
				Path: "Songs", Column: "album_id", Store: songs, ToDTO: songMapping.ToDTO,
			},
		).
		Register(g)

	resource.New("Song", songs, songMapping).
		Register(g)
}
