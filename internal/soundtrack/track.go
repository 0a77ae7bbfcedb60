package soundtrack

import (
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
)

// Track is one played song attached to a workout session.
type Track struct {
	ID        int       `json:"id"`
	WorkoutID int       `json:"workoutId"`
	TrackID   string    `json:"trackId"`
	Artist    string    `json:"artist"`
	Album     string    `json:"album"`
	Song      string    `json:"song"`
	PlayedAt  time.Time `json:"playedAt"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"createdAt"`
}

// https://developer.spotify.com/documentation/web-api/reference/get-recently-played

func NewTrackFromRecentlyPlayedItem(item spotify.RecentlyPlayedItem) Track {
	artists := make([]string, 0, len(item.Track.Artists))
	for _, artist := range item.Track.Artists {
		artists = append(artists, artist.Name)
	}

	return Track{
		TrackID:  string(item.Track.ID),
		Artist:   strings.Join(artists, ", "),
		Album:    item.Track.Album.Name,
		Song:     item.Track.Name,
		PlayedAt: item.PlayedAt,
		Endpoint: item.Track.Endpoint,
	}
}
