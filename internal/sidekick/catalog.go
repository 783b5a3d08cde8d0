package sidekick

import (
	"fmt"
	"strings"
)

var roleLabels = map[Role]string{
	RoleMainArtist:      "Artiste principal",
	RoleSecondaryArtist: "Artiste secondaire",
	RoleMusician:        "Musicien interprète",
	RoleSinger:          "Chanteur interprète",
	RoleMusicalDirector: "Directeur musical",
}

// Roles lists every role in display order.
var Roles = []Role{RoleMainArtist, RoleSecondaryArtist, RoleMusician, RoleSinger, RoleMusicalDirector}

// RoleLabel returns the display label of r, or r itself when unknown.
func RoleLabel(r Role) string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// ParseRole validates s as one of Roles.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleLabels[r]; !ok {
		return "", fmt.Errorf("unknown role %q (expected one of %v)", s, Roles)
	}
	return r, nil
}

var albumTypeLabels = map[AlbumType]string{
	AlbumTypeAlbum:  "Album",
	AlbumTypeEP:     "EP",
	AlbumTypeSingle: "Single",
}

// AlbumTypeLabel returns the display label of t, or t itself when unknown.
func AlbumTypeLabel(t AlbumType) string {
	if l, ok := albumTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// NormalizeTrack fills the catalog defaults into a track read from older
// data: nil lists become empty and a missing role is the main artist.
func NormalizeTrack(t Track) Track {
	if t.GuestArtists == nil {
		t.GuestArtists = []string{}
	}
	if t.Versions == nil {
		t.Versions = []TrackVersion{}
	}
	if t.Role == "" {
		t.Role = RoleMainArtist
	}
	return t
}

// NormalizeAlbum fills the catalog defaults into an album.
func NormalizeAlbum(a Album) Album {
	if a.TrackIDs == nil {
		a.TrackIDs = []string{}
	}
	if a.Type == "" {
		a.Type = AlbumTypeAlbum
	}
	return a
}

// AddTrack appends t to the catalog. The title is trimmed and guest artists
// are trimmed with empty names dropped.
func AddTrack(doc Document, t Track) Document {
	t = NormalizeTrack(t)
	t.Title = strings.TrimSpace(t.Title)
	t.GuestArtists = filter(trimAll(t.GuestArtists), func(s string) bool { return s != "" })
	doc.Phono.Tracks = append(doc.Phono.Tracks, t)
	return doc
}

// UpdateTrack applies fn to the track with id.
func UpdateTrack(doc Document, id string, fn func(Track) Track) Document {
	for i := range doc.Phono.Tracks {
		if doc.Phono.Tracks[i].ID == id {
			doc.Phono.Tracks[i] = NormalizeTrack(fn(NormalizeTrack(doc.Phono.Tracks[i])))
		}
	}
	return doc
}

// RemoveTrack drops the track with id. Albums keep referencing it; those
// references resolve to nothing.
func RemoveTrack(doc Document, id string) Document {
	doc.Phono.Tracks = filter(doc.Phono.Tracks, func(t Track) bool { return t.ID != id })
	return doc
}

// AddAlbum appends a to the catalog.
func AddAlbum(doc Document, a Album) Document {
	a = NormalizeAlbum(a)
	a.Title = strings.TrimSpace(a.Title)
	doc.Phono.Albums = append(doc.Phono.Albums, a)
	return doc
}

// RemoveAlbum drops the album with id. Its tracks stay in the catalog.
func RemoveAlbum(doc Document, id string) Document {
	doc.Phono.Albums = filter(doc.Phono.Albums, func(a Album) bool { return a.ID != id })
	return doc
}

// ToggleAlbumTrack adds trackID to the album with albumID, or removes it if
// already listed.
func ToggleAlbumTrack(doc Document, albumID, trackID string) Document {
	for i := range doc.Phono.Albums {
		a := &doc.Phono.Albums[i]
		if a.ID != albumID {
			continue
		}
		listed := false
		for _, id := range a.TrackIDs {
			if id == trackID {
				listed = true
				break
			}
		}
		if listed {
			a.TrackIDs = filter(a.TrackIDs, func(id string) bool { return id != trackID })
		} else {
			a.TrackIDs = append(append([]string{}, a.TrackIDs...), trackID)
		}
	}
	return doc
}

// ResolveAlbumTracks returns the catalog tracks listed by album, in album
// order. Ids without a matching track are skipped.
func ResolveAlbumTracks(doc Document, album Album) []Track {
	byID := make(map[string]Track, len(doc.Phono.Tracks))
	for _, t := range doc.Phono.Tracks {
		byID[t.ID] = NormalizeTrack(t)
	}
	out := make([]Track, 0, len(album.TrackIDs))
	for _, id := range album.TrackIDs {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// FindAlbum returns the album with id.
func FindAlbum(doc Document, id string) (Album, bool) {
	for _, a := range doc.Phono.Albums {
		if a.ID == id {
			return NormalizeAlbum(a), true
		}
	}
	return Album{}, false
}

func trimAll(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
