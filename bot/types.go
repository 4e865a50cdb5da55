package bot

// SongEntity holds the metadata of a single resolved track.
type SongEntity struct {
	Title        string `json:"title"`
	ArtistName   string `json:"artistName"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// PlatformLink is one streaming/purchase destination for a song,
// keyed by provider in ResolvedSong.LinksByPlatform.
type PlatformLink struct {
	URL                 string `json:"url"`
	EntityUniqueID      string `json:"entityUniqueId"`
	NativeAppURIDesktop string `json:"nativeAppUriDesktop,omitempty"`
	NativeAppURIMobile  string `json:"nativeAppUriMobile,omitempty"`
}

// ResolvedSong is the result of resolving one canonical URL against the
// link-resolution service. EntityUniqueID must reference an entry in
// EntitiesByUniqueID; the resolution client treats any payload violating
// that as "not found".
type ResolvedSong struct {
	EntityUniqueID     string                  `json:"entityUniqueId"`
	PageURL            string                  `json:"pageUrl"`
	EntitiesByUniqueID map[string]SongEntity   `json:"entitiesByUniqueId"`
	LinksByPlatform    map[string]PlatformLink `json:"linksByPlatform"`
}

// Entity returns the metadata of the entity the result points at.
func (s *ResolvedSong) Entity() (SongEntity, bool) {
	if s == nil || s.EntityUniqueID == "" {
		return SongEntity{}, false
	}
	entity, ok := s.EntitiesByUniqueID[s.EntityUniqueID]
	return entity, ok
}
