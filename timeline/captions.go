package timeline

import "golang.org/x/exp/slices"

// CaptionTrack describes one caption source attached to the lesson media.
type CaptionTrack struct {
	Kind         string `json:"kind"`
	Label        string `json:"label"`
	LanguageCode string `json:"language_code"`
	SourceURI    string `json:"source_uri"`
}

// TrackApplier pushes a track's showing/disabled mode to the playback surface.
type TrackApplier func(track CaptionTrack, showing bool)

// CaptionTrackSet tracks which caption language is selected and whether
// captions are globally enabled. On any change every track is set to showing
// iff captions are enabled and its language matches the selection; selecting a
// language with no matching track is a legal no-op that renders nothing.
type CaptionTrackSet struct {
	tracks   []CaptionTrack
	enabled  bool
	selected string
	apply    TrackApplier
}

// NewCaptionTrackSet creates the selection state over the given tracks.
// The applier may be nil when no surface is attached.
func NewCaptionTrackSet(tracks []CaptionTrack, apply TrackApplier) *CaptionTrackSet {
	return &CaptionTrackSet{
		tracks: slices.Clone(tracks),
		apply:  apply,
	}
}

// Tracks returns a copy of the configured tracks.
func (s *CaptionTrackSet) Tracks() []CaptionTrack {
	return slices.Clone(s.tracks)
}

// Enabled reports whether captions are globally enabled.
func (s *CaptionTrackSet) Enabled() bool {
	return s.enabled
}

// Selected returns the selected language code.
func (s *CaptionTrackSet) Selected() string {
	return s.selected
}

// Showing returns the track currently in showing mode, if any.
func (s *CaptionTrackSet) Showing() (CaptionTrack, bool) {
	if !s.enabled {
		return CaptionTrack{}, false
	}
	for _, track := range s.tracks {
		if track.LanguageCode == s.selected {
			return track, true
		}
	}
	return CaptionTrack{}, false
}

// SetEnabled toggles global caption visibility and reapplies track modes.
func (s *CaptionTrackSet) SetEnabled(enabled bool) {
	s.enabled = enabled
	s.refresh()
}

// SelectLanguage selects the caption language and reapplies track modes.
func (s *CaptionTrackSet) SelectLanguage(code string) {
	s.selected = code
	s.refresh()
}

func (s *CaptionTrackSet) refresh() {
	if s.apply == nil {
		return
	}
	for _, track := range s.tracks {
		s.apply(track, s.enabled && track.LanguageCode == s.selected)
	}
}
