package types

import "github.com/forPelevin/prclips/internal/domain/timecode"

// MasterClip is one clip definition from the project, keyed by ID.
type MasterClip struct {
	ID        string
	Name      string
	MediaPath string
}

type TrackKind string

const (
	TrackVideo   TrackKind = "Video"
	TrackAudio   TrackKind = "Audio"
	TrackUnknown TrackKind = ""
)

type Track struct {
	Kind  TrackKind
	Index int // 1-based within its kind, 0 when unknown
}

// ClipOccurrence is one placement of a master clip on a timeline.
type ClipOccurrence struct {
	MasterClipID string
	Name         string
	MediaPath    string
	In           timecode.TimeValue
	Out          timecode.TimeValue
	Track        Track
	Sequence     string
}

type MediaType string

const (
	MediaVideo          MediaType = "Video"
	MediaImage          MediaType = "Image"
	MediaGraphicElement MediaType = "GraphicElement"
)

type Source string

const (
	SourceColourbox Source = "Colourbox"
	SourceImago     Source = "Imago"
	SourceArtlist   Source = "Artlist"
	SourceOther     Source = "Other"
)

type ClassifiedClip struct {
	Name   string
	Type   MediaType
	Source Source
	ID     string
}

// ClipRecord is one distinct clip with every timeline range it occupies.
type ClipRecord struct {
	Name      string    `json:"name"`
	Type      MediaType `json:"type"`
	Source    Source    `json:"source"`
	ID        string    `json:"id"`
	Timecodes []string  `json:"timecodes"`
}

// Report is the serialised result of one extraction run.
type Report struct {
	Input     string       `json:"input"`
	FrameRate int          `json:"frame_rate"`
	Clips     []ClipRecord `json:"clips"`
	Stats     Stats        `json:"stats"`
}

type Stats struct {
	Containers         int `json:"containers"`
	ClipNodes          int `json:"clip_nodes"`
	Occurrences        int `json:"occurrences"`
	DroppedDefinitions int `json:"dropped_definitions"`
	SkippedUnresolved  int `json:"skipped_unresolved"`
	SkippedBadTime     int `json:"skipped_bad_time"`
	SkippedCycles      int `json:"skipped_cycles"`
}
