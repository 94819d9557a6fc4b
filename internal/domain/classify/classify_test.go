package classify

import (
	"testing"

	"github.com/forPelevin/prclips/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		fallback string
		want     types.ClassifiedClip
	}{
		{
			name: "colourbox video",
			path: "/Volumes/Media/clips/COLOURBOX4567_sunset.mp4",
			want: types.ClassifiedClip{Name: "sunset", Type: types.MediaVideo, Source: types.SourceColourbox, ID: "4567"},
		},
		{
			name: "colourbox wins over imago",
			path: "IMAGO_COLOURBOX123_clip.mp4",
			want: types.ClassifiedClip{Name: "COLOURBOX123_clip", Type: types.MediaVideo, Source: types.SourceColourbox, ID: "123"},
		},
		{
			name: "imago image",
			path: "/stock/imago0987654_berlin_skyline.JPG",
			want: types.ClassifiedClip{Name: "berlin_skyline", Type: types.MediaImage, Source: types.SourceImago, ID: "0987654"},
		},
		{
			name: "artlist leading digits",
			path: "/music/123456_artlist_drone_shot.mov",
			want: types.ClassifiedClip{Name: "artlist_drone_shot", Type: types.MediaVideo, Source: types.SourceArtlist, ID: "123456"},
		},
		{
			name: "artlist without leading digits",
			path: "ARTLIST_ocean.webm",
			want: types.ClassifiedClip{Name: "ocean", Type: types.MediaVideo, Source: types.SourceArtlist, ID: "-"},
		},
		{
			name: "query suffix stripped",
			path: "https://cdn.example.com/a/COLOURBOX1_logo.png?token=abc_def.mp4",
			want: types.ClassifiedClip{Name: "logo", Type: types.MediaImage, Source: types.SourceColourbox, ID: "1"},
		},
		{
			name:     "unknown extension falls back to graphic element and fallback name",
			path:     "/gfx/lowerthird.aep",
			fallback: "Lower Third.aep",
			want:     types.ClassifiedClip{Name: "Lower Third", Type: types.MediaGraphicElement, Source: types.SourceOther, ID: "-"},
		},
		{
			name:     "no name segment and empty fallback",
			path:     "/gfx/title.psd",
			fallback: "",
			want:     types.ClassifiedClip{Name: "Unnamed", Type: types.MediaGraphicElement, Source: types.SourceOther, ID: "-"},
		},
		{
			name: "no extension",
			path: "/x/shot_one",
			want: types.ClassifiedClip{Name: "one", Type: types.MediaGraphicElement, Source: types.SourceOther, ID: "-"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.path, tc.fallback)
			if got != tc.want {
				t.Fatalf("Classify(%q) = %+v, want %+v", tc.path, got, tc.want)
			}
		})
	}
}

func TestClassify_ExtensionCaseInsensitive(t *testing.T) {
	upper := Classify("file.MP4", "file")
	lower := Classify("file.mp4", "file")
	if upper != lower {
		t.Fatalf("case changed classification: %+v vs %+v", upper, lower)
	}
	if upper.Type != types.MediaVideo {
		t.Fatalf("expected Video, got %s", upper.Type)
	}
}

func TestClassify_Pure(t *testing.T) {
	path := "/a/COLOURBOX42_b_c.mov"
	first := Classify(path, "x")
	for i := 0; i < 3; i++ {
		Classify("/other/IMAGO9_y.png", "y")
		if got := Classify(path, "x"); got != first {
			t.Fatalf("call %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestFilename(t *testing.T) {
	tests := map[string]string{
		"/a/b/c.mp4":      "c.mp4",
		"c.mp4":           "c.mp4",
		"/a/c.mp4?x=1":    "c.mp4",
		"/a/dir/":         "",
		"/a/c.mp4?x=1?y=": "c.mp4",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := Filename(in); got != want {
				t.Fatalf("Filename(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
