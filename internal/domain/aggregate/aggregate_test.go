package aggregate

import (
	"reflect"
	"testing"

	"github.com/forPelevin/prclips/internal/domain/timecode"
	"github.com/forPelevin/prclips/internal/types"
)

func conv(t *testing.T) timecode.Converter {
	t.Helper()
	c, err := timecode.NewConverter(25)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func occ(path string, in, out int64) types.ClipOccurrence {
	return types.ClipOccurrence{
		MasterClipID: path,
		MediaPath:    path,
		In:           timecode.Frames(in),
		Out:          timecode.Frames(out),
	}
}

func TestAggregate_GroupsRepeatedClip(t *testing.T) {
	recs := Aggregate([]types.ClipOccurrence{
		occ("/clips/COLOURBOX4567_sunset.mp4", 0, 100),
		occ("/clips/COLOURBOX4567_sunset.mp4", 500, 600),
	}, conv(t))

	want := []types.ClipRecord{{
		Name:      "sunset",
		Type:      types.MediaVideo,
		Source:    types.SourceColourbox,
		ID:        "4567",
		Timecodes: []string{"00:00:00 - 00:00:04", "00:00:20 - 00:00:24"},
	}}
	if !reflect.DeepEqual(recs, want) {
		t.Fatalf("unexpected records:\n got %+v\nwant %+v", recs, want)
	}
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	recs := Aggregate([]types.ClipOccurrence{
		occ("/b/IMAGO2_late.png", 2500, 2600),
		occ("/a/COLOURBOX1_early.mp4", 0, 50),
		occ("/b/IMAGO2_late.png", 25, 50),
	}, conv(t))

	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Name != "late" || recs[1].Name != "early" {
		t.Fatalf("records not in first-seen order: %+v", recs)
	}
	if !reflect.DeepEqual(recs[0].Timecodes, []string{"00:01:40 - 00:01:44", "00:00:01 - 00:00:02"}) {
		t.Fatalf("ranges not in traversal order: %v", recs[0].Timecodes)
	}
}

func TestAggregate_SameNameDifferentSourceStaysSeparate(t *testing.T) {
	recs := Aggregate([]types.ClipOccurrence{
		occ("/a/COLOURBOX1_beach.mp4", 0, 25),
		occ("/a/IMAGO1_beach.mp4", 0, 25),
		occ("/a/COLOURBOX1_beach.png", 0, 25),
	}, conv(t))
	if len(recs) != 3 {
		t.Fatalf("expected 3 distinct records, got %d: %+v", len(recs), recs)
	}
}

func TestAggregate_SkipsOccurrenceWithoutMedia(t *testing.T) {
	recs := Aggregate([]types.ClipOccurrence{{Name: "x"}}, conv(t))
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %+v", recs)
	}
}

func TestSortByEarliest(t *testing.T) {
	recs := []types.ClipRecord{
		{Name: "c", Timecodes: []string{"00:02:00 - 00:02:10"}},
		{Name: "a", Timecodes: []string{"00:05:00 - 00:05:01", "00:00:10 - 00:00:20"}},
		{Name: "b", Timecodes: []string{"00:01:00 - 00:01:10"}},
	}
	SortByEarliest(recs)
	got := []string{recs[0].Name, recs[1].Name, recs[2].Name}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}
