package timecode

import (
	"errors"
	"fmt"
)

// RoundUpThreshold is the frame remainder at which a timestamp is pushed to
// the next whole second. It is applied unchanged at every frame rate.
const RoundUpThreshold = 13

// DefaultFrameRate is used when nothing else is configured.
const DefaultFrameRate = 25

// TicksPerSecond is the editor's internal tick rate.
const TicksPerSecond int64 = 254016000000

var ErrInvalidFrameRate = errors.New("frame rate must be > 0")

// TimeValue is a raw editor time. PerSecond == 0 means Units is a frame count.
type TimeValue struct {
	Units     int64
	PerSecond int64
}

func Frames(n int64) TimeValue { return TimeValue{Units: n} }

func Ticks(n, perSecond int64) TimeValue { return TimeValue{Units: n, PerSecond: perSecond} }

func (v TimeValue) IsFrames() bool { return v.PerSecond <= 0 }

// Add shifts v by off, converting off into v's scale first.
// Frame-scaled values need the frame rate to be rescaled; fps is ignored
// when both values share a scale.
func (v TimeValue) Add(off TimeValue, fps int) TimeValue {
	v.Units += rescale(off, v.PerSecond, fps)
	return v
}

func rescale(v TimeValue, perSecond int64, fps int) int64 {
	from := v.PerSecond
	if from <= 0 {
		from = int64(fps)
	}
	to := perSecond
	if to <= 0 {
		to = int64(fps)
	}
	if from == to || from <= 0 {
		return v.Units
	}
	return v.Units * to / from
}

// Converter formats TimeValues as HH:MM:SS at a fixed frame rate.
type Converter struct {
	fps int
}

func NewConverter(fps int) (Converter, error) {
	if fps <= 0 {
		return Converter{}, fmt.Errorf("%w (got %d)", ErrInvalidFrameRate, fps)
	}
	return Converter{fps: fps}, nil
}

func (c Converter) FrameRate() int { return c.fps }

func (c Converter) Format(v TimeValue) string {
	ups := v.PerSecond
	if ups <= 0 {
		ups = int64(c.fps)
	}
	return format(v.Units, ups, c.fps)
}

// Range renders "in - out".
func (c Converter) Range(in, out TimeValue) string {
	return c.Format(in) + " - " + c.Format(out)
}

// Format converts rawUnits at unitsPerSecond into HH:MM:SS.
func Format(rawUnits, unitsPerSecond int64, fps int) (string, error) {
	if fps <= 0 {
		return "", fmt.Errorf("%w (got %d)", ErrInvalidFrameRate, fps)
	}
	if unitsPerSecond <= 0 {
		unitsPerSecond = int64(fps)
	}
	return format(rawUnits, unitsPerSecond, fps), nil
}

func format(rawUnits, unitsPerSecond int64, fps int) string {
	unitsPerFrame := unitsPerSecond / int64(fps)
	if unitsPerFrame <= 0 {
		unitsPerFrame = 1
	}
	frames := RoundFrames(rawUnits/unitsPerFrame, fps)
	s := frames / int64(fps)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// RoundFrames snaps a frame count to a whole-second boundary: up when the
// remainder is at least RoundUpThreshold, down otherwise.
func RoundFrames(frames int64, fps int) int64 {
	rate := int64(fps)
	r := frames % rate
	if r >= RoundUpThreshold {
		return frames + rate - r
	}
	return frames - r
}
