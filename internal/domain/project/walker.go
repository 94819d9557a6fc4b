package project

import (
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/forPelevin/prclips/internal/domain/timecode"
	"github.com/forPelevin/prclips/internal/logging"
	"github.com/forPelevin/prclips/internal/types"
)

// DefaultMaxDepth bounds nested-sequence recursion.
const DefaultMaxDepth = 16

type WalkOptions struct {
	FrameRate      int
	TicksPerSecond int64

	// Nested expands clips that reference another sequence into that
	// sequence's clips, shifted by the outer clip's start.
	Nested   bool
	MaxDepth int

	Logger *slog.Logger
}

type walker struct {
	lookup  Lookup
	opts    WalkOptions
	log     *slog.Logger
	byID    map[string]*etree.Element
	stats   types.Stats
	out     []types.ClipOccurrence
	visited map[*etree.Element]bool
}

// Walk collects every clip occurrence from the document's sequences in
// document order. Occurrences that cannot be resolved or timed are skipped and
// counted in the returned stats.
func Walk(doc *Document, lookup Lookup, opts WalkOptions) ([]types.ClipOccurrence, types.Stats, error) {
	if _, err := timecode.NewConverter(opts.FrameRate); err != nil {
		return nil, types.Stats{}, err
	}
	if opts.TicksPerSecond <= 0 {
		opts.TicksPerSecond = timecode.TicksPerSecond
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	containers := findContainers(doc.Root())
	if len(containers) == 0 {
		return nil, types.Stats{}, ErrNoTimelines
	}

	w := &walker{
		lookup:  lookup,
		opts:    opts,
		log:     log,
		byID:    indexContainers(containers),
		visited: make(map[*etree.Element]bool),
	}
	w.stats.DroppedDefinitions = lookup.Dropped

	for _, c := range containers {
		if opts.Nested && hasContainerAncestor(c) {
			continue
		}
		w.stats.Containers++
		w.walkContainer(c, timecode.Frames(0), nil, 0)
	}
	w.stats.Occurrences = len(w.out)
	return w.out, w.stats, nil
}

func isContainer(el *etree.Element) bool {
	return tagIs(el, "sequence")
}

func findContainers(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	visit(root, func(el *etree.Element) bool {
		if isContainer(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

func containerID(el *etree.Element) string {
	return attr(el, "id", "ObjectID", "ObjectUID")
}

// indexContainers maps ids to the first container with that id that actually
// holds clips; bare id references are not definitions.
func indexContainers(containers []*etree.Element) map[string]*etree.Element {
	idx := make(map[string]*etree.Element)
	for _, c := range containers {
		id := containerID(c)
		if id == "" {
			continue
		}
		if _, ok := idx[id]; ok {
			continue
		}
		if holdsClips(c) {
			idx[id] = c
		}
	}
	return idx
}

func holdsClips(c *etree.Element) bool {
	found := false
	visit(c, func(el *etree.Element) bool {
		if found {
			return false
		}
		if _, ok := matchShape(el); ok {
			found = true
			return false
		}
		return el == c || !isContainer(el)
	})
	return found
}

func hasContainerAncestor(el *etree.Element) bool {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if isContainer(p) {
			return true
		}
	}
	return false
}

func (w *walker) walkContainer(c *etree.Element, offset timecode.TimeValue, outer *types.Track, depth int) {
	w.visited[c] = true
	defer delete(w.visited, c)

	seqName := childText(c, "name", "Name")
	visit(c, func(el *etree.Element) bool {
		if el == c {
			return true
		}
		if isContainer(el) {
			return false
		}
		shape, ok := matchShape(el)
		if !ok {
			return true
		}
		w.clip(c, el, shape, seqName, offset, outer, depth)
		return false
	})
}

func (w *walker) clip(
	c, el *etree.Element,
	shape clipShape,
	seqName string,
	offset timecode.TimeValue,
	outer *types.Track,
	depth int,
) {
	w.stats.ClipNodes++

	track := trackOf(el, c)
	if outer != nil {
		track = *outer
	}

	ref := shape.ref(el)
	inRaw, outRaw, timed := shape.bounds(el)

	if w.opts.Nested {
		if nested := w.nestedContainer(el, ref); nested != nil {
			if !timed {
				w.stats.SkippedBadTime++
				w.log.Debug("nested sequence clip without usable in/out", "sequence", seqName, "shape", shape.name)
				return
			}
			if w.visited[nested] || depth+1 > w.opts.MaxDepth {
				w.stats.SkippedCycles++
				w.log.Warn("nested sequence not expanded", "sequence", seqName, "ref", containerID(nested), "depth", depth+1)
				return
			}
			inner := w.value(shape, inRaw).Add(offset, w.opts.FrameRate)
			w.walkContainer(nested, inner, &track, depth+1)
			return
		}
	}

	mc, ok := w.lookup.Get(ref)
	if !ok {
		w.stats.SkippedUnresolved++
		w.log.Warn("clip references unknown master clip", "ref", ref, "sequence", seqName, "shape", shape.name)
		return
	}
	if !timed {
		w.stats.SkippedBadTime++
		w.log.Debug("clip without usable in/out", "ref", ref, "sequence", seqName, "shape", shape.name)
		return
	}

	name := mc.Name
	if name == "" {
		name = childText(el, "name", "Name")
	}
	w.out = append(w.out, types.ClipOccurrence{
		MasterClipID: ref,
		Name:         name,
		MediaPath:    mc.MediaPath,
		In:           w.value(shape, inRaw).Add(offset, w.opts.FrameRate),
		Out:          w.value(shape, outRaw).Add(offset, w.opts.FrameRate),
		Track:        track,
		Sequence:     seqName,
	})
}

func (w *walker) value(shape clipShape, units int64) timecode.TimeValue {
	if shape.ticks {
		return timecode.Ticks(units, w.opts.TicksPerSecond)
	}
	return timecode.Frames(units)
}

// nestedContainer returns the sequence a clip points at instead of media:
// an inline sequence child, a bare sequence child resolved by id, or a
// reference id that names a sequence rather than a master clip.
func (w *walker) nestedContainer(el *etree.Element, ref string) *etree.Element {
	if s := child(el, "sequence"); s != nil {
		if holdsClips(s) {
			return s
		}
		if def, ok := w.byID[containerID(s)]; ok {
			return def
		}
	}
	if ref == "" {
		return nil
	}
	if _, isClip := w.lookup.Get(ref); isClip {
		return nil
	}
	return w.byID[ref]
}

// trackOf finds the enclosing track below container c.
func trackOf(el, c *etree.Element) types.Track {
	t := types.Track{Kind: kindFromTag(el.Tag)}
	for p := el.Parent(); p != nil && p != c; p = p.Parent() {
		switch {
		case t.Index == 0 && tagIs(p, "track", "VideoTrack", "AudioTrack", "ClipTrack"):
			t.Index = siblingIndex(p)
			if t.Kind == types.TrackUnknown {
				t.Kind = kindFromTag(p.Tag)
			}
			if t.Kind == types.TrackUnknown {
				t.Kind = kindFromTag(attr(p, "type", "kind"))
			}
		case t.Kind == types.TrackUnknown && tagIs(p, "video", "audio"):
			t.Kind = kindFromTag(p.Tag)
		}
	}
	return t
}

func kindFromTag(tag string) types.TrackKind {
	lower := strings.ToLower(tag)
	switch {
	case strings.HasPrefix(lower, "video"):
		return types.TrackVideo
	case strings.HasPrefix(lower, "audio"):
		return types.TrackAudio
	default:
		return types.TrackUnknown
	}
}

// siblingIndex is the 1-based position of el among same-tag siblings.
func siblingIndex(el *etree.Element) int {
	p := el.Parent()
	if p == nil {
		return 1
	}
	n := 0
	for _, s := range p.ChildElements() {
		if strings.EqualFold(s.Tag, el.Tag) {
			n++
		}
		if s == el {
			return n
		}
	}
	return 1
}
