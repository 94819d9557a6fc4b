package project

import (
	"github.com/beevik/etree"
)

// clipShape is one structural variant of a clip instance. Project files from
// different editor generations place the same information differently.
type clipShape struct {
	name    string
	tags    []string
	ticks   bool
	inKeys  []string
	outKeys []string
	ref     func(el *etree.Element) string
}

var (
	flatClip = clipShape{
		name:    "FlatClip",
		tags:    []string{"clipitem"},
		inKeys:  []string{"start", "in"},
		outKeys: []string{"end", "out"},
		ref:     flatRef,
	}
	wrappedClip = clipShape{
		name:    "WrappedClip",
		tags:    []string{"ClipTrackItem", "VideoClipTrackItem", "AudioClipTrackItem"},
		ticks:   true,
		inKeys:  []string{"Start", "In"},
		outKeys: []string{"End", "Out"},
		ref:     wrapperRef,
	}
	componentClip = clipShape{
		name:    "ComponentClip",
		tags:    []string{"Component", "ClipComponent"},
		ticks:   true,
		inKeys:  []string{"in", "Start"},
		outKeys: []string{"out", "End"},
		ref:     wrapperRef,
	}

	clipShapes = []clipShape{flatClip, wrappedClip, componentClip}
)

func matchShape(el *etree.Element) (clipShape, bool) {
	for _, s := range clipShapes {
		if tagIs(el, s.tags...) {
			return s, true
		}
	}
	return clipShape{}, false
}

// bounds returns the raw in and out units; ok is false when either is absent
// or not a non-negative integer.
func (s clipShape) bounds(el *etree.Element) (in, out int64, ok bool) {
	in, okIn := parseUnits(field(el, s.inKeys...))
	out, okOut := parseUnits(field(el, s.outKeys...))
	return in, out, okIn && okOut
}

func flatRef(el *etree.Element) string {
	if f := child(el, "file"); f != nil {
		if id := attr(f, "id"); id != "" {
			return id
		}
	}
	if id := childText(el, "masterclipid"); id != "" {
		return id
	}
	return attr(el, "ObjectRef", "itemid")
}

var refAttrs = []string{"itemid", "ObjectRef", "ObjectURef"}

// wrapperRef takes the first child carrying a reference attribute, then the
// wrapper's own itemid.
func wrapperRef(el *etree.Element) string {
	for _, c := range el.ChildElements() {
		for _, k := range refAttrs {
			if v := attr(c, k); v != "" {
				return v
			}
		}
	}
	return attr(el, "itemid")
}
