package project

import (
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/forPelevin/prclips/internal/types"
)

var mediaPathTags = []string{"MediaPath", "FilePath", "ActualMediaFilePath", "pathurl"}

// Lookup maps clip-definition identifiers to master clips for one run.
type Lookup struct {
	entries map[string]types.MasterClip

	// Dropped counts definitions skipped for lacking an id or a media path.
	Dropped int
}

func (l Lookup) Get(id string) (types.MasterClip, bool) {
	mc, ok := l.entries[id]
	return mc, ok
}

func (l Lookup) Len() int { return len(l.entries) }

// BuildLookup scans the whole document for clip definitions. A later
// definition with the same id replaces an earlier one.
func BuildLookup(doc *Document) Lookup {
	l := Lookup{entries: make(map[string]types.MasterClip)}
	visit(doc.Root(), func(el *etree.Element) bool {
		id, ok := definitionID(el)
		if !ok || len(el.ChildElements()) == 0 {
			// bare elements are references to a definition, not definitions
			return true
		}
		path := mediaPath(el)
		if id == "" || path == "" {
			l.Dropped++
			return true
		}
		l.entries[id] = types.MasterClip{
			ID:        id,
			Name:      childText(el, "Name"),
			MediaPath: path,
		}
		return true
	})
	return l
}

// definitionID reports whether el is a clip definition and returns its id.
func definitionID(el *etree.Element) (string, bool) {
	switch {
	case tagIs(el, "MasterClip"):
		return attr(el, "ObjectID", "ObjectURef"), true
	case tagIs(el, "file"):
		return attr(el, "id"), true
	default:
		return "", false
	}
}

// mediaPath prefers a direct child and falls back to the first descendant.
func mediaPath(el *etree.Element) string {
	if v := childText(el, mediaPathTags...); v != "" {
		return normalizeMediaPath(v)
	}
	var found string
	for _, c := range el.ChildElements() {
		visit(c, func(d *etree.Element) bool {
			if found != "" {
				return false
			}
			if tagIs(d, mediaPathTags...) {
				found = strings.TrimSpace(d.Text())
			}
			return found == ""
		})
		if found != "" {
			break
		}
	}
	return normalizeMediaPath(found)
}

func normalizeMediaPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(p), "file://") {
		rest := p[len("file://"):]
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[i:]
		}
		if dec, err := url.PathUnescape(rest); err == nil {
			rest = dec
		}
		p = rest
	}
	return strings.ReplaceAll(p, `\`, "/")
}
