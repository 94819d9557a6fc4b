package classify

import (
	"regexp"
	"strings"

	"github.com/forPelevin/prclips/internal/types"
)

var (
	reColourbox = regexp.MustCompile(`(?i)COLOURBOX(\d+)`)
	reImago     = regexp.MustCompile(`(?i)IMAGO(\d+)`)
	reArtlist   = regexp.MustCompile(`^(\d+)_`)
	reExtension = regexp.MustCompile(`\.[A-Za-z0-9]{1,5}$`)
)

var videoExts = map[string]struct{}{
	"mp4": {}, "mov": {}, "avi": {}, "mkv": {}, "webm": {}, "wmv": {},
}

var imageExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "tiff": {}, "tif": {}, "bmp": {}, "svg": {},
}

// Classify derives source, stock id, media type and display name from a media
// path. fallbackName is used when the filename carries no name segment.
func Classify(mediaPath, fallbackName string) types.ClassifiedClip {
	file := Filename(mediaPath)
	source, id := detectSource(file)
	return types.ClassifiedClip{
		Name:   displayName(file, fallbackName),
		Type:   detectType(file),
		Source: source,
		ID:     id,
	}
}

// Filename returns the last path segment without any query suffix.
func Filename(mediaPath string) string {
	file := mediaPath
	if i := strings.LastIndex(file, "/"); i >= 0 {
		file = file[i+1:]
	}
	if i := strings.Index(file, "?"); i >= 0 {
		file = file[:i]
	}
	return file
}

// Rule order matters: a name carrying several tokens takes the first.
func detectSource(file string) (types.Source, string) {
	upper := strings.ToUpper(file)
	switch {
	case strings.Contains(upper, "COLOURBOX"):
		return types.SourceColourbox, firstGroup(reColourbox, file)
	case strings.Contains(upper, "IMAGO"):
		return types.SourceImago, firstGroup(reImago, file)
	case strings.Contains(upper, "ARTLIST"):
		return types.SourceArtlist, firstGroup(reArtlist, file)
	default:
		return types.SourceOther, "-"
	}
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "-"
	}
	return m[1]
}

func detectType(file string) types.MediaType {
	ext := file
	if i := strings.LastIndex(file, "."); i >= 0 {
		ext = file[i+1:]
	}
	ext = strings.ToLower(ext)
	if _, ok := videoExts[ext]; ok {
		return types.MediaVideo
	}
	if _, ok := imageExts[ext]; ok {
		return types.MediaImage
	}
	return types.MediaGraphicElement
}

func displayName(file, fallback string) string {
	parts := strings.Split(file, "_")
	name := strings.Join(parts[1:], "_")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	if name != "" {
		return name
	}
	fallback = strings.TrimSpace(reExtension.ReplaceAllString(fallback, ""))
	if fallback == "" {
		return "Unnamed"
	}
	return fallback
}
