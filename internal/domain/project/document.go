package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Document is a parsed project file.
type Document struct {
	root *etree.Element
}

func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return &Document{root: root}, nil
}

func (d *Document) Root() *etree.Element { return d.root }

// visit walks el's subtree in document order. fn returns false to skip the
// children of the element it was called with.
func visit(el *etree.Element, fn func(*etree.Element) bool) {
	if !fn(el) {
		return
	}
	for _, c := range el.ChildElements() {
		visit(c, fn)
	}
}

func tagIs(el *etree.Element, names ...string) bool {
	for _, n := range names {
		if strings.EqualFold(el.Tag, n) {
			return true
		}
	}
	return false
}

// attr returns the first non-empty attribute among names.
func attr(el *etree.Element, names ...string) string {
	for _, n := range names {
		for _, a := range el.Attr {
			if strings.EqualFold(a.Key, n) {
				if v := strings.TrimSpace(a.Value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func child(el *etree.Element, names ...string) *etree.Element {
	for _, n := range names {
		for _, c := range el.ChildElements() {
			if strings.EqualFold(c.Tag, n) {
				return c
			}
		}
	}
	return nil
}

// childText returns the first non-empty text among direct children named names.
func childText(el *etree.Element, names ...string) string {
	for _, n := range names {
		for _, c := range el.ChildElements() {
			if !strings.EqualFold(c.Tag, n) {
				continue
			}
			if v := strings.TrimSpace(c.Text()); v != "" {
				return v
			}
		}
	}
	return ""
}

// field reads each name as an attribute, then as child text.
func field(el *etree.Element, names ...string) string {
	for _, n := range names {
		if v := attr(el, n); v != "" {
			return v
		}
		if v := childText(el, n); v != "" {
			return v
		}
	}
	return ""
}

func parseUnits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
