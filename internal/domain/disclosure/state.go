// Package disclosure models accordion expansion: at most one open section and,
// independently, at most one open item.
package disclosure

import (
	"net/url"
)

// Query parameter names carrying the state between requests.
const (
	ParamSection = "section"
	ParamItem    = "item"
)

// State is the expansion state of one accordion screen. The zero value is fully collapsed.
type State struct {
	Section string
	Item    string
}

// FromQuery reads the state from a request's query string.
func FromQuery(q url.Values) State {
	return State{Section: q.Get(ParamSection), Item: q.Get(ParamItem)}
}

// ToggleSection collapses id if it is open, otherwise opens it exclusively.
// INVARIANT: the open item is unaffected
func (s State) ToggleSection(id string) State {
	if s.Section == id {
		s.Section = ""
	} else {
		s.Section = id
	}
	return s
}

// ToggleItem collapses id if it is the open item, otherwise makes it the open item.
// INVARIANT: the open section is unaffected
func (s State) ToggleItem(id string) State {
	if s.Item == id {
		s.Item = ""
	} else {
		s.Item = id
	}
	return s
}

// IsSectionOpen reports whether id is the open section.
func (s State) IsSectionOpen(id string) bool {
	return id != "" && s.Section == id
}

// IsItemOpen reports whether id is the open item.
func (s State) IsItemOpen(id string) bool {
	return id != "" && s.Item == id
}

// Query encodes the state, omitting empty parts.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Section != "" {
		q.Set(ParamSection, s.Section)
	}
	if s.Item != "" {
		q.Set(ParamItem, s.Item)
	}
	return q
}

// Href returns path with the state attached as a query string.
func (s State) Href(path string) string {
	q := s.Query()
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// SectionHref links to the state after toggling section id.
func (s State) SectionHref(path, id string) string {
	return s.ToggleSection(id).Href(path)
}

// ItemHref links to the state after toggling item id.
func (s State) ItemHref(path, id string) string {
	return s.ToggleItem(id).Href(path)
}
