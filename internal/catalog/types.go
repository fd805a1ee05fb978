package catalog

import (
	"sort"
	"strings"
)

// ListPage mirrors the payload returned by the list endpoint.
type ListPage struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []Ref  `json:"results"`
}

// Ref is a lightweight pointer to an item: a name plus a resolvable URL.
// The full record requires a follow-up fetch.
type Ref struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Item is one full catalog record. The identifier is the natural key and
// the record is immutable once fetched.
type Item struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Images    Images    `json:"images"`
	Tags      []Tag     `json:"tags"`
	Height    int       `json:"height"`
	Weight    int       `json:"weight"`
	Abilities []Ability `json:"abilities"`
	Stats     []Stat    `json:"stats"`
}

// Images holds optional media references for an item.
type Images struct {
	Front    string `json:"front"`
	FrontAlt string `json:"front_alt"`
	Artwork  string `json:"artwork"`
}

// Tag is a category marker attached to an item.
type Tag struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Ability names a capability the item carries.
type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
	Slot   int    `json:"slot"`
}

// Stat is a named numeric attribute.
type Stat struct {
	Name  string `json:"name"`
	Base  int    `json:"base"`
	Bonus int    `json:"bonus"`
}

// HasTag reports whether the item carries the named category tag.
// The comparison is case-insensitive.
func (i Item) HasTag(name string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

// TagNames returns the item's tag names ordered by slot. The API usually
// delivers tags already slot-ordered, but that is not guaranteed.
func (i Item) TagNames() []string {
	if len(i.Tags) == 0 {
		return nil
	}
	tags := make([]Tag, len(i.Tags))
	copy(tags, i.Tags)
	sort.SliceStable(tags, func(a, b int) bool { return tags[a].Slot < tags[b].Slot })

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
