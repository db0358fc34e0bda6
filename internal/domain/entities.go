package domain

import "strings"

// Category is the raw category label attached to an item by the API
// (e.g. "watches", "relojes", "sneakers").
type Category string

// Normalized returns the lowercase, trimmed form used for comparisons.
func (c Category) Normalized() string {
	return strings.ToLower(strings.TrimSpace(string(c)))
}

// Label returns the badge text shown for the category
func (c Category) Label() string {
	return strings.ToUpper(strings.TrimSpace(string(c)))
}

// Item is a single catalog entry (watch, sneaker, clothing piece)
type Item struct {
	ID       string   // API identifier, numeric ids are kept in decimal form
	Name     string   // Display name
	Category Category // Raw category label
	Price    string   // Display price, empty when hidden
	Image    string   // Image URL, empty when a placeholder is used
	Featured bool     // Promoted by the API
}

// HasPrice reports whether a display price was supplied
func (i Item) HasPrice() bool {
	return i.Price != ""
}

// Endorsement is a customer testimonial
type Endorsement struct {
	ID          string
	AuthorName  string
	Rating      int // 1-5
	Initials    string
	ReviewText  string
	ReviewImage string // Optional photo of the review
}

// Rating bounds accepted from the API
const (
	MinRating = 1
	MaxRating = 5
)

// DisplayInitials returns the initials to show in the avatar, deriving them
// from the author name when the API did not send any.
func (e Endorsement) DisplayInitials() string {
	if e.Initials != "" {
		return e.Initials
	}
	var b strings.Builder
	for _, part := range strings.Fields(e.AuthorName) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// Click is the client context reported when a call-to-action is activated
type Click struct {
	UserAgent string
	Referrer  string
}
