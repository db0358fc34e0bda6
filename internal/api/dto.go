package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// flexibleID accepts both numeric and string identifiers
type flexibleID string

func (id *flexibleID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = flexibleID(n.String())
	return nil
}

// itemDTO is the wire form of GET /api/products entries
type itemDTO struct {
	ID       flexibleID `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Price    *string    `json:"price"`
	Image    *string    `json:"image"`
	Featured bool       `json:"featured"`
}

// endorsementDTO is the wire form of GET /api/testimonials entries
type endorsementDTO struct {
	ID          flexibleID `json:"id"`
	Name        string     `json:"name"`
	Rating      int        `json:"rating"`
	Review      string     `json:"review"`
	Initials    string     `json:"initials"`
	ReviewImage *string    `json:"review_image"`
}

// clickDTO is the body of POST /api/telegram-click
type clickDTO struct {
	UserAgent string `json:"user_agent"`
	Referrer  string `json:"referrer"`
}

type healthDTO struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
