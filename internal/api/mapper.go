package api

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"

	"github.com/thunderx/thunder/internal/domain"
)

// cleanText strips markup and terminal control characters from remote text
func cleanText(policy *bluemonday.Policy, s string) string {
	s = html.UnescapeString(policy.Sanitize(s))
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func optional(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func mapItems(dtos []itemDTO, policy *bluemonday.Policy) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(dtos))
	for i, dto := range dtos {
		if dto.ID == "" {
			return nil, fmt.Errorf("product %d: %w: missing id", i, domain.ErrMalformedResponse)
		}
		name := cleanText(policy, dto.Name)
		if name == "" {
			return nil, fmt.Errorf("product %s: %w: missing name", dto.ID, domain.ErrMalformedResponse)
		}
		items = append(items, domain.Item{
			ID:       string(dto.ID),
			Name:     name,
			Category: domain.Category(cleanText(policy, dto.Category)),
			Price:    cleanText(policy, optional(dto.Price)),
			Image:    optional(dto.Image),
			Featured: dto.Featured,
		})
	}
	return items, nil
}

func mapEndorsements(dtos []endorsementDTO, policy *bluemonday.Policy) ([]domain.Endorsement, error) {
	out := make([]domain.Endorsement, 0, len(dtos))
	for i, dto := range dtos {
		if dto.ID == "" {
			return nil, fmt.Errorf("testimonial %d: %w: missing id", i, domain.ErrMalformedResponse)
		}
		if dto.Rating < domain.MinRating || dto.Rating > domain.MaxRating {
			return nil, fmt.Errorf("testimonial %s: %w: rating %d out of range", dto.ID, domain.ErrMalformedResponse, dto.Rating)
		}
		name := cleanText(policy, dto.Name)
		if name == "" {
			return nil, fmt.Errorf("testimonial %s: %w: missing author", dto.ID, domain.ErrMalformedResponse)
		}
		out = append(out, domain.Endorsement{
			ID:          string(dto.ID),
			AuthorName:  name,
			Rating:      dto.Rating,
			Initials:    cleanText(policy, dto.Initials),
			ReviewText:  cleanText(policy, dto.Review),
			ReviewImage: optional(dto.ReviewImage),
		})
	}
	return out, nil
}
