package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/fikaregister/fika-api/internal/repository"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns a place name into a URL-safe slug: diacritics folded to
// ASCII, lowercased, anything but letters and digits collapsed into single
// hyphens. "Café Bulle" becomes "cafe-bulle".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range norm.NFD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			// Combining marks left over from decomposition
			continue
		}
		r = unicode.ToLower(r)
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "place"
	}
	return slug
}

// assignSlug gives the place a unique slug derived from its name, appending
// a numeric suffix on collision. Runs inside the caller's transaction so the
// uniqueness check and the write cannot race.
func assignSlug(ctx context.Context, tx repository.Store, place *model.Place) error {
	base := Slugify(place.Name)
	slug := base
	for i := 1; ; i++ {
		exists, err := tx.Place().SlugExists(ctx, slug, place.ID)
		if err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	place.Slug = slug
	return nil
}
