package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxSlugLength matches the slug columns of the legal-record tables.
const MaxSlugLength = 75

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// RecordPath builds the public page path of a legal record, e.g.
// RecordPath("opinion", 42, "", "Roe v. Wade") == "/opinion/42/roe-v-wade/".
// A stored slug wins over one derived from title.
func RecordPath(kind string, id int64, slug, title string) string {
	if slug == "" {
		slug, _ = Slugify(title, "case-name-unknown")
	}
	return fmt.Sprintf("/%s/%d/%s/", kind, id, slug)
}
