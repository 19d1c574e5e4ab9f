package board

import (
	"strings"
	"unicode/utf8"

	"afom-board-be/internal/entity"
)

const (
	// MaxContentLength is counted in characters, not bytes.
	MaxContentLength = 50

	AnonymousAuthor = "Anonymous"

	maxAuthorLength = 60
)

// NormalizeContent trims and truncates note text. Empty text is rejected.
func NormalizeContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", ErrEmptyContent
	}
	return truncateRunes(content, MaxContentLength), nil
}

// NormalizeAuthor falls back to the anonymous sentinel when the name is blank
// or the submitter asked to stay anonymous.
func NormalizeAuthor(raw string, anonymous bool) string {
	author := strings.TrimSpace(raw)
	if anonymous || author == "" {
		return AnonymousAuthor
	}
	return truncateRunes(author, maxAuthorLength)
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}

// ParseBucket accepts any of the five buckets.
func ParseBucket(raw string) (entity.Bucket, error) {
	b := entity.Bucket(strings.ToLower(strings.TrimSpace(raw)))
	if !b.IsValid() {
		return "", ErrInvalidBucket
	}
	return b, nil
}

// ParseContentBucket accepts only the four quadrants.
func ParseContentBucket(raw string) (entity.Bucket, error) {
	b, err := ParseBucket(raw)
	if err != nil {
		return "", err
	}
	if !b.IsContent() {
		return "", ErrNotContentBucket
	}
	return b, nil
}

var labels = map[entity.Bucket]string{
	entity.BucketAcquis:       "Acquis",
	entity.BucketFaiblesses:   "Faiblesses",
	entity.BucketOpportunites: "Opportunités",
	entity.BucketMenaces:      "Menaces",
	entity.BucketArchive:      "Archive",
}

// Label is the French display name of a bucket.
func Label(b entity.Bucket) string {
	if l, ok := labels[b]; ok {
		return l
	}
	return b.String()
}
