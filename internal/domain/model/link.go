package model

import (
	"fmt"
	"net/url"

	"learning-platform-api/internal/domain"
)

// allowedLinkHosts is the whitelist for lesson video links and course/lesson
// material links.
var allowedLinkHosts = map[string]struct{}{
	"www.youtube.com": {},
	"youtube.com":     {},
	"youtu.be":        {},
}

// LinkError reports which field carried the rejected URL.
type LinkError struct {
	Field string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: only YouTube links allowed", e.Field)
}

func (e *LinkError) Unwrap() error { return domain.ErrInvalidArgument }

// ValidateLink rejects non-empty URLs whose host is outside the YouTube
// whitelist. Empty values pass; link fields are optional.
func ValidateLink(field, raw string) error {
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return &LinkError{Field: field}
	}
	if _, ok := allowedLinkHosts[parsed.Host]; !ok {
		return &LinkError{Field: field}
	}
	return nil
}
