package mcq

import (
	"errors"
	"regexp"
	"strings"

	"github.com/edubot/edubot/internal/locale"
)

// ErrBlockNotFound is returned when no block of the bundle is headed with
// the requested language.
var ErrBlockNotFound = errors.New("language block not found")

var (
	ruleRe   = regexp.MustCompile(`(?m)^\s*-{3,}\s*$`)
	headerRe = regexp.MustCompile(`(?im)^\s*#+\s*Language:\s*\**\s*(\p{L}+)`)
)

// ExtractBlock splits raw on horizontal rules and returns the block whose
// "# Language: <Name>" header matches lang.
func ExtractBlock(raw string, lang locale.Language) (string, error) {
	for _, block := range ruleRe.Split(raw, -1) {
		m := headerRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		if strings.EqualFold(m[1], lang.Name()) {
			return strings.TrimSpace(block), nil
		}
	}
	return "", ErrBlockNotFound
}
