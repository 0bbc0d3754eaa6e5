package chat

import (
	"os"
	"strings"
)

// Guidance supplies the reference document prepended to general chat
// system prompts.
type Guidance interface {
	Text() string
}

// FileGuidance reads Path on every call so edits apply without a restart.
// A missing or unreadable file yields an empty document.
type FileGuidance struct {
	Path string
}

func (g FileGuidance) Text() string {
	if g.Path == "" {
		return ""
	}
	b, err := os.ReadFile(g.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// StaticGuidance is a fixed document, used in tests.
type StaticGuidance string

func (g StaticGuidance) Text() string { return string(g) }
