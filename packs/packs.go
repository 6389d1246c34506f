package packs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	version "github.com/hashicorp/go-version"
)

// Entry is either a Structured pack reference or an Opaque input line that could not be parsed.
type Entry interface {
	isEntry()
}

// Version is a [major, minor, patch] pack version.
type Version [3]int

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// Structured ...
type Structured struct {
	PackID  string  `json:"pack_id"`
	Version Version `json:"version"`
}

// Opaque keeps an input line verbatim.
type Opaque struct {
	Raw string
}

func (Structured) isEntry() {}
func (Opaque) isEntry()     {}

// NewDebugPack returns the reference of a freshly generated debug pack.
func NewDebugPack() Structured {
	return Structured{
		PackID:  uuid.NewString(),
		Version: Version{0, 0, 1},
	}
}

// Parse reads one packs input line. It accepts a JSON array of pack references
// or a `<uuid> <version>` notation, e.g. `<uuid> - [1, 0, 0]` or `<uuid> 1.0.0`.
func Parse(line string) []Entry {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var structured []Structured
	if err := json.Unmarshal([]byte(line), &structured); err == nil {
		entries := make([]Entry, 0, len(structured))
		for _, s := range structured {
			entries = append(entries, s)
		}
		return entries
	}

	if s, ok := parseNotation(line); ok {
		return []Entry{s}
	}

	return []Entry{Opaque{Raw: line}}
}

// ParseLines parses a multiline packs input.
func ParseLines(input string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(input, "\n") {
		entries = append(entries, Parse(line)...)
	}
	return entries
}

// Merge concatenates pack lists in order.
func Merge(lists ...[]Entry) []Entry {
	var merged []Entry
	for _, list := range lists {
		merged = append(merged, list...)
	}
	return merged
}

// Manifest builds the world_behavior_packs.json payload.
// Opaque entries can not be referenced by a world, they are returned to the caller instead.
func Manifest(entries []Entry) ([]byte, []Opaque, error) {
	structured := []Structured{}
	var skipped []Opaque

	for _, entry := range entries {
		switch e := entry.(type) {
		case Structured:
			structured = append(structured, e)
		case Opaque:
			skipped = append(skipped, e)
		}
	}

	data, err := json.Marshal(structured)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode pack list: %w", err)
	}

	return data, skipped, nil
}

func parseNotation(line string) (Structured, bool) {
	id, rest, found := strings.Cut(line, " ")
	if !found {
		return Structured{}, false
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return Structured{}, false
	}

	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
	rest = strings.Trim(rest, "[] ")
	rest = strings.ReplaceAll(rest, " ", "")
	rest = strings.ReplaceAll(rest, ",", ".")

	v, err := version.NewVersion(rest)
	if err != nil || v.Prerelease() != "" || v.Metadata() != "" {
		return Structured{}, false
	}

	segments := v.Segments()
	if len(segments) > 3 {
		return Structured{}, false
	}

	var packVersion Version
	copy(packVersion[:], segments)

	return Structured{
		PackID:  parsedID.String(),
		Version: packVersion,
	}, true
}
