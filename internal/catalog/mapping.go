package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/arcanaland/cardgen/internal/card"
)

// ErrNoMapping is returned when a card key has no source art filename.
var ErrNoMapping = errors.New("no source filename mapped")

// Mapping associates card keys with source art filenames in both directions.
type Mapping struct {
	byKey      map[string]string
	byFilename map[string]string
}

// NewMapping builds a Mapping from the config's key -> filename table.
// Two keys sharing one filename is an error.
func NewMapping(cards map[string]string) (*Mapping, error) {
	m := &Mapping{
		byKey:      make(map[string]string, len(cards)),
		byFilename: make(map[string]string, len(cards)),
	}

	keys := make([]string, 0, len(cards))
	for k := range cards {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		filename := cards[key]
		if filename == "" {
			return nil, fmt.Errorf("card %s has an empty filename", key)
		}
		if other, ok := m.byFilename[filename]; ok {
			return nil, fmt.Errorf("filename %s is mapped to both %s and %s", filename, other, key)
		}
		m.byKey[key] = filename
		m.byFilename[filename] = key
	}

	return m, nil
}

// FilenameFor returns the source art stem for a card key.
func (m *Mapping) FilenameFor(key string) (string, error) {
	filename, ok := m.byKey[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrNoMapping)
	}
	return filename, nil
}

// KeyFor returns the card key that uses filename.
func (m *Mapping) KeyFor(filename string) (string, bool) {
	key, ok := m.byFilename[filename]
	return key, ok
}

// Len returns the number of mapped cards.
func (m *Mapping) Len() int {
	return len(m.byKey)
}

// Entry is a card paired with its source art filename.
type Entry struct {
	Card     card.Card
	Filename string
}

// Resolve pairs every card with its filename. Cards without a mapping are
// skipped with exactly one warning per key.
func Resolve(cards []card.Card, m *Mapping, log logrus.FieldLogger) []Entry {
	entries := make([]Entry, 0, len(cards))
	warned := make(map[string]bool)

	for _, c := range cards {
		filename, err := m.FilenameFor(c.Key)
		if err != nil {
			if !warned[c.Key] {
				log.WithField("card", c.Key).Warn("card does not have a corresponding file, continuing")
				warned[c.Key] = true
			}
			continue
		}
		entries = append(entries, Entry{Card: c, Filename: filename})
	}

	return entries
}
