package quiz

import (
	"fmt"
	"strings"

	"github.com/geoquiz/backend/internal/domain/dataset"
)

// Topic is the category of quiz content.
type Topic int

const (
	TopicUnset          Topic = iota
	TopicCountryCapital       // question: country, answer: capital
	TopicCapitalCountry       // question: capital, answer: country
	TopicFlags                // question: flag of a country, answer: the country
)

// Topics lists every selectable topic.
var Topics = []Topic{TopicCountryCapital, TopicCapitalCountry, TopicFlags}

func (t Topic) String() string {
	switch t {
	case TopicCountryCapital:
		return "countries"
	case TopicCapitalCountry:
		return "capitals"
	case TopicFlags:
		return "flags"
	default:
		return "unset"
	}
}

// ParseTopic maps a topic name to a Topic. The empty string is TopicUnset.
func ParseTopic(s string) (Topic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return TopicUnset, nil
	case "countries":
		return TopicCountryCapital, nil
	case "capitals":
		return TopicCapitalCountry, nil
	case "flags":
		return TopicFlags, nil
	}
	return TopicUnset, fmt.Errorf("unknown topic %q", s)
}

// Pool returns the full ordered question pool and the answer lookup for t.
// Flags has no lookup: each question is its own answer.
func (t Topic) Pool(d *dataset.Dataset) ([]string, map[string]string) {
	switch t {
	case TopicCountryCapital:
		return d.Countries, d.CountryToCapital
	case TopicCapitalCountry:
		return d.Capitals, d.CapitalToCountry
	case TopicFlags:
		return d.Countries, nil
	default:
		return nil, nil
	}
}

// Mode is the interaction style of a session.
type Mode int

const (
	ModeUnset     Mode = iota
	ModeFreeText       // the user types the answer
	ModeFlashcard      // the user flips a card to reveal the answer
)

// Modes lists every selectable mode.
var Modes = []Mode{ModeFreeText, ModeFlashcard}

func (m Mode) String() string {
	switch m {
	case ModeFreeText:
		return "free-text"
	case ModeFlashcard:
		return "flashcard"
	default:
		return "unset"
	}
}

// ParseMode maps a mode name to a Mode. The empty string is ModeUnset.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ModeUnset, nil
	case "free-text", "freetext":
		return ModeFreeText, nil
	case "flashcard", "flashcards":
		return ModeFlashcard, nil
	}
	return ModeUnset, fmt.Errorf("unknown mode %q", s)
}

// Selection is what the user picked on the menu.
type Selection struct {
	Topic Topic
	Mode  Mode
	Start int // 1-based, inclusive
	Stop  int // 1-based, inclusive
}

// Complete reports whether both topic and mode are chosen.
func (s Selection) Complete() bool {
	return s.Topic != TopicUnset && s.Mode != ModeUnset
}

// SelectRange returns a copy of pool[start-1:stop], clamped to the pool.
func SelectRange(pool []string, start, stop int) []string {
	lo := max(start-1, 0)
	hi := min(stop, len(pool))
	if lo >= hi {
		return []string{}
	}

	out := make([]string, hi-lo)
	copy(out, pool[lo:hi])
	return out
}
