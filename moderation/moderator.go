// Package moderation masks banned words in message texts before they reach the log.
package moderation

import (
	"bufio"
	"chat-feed/contract"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

const DefaultMask = '*'

var _ contract.ITextFilter = (*Moderator)(nil)

// leet maps look-alike characters to the letter they stand for.
var leet = map[rune]rune{
	'4': 'a', '@': 'a',
	'3': 'e', '€': 'e',
	'1': 'i', '!': 'i', '|': 'i',
	'0': 'o',
	'5': 's', '$': 's',
}

// Moderator finds banned words with an Aho-Corasick automaton built once.
// Matching ignores case, punctuation, spacing and leet speak; masking keeps the
// original length so the layout of the message is unchanged.
type Moderator struct {
	log     *slog.Logger
	matcher *goahocorasick.Machine
	mask    rune
	words   int
}

// folded is a text reduced to its significant runes, each remembering its position
// in the original text.
type folded struct {
	runes     []rune
	positions []int
}

func NewModerator(words []string, mask rune, log *slog.Logger) (*Moderator, error) {
	var patterns [][]rune
	for _, word := range words {
		if pattern := fold([]rune(word)).runes; len(pattern) > 0 {
			patterns = append(patterns, pattern)
		}
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("moderation needs at least one word")
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build moderation automaton: %w", err)
	}
	return &Moderator{log: log, matcher: m, mask: mask, words: len(patterns)}, nil
}

// LoadWords reads a word list, one word per line. Blank lines and lines starting with
// '#' are skipped.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

// Apply masks every banned word found in text and returns how many were masked.
func (m *Moderator) Apply(text string) (string, int) {
	original := []rune(text)
	f := fold(original)
	if len(f.runes) == 0 {
		return text, 0
	}
	terms := m.matcher.MultiPatternSearch(f.runes, false)
	if len(terms) == 0 {
		return text, 0
	}
	for _, term := range terms {
		start, end := term.Pos, term.Pos+len(term.Word)
		if start < 0 || end > len(f.positions) {
			continue
		}
		for i := f.positions[start]; i <= f.positions[end-1]; i++ {
			original[i] = m.mask
		}
	}
	m.log.Debug("Message censored", "matches", len(terms))
	return string(original), len(terms)
}

func (m *Moderator) Words() int { return m.words }

func fold(input []rune) folded {
	f := folded{runes: make([]rune, 0, len(input)), positions: make([]int, 0, len(input))}
	for i, r := range input {
		if plain, ok := leet[r]; ok {
			r = plain
		}
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		f.runes = append(f.runes, unicode.ToLower(r))
		f.positions = append(f.positions, i)
	}
	return f
}
