package parser

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
)

// DefaultFormLimit is the number of recent results kept per team.
const DefaultFormLimit = 6

var resultMarker = regexp.MustCompile(`(?i)result`)

// Classifier maps one cleaned form token to a match result.
type Classifier func(token string) standings.Result

// ClassifySubstring treats any token mentioning "win" as a win, then "loss" as a
// loss, and everything else as a draw.
func ClassifySubstring(token string) standings.Result {
	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "win"):
		return standings.ResultWin
	case strings.Contains(lower, "loss"):
		return standings.ResultLoss
	default:
		return standings.ResultDraw
	}
}

// FormDecoder turns a raw form field into a most-recent-first result list.
type FormDecoder struct {
	classify Classifier
	limit    int
}

// FormOption customizes a FormDecoder.
type FormOption func(*FormDecoder)

// WithClassifier swaps the token classifier.
func WithClassifier(c Classifier) FormOption {
	return func(d *FormDecoder) {
		if c != nil {
			d.classify = c
		}
	}
}

// WithLimit caps the number of results kept. Non-positive values keep the default.
func WithLimit(n int) FormOption {
	return func(d *FormDecoder) {
		if n > 0 {
			d.limit = n
		}
	}
}

// NewFormDecoder builds a decoder using substring classification and a limit of six.
func NewFormDecoder(opts ...FormOption) *FormDecoder {
	d := &FormDecoder{classify: ClassifySubstring, limit: DefaultFormLimit}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tokens returns the cleaned tokens of raw in source order. The word "result" is
// removed from every token and anything left with one rune or fewer is dropped.
func (d *FormDecoder) Tokens(raw string) []string {
	fields := strings.Fields(raw)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		cleaned := resultMarker.ReplaceAllString(f, "")
		if utf8.RuneCountInString(cleaned) <= 1 {
			continue
		}
		tokens = append(tokens, cleaned)
	}
	return tokens
}

// Decode classifies raw and returns at most limit results, most recent first.
// A blank field yields an empty list; a non-blank field with no usable tokens is
// a FormDecodeError.
func (d *FormDecoder) Decode(raw string) ([]standings.Result, error) {
	if strings.TrimSpace(raw) == "" {
		return []standings.Result{}, nil
	}
	tokens := d.Tokens(raw)
	if len(tokens) == 0 {
		return nil, &standings.FormDecodeError{Raw: raw}
	}

	results := make([]standings.Result, len(tokens))
	for i, tok := range tokens {
		results[i] = d.classify(tok)
	}
	slices.Reverse(results)
	if len(results) > d.limit {
		results = results[:d.limit]
	}
	return results, nil
}

// History decodes raw into a FormHistory for the named team.
func (d *FormDecoder) History(name, raw string) (standings.FormHistory, error) {
	results, err := d.Decode(raw)
	if err != nil {
		if formErr, ok := err.(*standings.FormDecodeError); ok {
			formErr.Team = name
		}
		return standings.FormHistory{}, err
	}
	return standings.FormHistory{Name: name, Results: results}, nil
}
