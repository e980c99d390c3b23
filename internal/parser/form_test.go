package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
)

const (
	W = standings.ResultWin
	L = standings.ResultLoss
	D = standings.ResultDraw
)

func TestDecodeReversesToMostRecentFirst(t *testing.T) {
	got, err := NewFormDecoder().Decode("Win Loss Draw Win Draw Loss")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{L, D, W, D, L, W}, got)
}

func TestDecodeShortHistoryKeepsAvailableResults(t *testing.T) {
	got, err := NewFormDecoder().Decode("Win Draw Loss")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{L, D, W}, got)

	got, err = NewFormDecoder().Decode("Win")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{W}, got)
}

func TestDecodeTruncatesToMostRecentSix(t *testing.T) {
	got, err := NewFormDecoder().Decode("Loss Loss Win Win Draw Win Loss Draw")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{D, L, W, D, W, W}, got)
}

func TestDecodeStripsResultMarker(t *testing.T) {
	got, err := NewFormDecoder().Decode("Win result Loss RESULT Resultdraw")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{D, L, W}, got)
}

func TestDecodeDropsStrayTokens(t *testing.T) {
	got, err := NewFormDecoder().Decode("Xresult Win")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{W}, got)

	got, err = NewFormDecoder().Decode("W Win result L Loss result")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{L, W}, got)
}

func TestDecodeUnclassifiableFieldFails(t *testing.T) {
	_, err := NewFormDecoder().Decode("Xresult")
	var formErr *standings.FormDecodeError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "Xresult", formErr.Raw)

	_, err = NewFormDecoder().Decode("result W L D")
	require.ErrorAs(t, err, &formErr)
}

func TestDecodeBlankFieldIsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		got, err := NewFormDecoder().Decode(raw)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestClassifySubstringPriority(t *testing.T) {
	cases := map[string]standings.Result{
		"Win":          W,
		"WON":          D,
		"winless":      W,
		"Loss":         L,
		"Draw":         D,
		"Postponed":    D,
		"WinLoss":      W,
		"lossy-window": W,
	}
	for token, want := range cases {
		assert.Equal(t, want, ClassifySubstring(token), token)
	}
}

func TestWithClassifierSwapsMatching(t *testing.T) {
	strict := func(token string) standings.Result {
		switch token {
		case "W":
			return W
		case "L":
			return L
		default:
			return D
		}
	}
	d := NewFormDecoder(WithClassifier(strict))
	got, err := d.Decode("WW LL")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{D, D}, got)

	assert.NotNil(t, NewFormDecoder(WithClassifier(nil)).classify)
}

func TestWithLimit(t *testing.T) {
	got, err := NewFormDecoder(WithLimit(2)).Decode("Win Draw Loss")
	require.NoError(t, err)
	assert.Equal(t, []standings.Result{L, D}, got)

	assert.Equal(t, DefaultFormLimit, NewFormDecoder(WithLimit(0)).limit)
}

func TestTokensKeepsSourceOrder(t *testing.T) {
	assert.Equal(t, []string{"Win", "Loss", "Draw"}, NewFormDecoder().Tokens("Win result Loss result Draw result"))
	assert.Empty(t, NewFormDecoder().Tokens(""))
}

func TestHistoryStampsTeamName(t *testing.T) {
	d := NewFormDecoder()

	h, err := d.History("Arsenal", "Win Draw")
	require.NoError(t, err)
	assert.Equal(t, "Arsenal", h.Name)
	assert.Equal(t, []standings.Result{D, W}, h.Results)

	_, err = d.History("Fulham", "?")
	var formErr *standings.FormDecodeError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "Fulham", formErr.Team)
}

func TestDecodeNeverExceedsLimit(t *testing.T) {
	d := NewFormDecoder()
	raw := ""
	for i := 0; i < 12; i++ {
		raw += "Win "
		got, err := d.Decode(raw)
		require.NoError(t, err)
		want := i + 1
		if want > DefaultFormLimit {
			want = DefaultFormLimit
		}
		assert.Len(t, got, want)
	}
}
