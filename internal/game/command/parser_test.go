package command

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("look")
	assert.Equal(t, "look", result.Command)
	assert.Nil(t, result.Args)
	assert.Equal(t, "", result.RawArgs)
}

func TestParse_Lowercase(t *testing.T) {
	result := Parse("NORTH")
	assert.Equal(t, "north", result.Command)
}

func TestParse_WithArgs(t *testing.T) {
	result := Parse("use healing draught")
	assert.Equal(t, "use", result.Command)
	assert.Equal(t, []string{"healing", "draught"}, result.Args)
	assert.Equal(t, "healing draught", result.RawArgs)
}

func TestParse_ExtraWhitespace(t *testing.T) {
	result := Parse("  answer   an   echo  ")
	assert.Equal(t, "answer", result.Command)
	assert.Equal(t, []string{"an", "echo"}, result.Args)
	assert.Equal(t, "an   echo", result.RawArgs)
}

func TestParse_ArgumentCaseKept(t *testing.T) {
	result := Parse("Answer The Shadow")
	assert.Equal(t, "answer", result.Command)
	assert.Equal(t, "The Shadow", result.RawArgs)
}

func TestIntArg(t *testing.T) {
	n, err := Parse("examine 2").IntArg()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = Parse("depth -3").IntArg()
	require.NoError(t, err)
	assert.Equal(t, -3, n)
}

func TestIntArg_Missing(t *testing.T) {
	_, err := Parse("depth").IntArg()
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestIntArg_NotANumber(t *testing.T) {
	_, err := Parse("examine statue").IntArg()
	assert.ErrorIs(t, err, ErrNotANumber)
	assert.Contains(t, err.Error(), `"statue"`)
}

func TestPropertyParseAlwaysLowercasesCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		result := Parse(word)
		for _, c := range result.Command {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("command %q contains uppercase char in Parse result %q", word, result.Command)
			}
		}
	})
}

func TestPropertyParseNonEmptyInputHasCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "word")
		result := Parse(word)
		if result.Command == "" {
			t.Fatalf("non-empty input %q produced empty command", word)
		}
	})
}

func TestPropertyIntArgRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-1000, 1000).Draw(t, "n")
		got, err := Parse("depth " + strconv.Itoa(n)).IntArg()
		if err != nil {
			t.Fatalf("IntArg(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("IntArg(%d) = %d", n, got)
		}
	})
}
