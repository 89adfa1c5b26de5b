package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage_ShortTextUntouched(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitMessage("hello", 10))
	assert.Equal(t, []string{""}, SplitMessage("", 10))
}

func TestSplitMessage_SplitsOnLines(t *testing.T) {
	text := "aaaa\nbbbb\ncccc"
	parts := SplitMessage(text, 9)
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, parts)
	assert.Equal(t, text, strings.Join(parts, "\n"))
}

func TestSplitMessage_HardSplitsLongLine(t *testing.T) {
	parts := SplitMessage("ab\n"+strings.Repeat("x", 25)+"\ncd", 10)
	require.Len(t, parts, 4)
	assert.Equal(t, "ab", parts[0])
	assert.Equal(t, strings.Repeat("x", 10), parts[1])
	assert.Equal(t, strings.Repeat("x", 10), parts[2])
	assert.Equal(t, "xxxxx\ncd", parts[3])
}

func TestSplitMessage_CountsRunes(t *testing.T) {
	line := strings.Repeat("é", MaxMessageLength)
	parts := SplitMessage(line+"\nok", MaxMessageLength)
	require.Len(t, parts, 2)
	assert.Equal(t, line, parts[0])
	for _, p := range parts {
		assert.LessOrEqual(t, runeLen(p), MaxMessageLength)
	}
}

func TestSplitMessage_KeepsBlankLineAtChunkStart(t *testing.T) {
	text := "aaaa\nbbbb\n\ncccc"
	parts := SplitMessage(text, 9)
	assert.Equal(t, []string{"aaaa\nbbbb", "\ncccc"}, parts)
	assert.Equal(t, text, strings.Join(parts, "\n"))

	text = "ab\n\n\ncd\nef"
	parts = SplitMessage(text, 4)
	for _, p := range parts {
		assert.LessOrEqual(t, runeLen(p), 4)
	}
	assert.Equal(t, text, strings.Join(parts, "\n"))
}

func TestSendLong_SkipsBlankParts(t *testing.T) {
	a, b := strings.Repeat("a", MaxMessageLength), strings.Repeat("b", MaxMessageLength)
	parts := SplitMessage(a+"\n\n"+b, MaxMessageLength)
	require.Equal(t, []string{a, "", b}, parts)

	m := &fakeMessenger{}
	require.NoError(t, SendLong(m, 7, a+"\n\n"+b))
	require.Len(t, m.out, 2)
	assert.Equal(t, a, m.out[0].Text)
	assert.Equal(t, b, m.out[1].Text)
}
