package bot

import "strings"

// MaxMessageLength: batas panjang teks satu pesan Telegram.
const MaxMessageLength = 4096

// SplitMessage memecah text per baris supaya tiap bagian <= limit (dalam rune).
// Baris tidak pernah dipotong kecuali satu baris sendiri sudah melebihi limit.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}
	if runeLen(text) <= limit {
		return []string{text}
	}

	var (
		out    []string
		cur    strings.Builder
		curLen int
		lines  int // baris di cur, termasuk baris kosong
	)
	flush := func() {
		if lines > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curLen, lines = 0, 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		n := runeLen(line)
		if n > limit {
			flush()
			rs := []rune(line)
			for len(rs) > limit {
				out = append(out, string(rs[:limit]))
				rs = rs[limit:]
			}
			if len(rs) > 0 {
				cur.WriteString(string(rs))
				curLen, lines = len(rs), 1
			}
			continue
		}

		extra := n
		if lines > 0 {
			extra++ // newline
		}
		if curLen+extra > limit {
			flush()
			extra = n
		}
		if lines > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(line)
		curLen += extra
		lines++
	}
	flush()
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}
