// Package avatar renders initials avatars as SVG. Output depends only on the
// name and size.
package avatar

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/blake2b"
)

const (
	DefaultSize = 64
	MinSize     = 16
	MaxSize     = 512
)

// ClampSize maps a requested size into [MinSize, MaxSize]; zero or negative
// requests get DefaultSize.
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	default:
		return size
	}
}

// Initials returns up to two uppercase initials, or "?" for a blank name.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out = append(out, unicode.ToUpper(r))
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// Color derives an HSL background from the blake2b hash of the normalized name.
func Color(name string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(name))))
	hue := (int(sum[0])<<8 | int(sum[1])) % 360
	saturation := 45 + int(sum[2])%20
	lightness := 40 + int(sum[3])%15
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, saturation, lightness)
}

func Render(name string, size int) []byte {
	size = ClampSize(size)

	var text bytes.Buffer
	_ = xml.EscapeText(&text, []byte(Initials(name)))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, size, size, size, size)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" rx="%d" fill="%s"/>`, size, size, size/2, Color(name))
	fmt.Fprintf(&buf, `<text x="50%%" y="50%%" dy=".35em" text-anchor="middle" fill="#ffffff" font-family="Helvetica, Arial, sans-serif" font-size="%d" font-weight="600">%s</text>`, size*2/5, text.String())
	buf.WriteString(`</svg>`)
	return buf.Bytes()
}
