package gui

import "strings"

// TextWrapMode selects where WrapText may break a line.
type TextWrapMode int

const (
	// WrapModeWord breaks between words. A word wider than the limit is
	// split by character.
	WrapModeWord TextWrapMode = iota
	// WrapModeChar breaks anywhere.
	WrapModeChar
)

// WrapText splits text into lines no wider than maxWidth when drawn with
// f. Embedded newlines are kept as breaks. A non-positive maxWidth only
// splits at newlines.
func WrapText(f *FontAtlas, text string, maxWidth float32, mode TextWrapMode) []string {
	paragraphs := strings.Split(text, "\n")
	if maxWidth <= 0 || f == nil || f.GlyphWidth <= 0 {
		return paragraphs
	}
	perLine := max(int(maxWidth/f.GlyphWidth), 1)
	var lines []string
	for _, p := range paragraphs {
		if mode == WrapModeChar {
			lines = wrapByChar(lines, []rune(p), perLine)
		} else {
			lines = wrapByWord(lines, p, perLine)
		}
	}
	return lines
}

func wrapByChar(dst []string, runes []rune, perLine int) []string {
	if len(runes) == 0 {
		return append(dst, "")
	}
	for len(runes) > perLine {
		dst = append(dst, string(runes[:perLine]))
		runes = runes[perLine:]
	}
	return append(dst, string(runes))
}

func wrapByWord(dst []string, text string, perLine int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return append(dst, "")
	}
	var line []rune
	for _, word := range words {
		w := []rune(word)
		switch {
		case len(line) == 0:
		case len(line)+1+len(w) <= perLine:
			line = append(line, ' ')
		default:
			dst = append(dst, string(line))
			line = line[:0]
		}
		for len(line)+len(w) > perLine {
			n := perLine - len(line)
			dst = append(dst, string(append(line, w[:n]...)))
			line = line[:0]
			w = w[n:]
		}
		line = append(line, w...)
	}
	return append(dst, string(line))
}
