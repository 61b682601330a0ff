// Package textlayout breaks prompt text into display lines for a font face
// and a box width, and reports the metrics the scroll engine works from.
package textlayout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"

	"prompter/internal/scroll"
)

const tabWidth = 4

type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

type Line struct {
	Text     string
	Top      int // document y of the line box
	Baseline int
	Width    int
}

type Layout struct {
	Lines          []Line
	LineHeight     int
	Ascent         int
	BoxWidth       int
	Padding        Padding
	LastLineBottom int
}

// Wrap lays text out in a box width pixels wide. Lines break at spaces when
// possible and inside a word only when the word alone is too wide.
func Wrap(face font.Face, text string, width int, pad Padding) Layout {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineH := m.Height.Ceil()
	if lineH <= 0 {
		lineH = ascent + m.Descent.Ceil()
	}
	if lineH <= 0 {
		lineH = 1
	}
	l := Layout{LineHeight: lineH, Ascent: ascent, BoxWidth: width, Padding: pad}

	avail := width - pad.Left - pad.Right
	if avail < 1 {
		avail = 1
	}

	text = normalizeNewlines(text)
	if text == "" {
		l.LastLineBottom = pad.Top
		return l
	}
	y := pad.Top
	for _, para := range strings.Split(text, "\n") {
		para = expandTabs(para)
		for _, row := range wrapParagraph(face, para, avail) {
			l.Lines = append(l.Lines, Line{
				Text:     row,
				Top:      y,
				Baseline: y + ascent,
				Width:    measure(face, row),
			})
			y += lineH
		}
	}
	l.LastLineBottom = y
	return l
}

// ContentHeight includes the bottom padding.
func (l Layout) ContentHeight() int {
	return l.LastLineBottom + l.Padding.Bottom
}

// Metrics adapts the layout for the scroll engine. fontSizePx drives the
// trailing padding that keeps the last line clear of the bottom edge.
func (l Layout) Metrics(viewportHeight int, fontSizePx float64) scroll.Metrics {
	return scroll.Metrics{
		ViewportHeight: float64(viewportHeight),
		FontSizePx:     fontSizePx,
		LineCount:      len(l.Lines),
		LineHeight:     float64(l.LineHeight),
		LastLineBottom: float64(l.LastLineBottom),
		HasLayout:      viewportHeight > 0 && l.BoxWidth > 0,
	}
}

// Visible returns the index range of lines intersecting [offset, offset+height).
func (l Layout) Visible(offset, height int) (first, last int) {
	first, last = len(l.Lines), 0
	for i, ln := range l.Lines {
		if ln.Top+l.LineHeight <= offset || ln.Top >= offset+height {
			continue
		}
		if i < first {
			first = i
		}
		last = i + 1
	}
	if first > last {
		return 0, 0
	}
	return first, last
}

func wrapParagraph(face font.Face, para string, avail int) []string {
	if para == "" || measure(face, para) <= avail {
		return []string{strings.TrimRightFunc(para, unicode.IsSpace)}
	}
	var rows []string
	var cur strings.Builder
	curW := 0
	spaceW := measure(face, " ")

	flush := func() {
		rows = append(rows, strings.TrimRightFunc(cur.String(), unicode.IsSpace))
		cur.Reset()
		curW = 0
	}

	for _, word := range splitWords(para) {
		if word == " " {
			if curW > 0 {
				cur.WriteByte(' ')
				curW += spaceW
			}
			continue
		}
		ww := measure(face, word)
		if curW > 0 && curW+ww > avail {
			flush()
		}
		if ww <= avail {
			cur.WriteString(word)
			curW += ww
			continue
		}
		for _, piece := range breakWord(face, word, avail-curW, avail) {
			if curW > 0 && curW+measure(face, piece) > avail {
				flush()
			}
			cur.WriteString(piece)
			curW += measure(face, piece)
		}
	}
	if cur.Len() > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}

// splitWords yields words and single " " separators; runs of spaces collapse
// only at wrap points.
func splitWords(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if r == ' ' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			out = append(out, " ")
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// breakWord cuts word into pieces; the first piece fits in firstAvail when
// possible, the rest in avail. Every piece holds at least one rune.
func breakWord(face font.Face, word string, firstAvail, avail int) []string {
	var pieces []string
	limit := firstAvail
	if limit <= 0 {
		limit = avail
	}
	for word != "" {
		end := 0
		w := 0
		for end < len(word) {
			_, size := utf8.DecodeRuneInString(word[end:])
			rw := measure(face, word[end:end+size])
			if end > 0 && w+rw > limit {
				break
			}
			w += rw
			end += size
		}
		pieces = append(pieces, word[:end])
		word = word[end:]
		limit = avail
	}
	return pieces
}

func measure(face font.Face, s string) int {
	if s == "" {
		return 0
	}
	return font.MeasureString(face, s).Ceil()
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
