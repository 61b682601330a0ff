package editor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Position struct {
	Line int
	Byte int
}

// State is the prompt being edited: one []byte per line, a caret and an
// optional selection anchored at another position.
type State struct {
	Lines       [][]byte
	CurrentLine int
	CaretByte   int

	// column the caret tries to return to on vertical moves
	preferredByte int

	selectionAnchor    Position
	selectionAnchored  bool
	selectionIsVisible bool
	dirty              bool
}

func NewState(text string) *State {
	s := &State{}
	s.SetText(text)
	return s
}

func (s *State) Normalize() {
	if len(s.Lines) == 0 {
		s.Lines = [][]byte{{}}
	}
	if s.CurrentLine < 0 {
		s.CurrentLine = 0
	}
	if s.CurrentLine >= len(s.Lines) {
		s.CurrentLine = len(s.Lines) - 1
	}
	s.CaretByte = clampToRuneBoundary(s.CurrentLineText(), s.CaretByte)
	if s.selectionAnchored {
		s.selectionAnchor = s.clampPosition(s.selectionAnchor)
		s.selectionIsVisible = comparePos(s.selectionAnchor, s.caretPos()) != 0
	}
}

// SetText replaces the whole buffer and puts the caret at the end.
func (s *State) SetText(text string) {
	text = strings.ToValidUTF8(text, "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	s.Lines = make([][]byte, len(parts))
	for i, p := range parts {
		s.Lines[i] = []byte(p)
	}
	s.CurrentLine = len(s.Lines) - 1
	s.CaretByte = len(s.Lines[s.CurrentLine])
	s.preferredByte = s.CaretByte
	s.ClearSelection()
	s.dirty = false
}

func (s *State) Text() string {
	s.Normalize()
	parts := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Dirty reports edits since the last SetText or MarkSaved.
func (s *State) Dirty() bool { return s.dirty }
func (s *State) MarkSaved()  { s.dirty = false }

func (s *State) LineCount() int {
	s.Normalize()
	return len(s.Lines)
}

func (s *State) CurrentLineText() []byte {
	if s.CurrentLine < 0 || s.CurrentLine >= len(s.Lines) {
		return nil
	}
	return s.Lines[s.CurrentLine]
}

func (s *State) SetCaret(line, bytePos int) {
	s.Normalize()
	if line < 0 {
		line = 0
	}
	if line >= len(s.Lines) {
		line = len(s.Lines) - 1
	}
	s.CurrentLine = line
	s.CaretByte = clampToRuneBoundary(s.Lines[line], bytePos)
	s.preferredByte = s.CaretByte
	if s.selectionAnchored {
		s.selectionIsVisible = comparePos(s.selectionAnchor, s.caretPos()) != 0
	}
}

// MoveLine moves the caret up or down, keeping the column it last chose.
func (s *State) MoveLine(delta int) {
	s.Normalize()
	line := s.CurrentLine + delta
	if line < 0 {
		s.CurrentLine = 0
		s.CaretByte = 0
		return
	}
	if line >= len(s.Lines) {
		s.CurrentLine = len(s.Lines) - 1
		s.CaretByte = len(s.Lines[s.CurrentLine])
		return
	}
	s.CurrentLine = line
	s.CaretByte = clampToRuneBoundary(s.Lines[line], s.preferredByte)
}

func (s *State) MoveCaretLeft() {
	s.Normalize()
	if s.CaretByte <= 0 {
		if s.CurrentLine > 0 {
			s.CurrentLine--
			s.CaretByte = len(s.CurrentLineText())
		}
	} else {
		s.CaretByte = previousRuneBoundary(s.CurrentLineText(), s.CaretByte)
	}
	s.preferredByte = s.CaretByte
}

func (s *State) MoveCaretRight() {
	s.Normalize()
	if s.CaretByte >= len(s.CurrentLineText()) {
		if s.CurrentLine < len(s.Lines)-1 {
			s.CurrentLine++
			s.CaretByte = 0
		}
	} else {
		s.CaretByte = nextRuneBoundary(s.CurrentLineText(), s.CaretByte)
	}
	s.preferredByte = s.CaretByte
}

func (s *State) MoveCaretWordLeft() {
	s.Normalize()
	text := s.CurrentLineText()
	if s.CaretByte <= 0 {
		s.MoveCaretLeft()
		return
	}
	pos := s.CaretByte
	for pos > 0 {
		r, size := utf8.DecodeLastRune(text[:pos])
		if isWordRune(r) {
			break
		}
		pos -= max(size, 1)
	}
	for pos > 0 {
		r, size := utf8.DecodeLastRune(text[:pos])
		if !isWordRune(r) {
			break
		}
		pos -= max(size, 1)
	}
	s.CaretByte = clampToRuneBoundary(text, pos)
	s.preferredByte = s.CaretByte
}

func (s *State) MoveCaretWordRight() {
	s.Normalize()
	text := s.CurrentLineText()
	if s.CaretByte >= len(text) {
		s.MoveCaretRight()
		return
	}
	pos := s.CaretByte
	for pos < len(text) {
		r, size := utf8.DecodeRune(text[pos:])
		if isWordRune(r) {
			break
		}
		pos += max(size, 1)
	}
	for pos < len(text) {
		r, size := utf8.DecodeRune(text[pos:])
		if !isWordRune(r) {
			break
		}
		pos += max(size, 1)
	}
	s.CaretByte = clampToRuneBoundary(text, pos)
	s.preferredByte = s.CaretByte
}

func (s *State) MoveCaretToLineStart() {
	s.Normalize()
	s.CaretByte = 0
	s.preferredByte = 0
}

func (s *State) MoveCaretToLineEnd() {
	s.Normalize()
	s.CaretByte = len(s.CurrentLineText())
	s.preferredByte = s.CaretByte
}

func (s *State) MoveToStart() {
	s.SetCaret(0, 0)
}

func (s *State) MoveToEnd() {
	s.Normalize()
	last := len(s.Lines) - 1
	s.SetCaret(last, len(s.Lines[last]))
}

func (s *State) InsertTextAtCaret(input string) error {
	if input == "" {
		return nil
	}
	if !utf8.ValidString(input) {
		return fmt.Errorf("input must be valid UTF-8")
	}
	s.Normalize()
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")
	s.DeleteSelection()

	line := s.CurrentLineText()
	pos := clampToRuneBoundary(line, s.CaretByte)
	left := append([]byte(nil), line[:pos]...)
	right := append([]byte(nil), line[pos:]...)

	parts := strings.Split(input, "\n")
	if len(parts) == 1 {
		s.Lines[s.CurrentLine] = append(append(left, parts[0]...), right...)
		s.CaretByte = pos + len(parts[0])
	} else {
		inserted := make([][]byte, len(parts))
		inserted[0] = append(left, parts[0]...)
		for i := 1; i < len(parts)-1; i++ {
			inserted[i] = []byte(parts[i])
		}
		last := parts[len(parts)-1]
		inserted[len(parts)-1] = append([]byte(last), right...)

		tail := append([][]byte(nil), s.Lines[s.CurrentLine+1:]...)
		s.Lines = append(append(s.Lines[:s.CurrentLine], inserted...), tail...)
		s.CurrentLine += len(parts) - 1
		s.CaretByte = len(last)
	}
	s.preferredByte = s.CaretByte
	s.ClearSelection()
	s.dirty = true
	return nil
}

func (s *State) Backspace() {
	s.Normalize()
	if s.DeleteSelection() {
		return
	}
	if s.CaretByte > 0 {
		start := previousRuneBoundary(s.CurrentLineText(), s.CaretByte)
		s.deleteInLine(s.CurrentLine, start, s.CaretByte)
		s.CaretByte = start
	} else if s.CurrentLine > 0 {
		prevLen := len(s.Lines[s.CurrentLine-1])
		s.joinLines(s.CurrentLine - 1)
		s.CurrentLine--
		s.CaretByte = prevLen
	}
	s.preferredByte = s.CaretByte
}

func (s *State) DeleteForward() {
	s.Normalize()
	if s.DeleteSelection() {
		return
	}
	text := s.CurrentLineText()
	if s.CaretByte < len(text) {
		s.deleteInLine(s.CurrentLine, s.CaretByte, nextRuneBoundary(text, s.CaretByte))
		return
	}
	if s.CurrentLine < len(s.Lines)-1 {
		s.joinLines(s.CurrentLine)
	}
}

func (s *State) DeleteWordBackward() {
	s.Normalize()
	if s.DeleteSelection() {
		return
	}
	if s.CaretByte == 0 {
		s.Backspace()
		return
	}
	start := previousWordBoundary(s.CurrentLineText(), s.CaretByte)
	s.deleteInLine(s.CurrentLine, start, s.CaretByte)
	s.CaretByte = start
	s.preferredByte = start
}

func (s *State) DeleteWordForward() {
	s.Normalize()
	if s.DeleteSelection() {
		return
	}
	text := s.CurrentLineText()
	if s.CaretByte >= len(text) {
		s.DeleteForward()
		return
	}
	s.deleteInLine(s.CurrentLine, s.CaretByte, nextWordBoundary(text, s.CaretByte))
}

func (s *State) HasSelection() bool {
	s.Normalize()
	return s.selectionIsVisible
}

func (s *State) EnsureSelectionAnchor() {
	s.Normalize()
	if s.selectionAnchored {
		return
	}
	s.selectionAnchor = s.caretPos()
	s.selectionAnchored = true
	s.selectionIsVisible = false
}

func (s *State) UpdateSelectionFromCaret() {
	s.Normalize()
	if !s.selectionAnchored {
		s.selectionAnchor = s.caretPos()
		s.selectionAnchored = true
	}
	s.selectionIsVisible = comparePos(s.selectionAnchor, s.caretPos()) != 0
}

func (s *State) ClearSelection() {
	s.selectionAnchored = false
	s.selectionIsVisible = false
}

func (s *State) SelectionRange() (Position, Position, bool) {
	s.Normalize()
	if !s.selectionIsVisible {
		return Position{}, Position{}, false
	}
	a := s.selectionAnchor
	b := s.caretPos()
	if comparePos(a, b) <= 0 {
		return a, b, true
	}
	return b, a, true
}

func (s *State) SelectAll() {
	s.Normalize()
	s.selectionAnchor = Position{}
	s.selectionAnchored = true
	s.CurrentLine = len(s.Lines) - 1
	s.CaretByte = len(s.Lines[s.CurrentLine])
	s.selectionIsVisible = comparePos(s.selectionAnchor, s.caretPos()) != 0
}

func (s *State) SelectedText() string {
	start, end, ok := s.SelectionRange()
	if !ok {
		return ""
	}
	if start.Line == end.Line {
		return string(s.Lines[start.Line][start.Byte:end.Byte])
	}
	var out strings.Builder
	out.Write(s.Lines[start.Line][start.Byte:])
	for i := start.Line + 1; i < end.Line; i++ {
		out.WriteByte('\n')
		out.Write(s.Lines[i])
	}
	out.WriteByte('\n')
	out.Write(s.Lines[end.Line][:end.Byte])
	return out.String()
}

func (s *State) DeleteSelection() bool {
	start, end, ok := s.SelectionRange()
	if !ok {
		return false
	}
	merged := append(append([]byte(nil), s.Lines[start.Line][:start.Byte]...), s.Lines[end.Line][end.Byte:]...)
	s.Lines[start.Line] = merged
	s.Lines = append(s.Lines[:start.Line+1], s.Lines[end.Line+1:]...)
	s.CurrentLine = start.Line
	s.CaretByte = start.Byte
	s.preferredByte = start.Byte
	s.ClearSelection()
	s.dirty = true
	return true
}

func (s *State) deleteInLine(line, from, to int) {
	if from >= to {
		return
	}
	text := s.Lines[line]
	s.Lines[line] = append(append([]byte(nil), text[:from]...), text[to:]...)
	s.dirty = true
}

// joinLines appends line i+1 to line i.
func (s *State) joinLines(i int) {
	s.Lines[i] = append(append([]byte(nil), s.Lines[i]...), s.Lines[i+1]...)
	s.Lines = append(s.Lines[:i+1], s.Lines[i+2:]...)
	s.dirty = true
}

func (s *State) caretPos() Position {
	return Position{Line: s.CurrentLine, Byte: s.CaretByte}
}

func (s *State) clampPosition(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(s.Lines) {
		p.Line = len(s.Lines) - 1
	}
	p.Byte = clampToRuneBoundary(s.Lines[p.Line], p.Byte)
	return p
}

func clampToRuneBoundary(text []byte, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= len(text) {
		return len(text)
	}
	for pos > 0 && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}

func previousRuneBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	if pos == 0 {
		return 0
	}
	_, size := utf8.DecodeLastRune(text[:pos])
	return pos - max(size, 1)
}

func nextRuneBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	if pos >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRune(text[pos:])
	return pos + max(size, 1)
}

func previousWordBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	for pos > 0 {
		r, size := utf8.DecodeLastRune(text[:pos])
		if !unicode.IsSpace(r) {
			break
		}
		pos -= max(size, 1)
	}
	for pos > 0 {
		r, size := utf8.DecodeLastRune(text[:pos])
		if unicode.IsSpace(r) {
			break
		}
		pos -= max(size, 1)
	}
	return pos
}

func nextWordBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	for pos < len(text) {
		r, size := utf8.DecodeRune(text[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += max(size, 1)
	}
	for pos < len(text) {
		r, size := utf8.DecodeRune(text[pos:])
		if unicode.IsSpace(r) {
			break
		}
		pos += max(size, 1)
	}
	return pos
}

func comparePos(a, b Position) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	switch {
	case a.Byte < b.Byte:
		return -1
	case a.Byte > b.Byte:
		return 1
	}
	return 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
