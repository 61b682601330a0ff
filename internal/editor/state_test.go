package editor

import "testing"

func TestNewlineSplitsLineAtCaret(t *testing.T) {
	s := NewState("hello world")
	s.SetCaret(0, 5)
	if err := s.InsertTextAtCaret("\n"); err != nil {
		t.Fatal(err)
	}

	if s.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", s.LineCount())
	}
	if got := s.Text(); got != "hello\n world" {
		t.Fatalf("unexpected text: %q", got)
	}
	if s.CurrentLine != 1 || s.CaretByte != 0 {
		t.Fatalf("caret not at start of new line: %d:%d", s.CurrentLine, s.CaretByte)
	}
}

func TestBackspaceJoinsWithPreviousLine(t *testing.T) {
	s := NewState("a\nb")
	s.SetCaret(1, 0)
	s.Backspace()

	if s.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", s.LineCount())
	}
	if got := s.Text(); got != "ab" {
		t.Fatalf("unexpected joined text: %q", got)
	}
	if s.CaretByte != 1 {
		t.Fatalf("expected caret at 1, got %d", s.CaretByte)
	}
}

func TestInsertAndDelete(t *testing.T) {
	s := NewState("abcd")
	s.SetCaret(0, 2)
	if err := s.InsertTextAtCaret("X"); err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "abXcd" {
		t.Fatalf("unexpected insert result: %q", got)
	}
	s.DeleteForward()
	if got := s.Text(); got != "abXd" {
		t.Fatalf("unexpected delete result: %q", got)
	}
	if !s.Dirty() {
		t.Fatalf("edits must mark the buffer dirty")
	}
}

func TestDeleteForwardAtLineEndJoins(t *testing.T) {
	s := NewState("one\ntwo")
	s.SetCaret(0, 3)
	s.DeleteForward()
	if got := s.Text(); got != "onetwo" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestSelectionDeleteAcrossLines(t *testing.T) {
	s := NewState("alpha\nbeta")
	s.SetCaret(0, 2)
	s.EnsureSelectionAnchor()
	s.SetCaret(1, 2)
	s.UpdateSelectionFromCaret()

	if got := s.SelectedText(); got != "pha\nbe" {
		t.Fatalf("unexpected selection: %q", got)
	}
	if !s.DeleteSelection() {
		t.Fatalf("expected selection delete")
	}
	if got := s.Text(); got != "alta" {
		t.Fatalf("unexpected text after delete: %q", got)
	}
	if s.HasSelection() {
		t.Fatalf("selection should be cleared")
	}
}

func TestInsertMultilineKeepsTail(t *testing.T) {
	s := NewState("start end")
	s.SetCaret(0, 6)
	if err := s.InsertTextAtCaret("one\r\ntwo\nthree "); err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "start one\ntwo\nthree end" {
		t.Fatalf("unexpected text: %q", got)
	}
	if s.CurrentLine != 2 || s.CaretByte != len("three ") {
		t.Fatalf("unexpected caret %d:%d", s.CurrentLine, s.CaretByte)
	}
}

func TestInsertRejectsInvalidUTF8(t *testing.T) {
	s := NewState("")
	if err := s.InsertTextAtCaret(string([]byte{0xff, 0xfe})); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTypingReplacesSelection(t *testing.T) {
	s := NewState("hello world")
	s.SelectAll()
	if err := s.InsertTextAtCaret("bye"); err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "bye" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestWordMovement(t *testing.T) {
	s := NewState("one two_three, four")
	s.SetCaret(0, 0)
	s.MoveCaretWordRight()
	if s.CaretByte != 3 {
		t.Fatalf("expected caret 3, got %d", s.CaretByte)
	}
	s.MoveCaretWordRight()
	if s.CaretByte != len("one two_three") {
		t.Fatalf("expected caret after two_three, got %d", s.CaretByte)
	}
	s.MoveCaretWordLeft()
	if s.CaretByte != 4 {
		t.Fatalf("expected caret 4, got %d", s.CaretByte)
	}
}

func TestDeleteWordBackward(t *testing.T) {
	s := NewState("keep this  ")
	s.DeleteWordBackward()
	if got := s.Text(); got != "keep " {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestVerticalMoveKeepsColumn(t *testing.T) {
	s := NewState("long line here\nab\nanother long line")
	s.SetCaret(0, 10)
	s.MoveLine(1)
	if s.CurrentLine != 1 || s.CaretByte != 2 {
		t.Fatalf("expected clamp to short line, got %d:%d", s.CurrentLine, s.CaretByte)
	}
	s.MoveLine(1)
	if s.CurrentLine != 2 || s.CaretByte != 10 {
		t.Fatalf("expected preferred column restored, got %d:%d", s.CurrentLine, s.CaretByte)
	}
	s.MoveLine(5)
	if s.CurrentLine != 2 || s.CaretByte != len("another long line") {
		t.Fatalf("expected caret at end of text, got %d:%d", s.CurrentLine, s.CaretByte)
	}
}

func TestCaretStaysOnRuneBoundary(t *testing.T) {
	s := NewState("añb")
	s.SetCaret(0, 2)
	if s.CaretByte != 1 {
		t.Fatalf("expected caret snapped to 1, got %d", s.CaretByte)
	}
	s.MoveCaretRight()
	if s.CaretByte != 3 {
		t.Fatalf("expected caret after two-byte rune, got %d", s.CaretByte)
	}
	s.Backspace()
	if got := s.Text(); got != "ab" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestSetTextNormalizesLineEndings(t *testing.T) {
	s := NewState("a\r\nb\rc")
	if s.LineCount() != 3 || s.Text() != "a\nb\nc" {
		t.Fatalf("unexpected lines: %q", s.Text())
	}
	if s.Dirty() {
		t.Fatalf("SetText must not mark dirty")
	}
}
