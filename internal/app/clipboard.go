package app

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	atotto "github.com/atotto/clipboard"
	"golang.design/x/clipboard"
)

const maxPasteBytes = 1 << 20

// systemClipboard prefers the native clipboard and falls back to atotto,
// which shells out to xclip/xsel/pbcopy, when the native one cannot start.
type systemClipboard struct {
	once     sync.Once
	nativeOK bool
}

func (c *systemClipboard) init() {
	c.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			slog.Info("app: native clipboard unavailable, using fallback", "error", err)
			return
		}
		c.nativeOK = true
	})
}

func (c *systemClipboard) ReadText() (string, error) {
	c.init()
	var raw string
	if c.nativeOK {
		raw = string(clipboard.Read(clipboard.FmtText))
	} else {
		if atotto.Unsupported {
			return "", errors.New("no clipboard available")
		}
		s, err := atotto.ReadAll()
		if err != nil {
			return "", err
		}
		raw = s
	}
	return capPasteText(normalizePasteText(raw), maxPasteBytes), nil
}

func (c *systemClipboard) WriteText(s string) error {
	c.init()
	if c.nativeOK {
		clipboard.Write(clipboard.FmtText, []byte(s))
		return nil
	}
	if atotto.Unsupported {
		return errors.New("no clipboard available")
	}
	return atotto.WriteAll(s)
}

// normalizePasteText turns CRLF and lone CR into LF and drops other control
// characters except tab.
func normalizePasteText(raw string) string {
	raw = strings.ToValidUTF8(raw, "")
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case ch == '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			b.WriteByte('\n')
		case ch == '\n' || ch == '\t' || ch >= 0x20 && ch != 0x7f:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// capPasteText truncates to at most limit bytes without splitting a rune.
func capPasteText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
