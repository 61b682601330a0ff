package settings

import "prompter/internal/scroll"

const (
	MinSizeLevel     = 0
	MaxSizeLevel     = 30
	DefaultSizeLevel = 14

	BaseFontSizePx = 16.0

	DefaultPrompt = "Paste or type your script here, then press Start.\n\n" +
		"While the prompter is running:\n" +
		"Space plays and pauses, Up and Down change the speed,\n" +
		"+ and - change the text size, drag the text to scrub\n" +
		"and drag the control bar to move the window."
)

// Display holds the slider positions that survive restarts.
type Display struct {
	SpeedLevel int
	SizeLevel  int
}

func DefaultDisplay() Display {
	return Display{SpeedLevel: scroll.DefaultSpeedLevel, SizeLevel: DefaultSizeLevel}
}

// LoadDisplay reads both levels, clamped to their slider ranges.
func LoadDisplay(s Store) Display {
	return Display{
		SpeedLevel: scroll.ClampSpeedLevel(s.GetInt(KeySpeedLevel, scroll.DefaultSpeedLevel)),
		SizeLevel:  ClampSizeLevel(s.GetInt(KeySizeLevel, DefaultSizeLevel)),
	}
}

func SaveDisplay(s Store, d Display) {
	s.SetInt(KeySpeedLevel, d.SpeedLevel)
	s.SetInt(KeySizeLevel, d.SizeLevel)
}

func LoadPrompt(s Store) string {
	return s.GetString(KeyPromptText, DefaultPrompt)
}

func SavePrompt(s Store, text string) {
	s.SetString(KeyPromptText, text)
}

func ClampSizeLevel(level int) int {
	if level < MinSizeLevel {
		return MinSizeLevel
	}
	if level > MaxSizeLevel {
		return MaxSizeLevel
	}
	return level
}

// FontScale maps a size level to the multiplier applied to BaseFontSizePx.
func FontScale(sizeLevel int) float64 {
	return float64(ClampSizeLevel(sizeLevel)+15) / 20
}

func FontSizePx(sizeLevel int) float64 {
	return BaseFontSizePx * FontScale(sizeLevel)
}
