package ui

import "testing"

func TestThemes(t *testing.T) {
	if LightTheme().IsDark {
		t.Error("light theme reports dark")
	}
	if !DarkTheme().IsDark {
		t.Error("dark theme reports light")
	}
}

func TestDetectTheme_EnvOverride(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("CODESPHERE_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Error("CODESPHERE_DARK_MODE=1 should force the dark theme")
	}
}

func TestDetectTheme_ColorFgBg(t *testing.T) {
	t.Setenv("CODESPHERE_DARK_MODE", "")

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Error("background index 0 is a dark terminal")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Error("background index 15 is a light terminal")
	}
}

func TestRenderDivider(t *testing.T) {
	s := DefaultStyles()
	if s.RenderDivider(0) != "" {
		t.Error("zero width divider should be empty")
	}
	if s.RenderDivider(-3) != "" {
		t.Error("negative width divider should be empty")
	}
	if s.RenderDivider(4) == "" {
		t.Error("positive width divider should render")
	}
}
