package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Nightfox", "Kanagawa"},
		{"Kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Unknown", "Nightfox"},
	}
	for _, tc := range cases {
		if got := NextTheme(tc.in); got != tc.want {
			t.Fatalf("NextTheme(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetTheme_FallsBackToDefault(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != DefaultThemeName {
		t.Fatalf("GetTheme(Unknown).Name = %q, want %s", got, DefaultThemeName)
	}
}

func TestThemesColorEveryPhase(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, phase := range []string{"idle", "saving", "saving-with-pending", "closed"} {
			if th.PhaseColors[phase] == "" {
				t.Fatalf("theme %s has no color for phase %q", name, phase)
			}
		}
	}
}
