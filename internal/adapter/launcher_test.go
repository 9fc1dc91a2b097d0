package adapter

import "testing"

func TestNewLauncherAutoDetectsOffsetFlag(t *testing.T) {
	tests := []struct {
		command string
		flag    string
		want    string
	}{
		{"mpv", "", "--start="},
		{"/usr/local/bin/mpv", "", "--start="},
		{"vlc", "", "--start-time="},
		{"iina", "", "--mpv-start="},
		{"some-player", "", ""},
		{"mpv", "--custom=", "--custom="}, // explicit flag wins
		{"", "", ""},
	}

	for _, tt := range tests {
		l := NewLauncher(tt.command, nil, tt.flag, NullLogger())
		if l.startFlag != tt.want {
			t.Errorf("NewLauncher(%q, %q): startFlag = %q, want %q",
				tt.command, tt.flag, l.startFlag, tt.want)
		}
	}
}
