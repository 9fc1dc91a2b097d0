package domain

import "testing"

func TestClassifyMIME(t *testing.T) {
	tests := []struct {
		mimeType string
		want     FileKind
	}{
		{"application/vnd.google-apps.folder", KindFolder},
		{"video/mp4", KindVideo},
		{"video/x-matroska", KindVideo},
		{"image/png", KindImage},
		{"application/pdf", KindDocument},
		{"application/vnd.google-apps.document", KindDocument},
		{"", KindDocument},
	}

	for _, tt := range tests {
		if got := ClassifyMIME(tt.mimeType); got != tt.want {
			t.Errorf("ClassifyMIME(%q) = %v, want %v", tt.mimeType, got, tt.want)
		}
	}
}

func TestEffectiveFieldsResolveShortcut(t *testing.T) {
	rec := FileRecord{
		ID:       "s1",
		Name:     "Movie Link",
		MIMEType: MIMEShortcut,
		Shortcut: &ShortcutTarget{TargetID: "f2", TargetMIMEType: "video/mp4"},
	}

	if got := rec.EffectiveID(); got != "f2" {
		t.Errorf("EffectiveID() = %q, want %q", got, "f2")
	}
	if got := rec.EffectiveMIMEType(); got != "video/mp4" {
		t.Errorf("EffectiveMIMEType() = %q, want %q", got, "video/mp4")
	}
	if got := rec.EffectiveKind(); got != KindVideo {
		t.Errorf("EffectiveKind() = %v, want %v", got, KindVideo)
	}
}

func TestEffectiveFieldsPlainRecord(t *testing.T) {
	rec := FileRecord{ID: "f1", Name: "clip.mp4", MIMEType: "video/mp4"}

	if got := rec.EffectiveID(); got != "f1" {
		t.Errorf("EffectiveID() = %q, want %q", got, "f1")
	}
	if got := rec.EffectiveKind(); got != KindVideo {
		t.Errorf("EffectiveKind() = %v, want %v", got, KindVideo)
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		duration float64
		want     int
	}{
		{"quarter", 30, 120, 25},
		{"complete", 120, 120, 100},
		{"zero duration", 30, 0, 0},
		{"negative duration", 30, -1, 0},
		{"over duration clamps", 150, 120, 100},
		{"rounds", 1, 3, 33},
	}

	for _, tt := range tests {
		if got := ProgressPercent(tt.progress, tt.duration); got != tt.want {
			t.Errorf("%s: ProgressPercent(%v, %v) = %d, want %d",
				tt.name, tt.progress, tt.duration, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{734003200, "700 MB"},
		{1073741824, "1 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestQuotaPercent(t *testing.T) {
	tests := []struct {
		name  string
		quota Quota
		want  int
	}{
		{"half", Quota{UsedBytes: 50, TotalBytes: 100}, 50},
		{"zero total", Quota{UsedBytes: 50, TotalBytes: 0}, 0},
		{"overused clamps", Quota{UsedBytes: 200, TotalBytes: 100}, 100},
		{"empty", Quota{}, 0},
	}

	for _, tt := range tests {
		if got := tt.quota.Percent(); got != tt.want {
			t.Errorf("%s: Percent() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestQuotaBreakdown(t *testing.T) {
	bd := Quota{UsedBytes: 80, TotalBytes: 100}.Breakdown()

	if bd.Percent != 80 {
		t.Fatalf("Percent = %d, want 80", bd.Percent)
	}
	if bd.Video != 40 || bd.Images != 20 || bd.Audio != 12 || bd.Other != 8 {
		t.Errorf("Breakdown = %+v, want video 40 / images 20 / audio 12 / other 8", bd)
	}
}
