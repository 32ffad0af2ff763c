package buildinfo

import "testing"

func setBuild(t *testing.T, version, commit, date string) {
	t.Helper()
	old := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = old[0], old[1], old[2] })
	Version, Commit, Date = version, commit, date
}

func TestString(t *testing.T) {
	tests := []struct {
		name                  string
		version, commit, date string
		want                  string
	}{
		{"defaults", "dev", "none", "unknown", "dev"},
		{"full", "v1.2.3", "abc1234def5678", "2026-01-02", "v1.2.3 (abc1234, 2026-01-02)"},
		{"short commit", "v1.2.3", "abc", "unknown", "v1.2.3 (abc)"},
		{"date only", "v0.1.0", "", "2026-01-02", "v0.1.0 (2026-01-02)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.version, tt.commit, tt.date)
			if got := String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	setBuild(t, "v1.2.3", "abc123", "2026-01-02")
	want := "{{.Name}} v1.2.3 (abc123, 2026-01-02)\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}
