package fetch

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBuildArgs(t *testing.T) {
	f := NewFetcher()
	args := f.buildArgs("vid123", "/tmp/work/Song.opus")

	joined := strings.Join(args, " ")

	if args[0] != "https://www.youtube.com/watch?v=vid123" {
		t.Errorf("args[0] = %q, want watch URL", args[0])
	}
	for _, want := range []string{
		"-f ba",
		"-x",
		"--audio-format opus",
		"--audio-quality 0",
		"--embed-metadata",
		"--embed-thumbnail",
		"--force-overwrite",
		"-o /tmp/work/Song.opus",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if strings.Contains(joined, "--cookies") {
		t.Errorf("args contain --cookies without a cookies file: %s", joined)
	}
}

func TestBuildArgsWithCookies(t *testing.T) {
	f := NewFetcher()
	f.CookiesFile = "/etc/cookies.txt"
	joined := strings.Join(f.buildArgs("vid123", "out.opus"), " ")

	if !strings.Contains(joined, "--cookies /etc/cookies.txt") {
		t.Errorf("args missing cookies flag: %s", joined)
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		line    string
		percent float64
		ok      bool
	}{
		{"[download]  42.7% of 3.52MiB at 1.21MiB/s ETA 00:02", 42.7, true},
		{"[download] 100% of 3.52MiB in 00:03", 100, true},
		{"[download]   0.1% of ~12.00MiB at Unknown speed", 0.1, true},
		{"[ExtractAudio] Destination: Song.opus", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		percent, ok := parseProgress(tt.line)
		if ok != tt.ok || percent != tt.percent {
			t.Errorf("parseProgress(%q) = (%v, %v), want (%v, %v)",
				tt.line, percent, ok, tt.percent, tt.ok)
		}
	}
}

func TestFetchMissingBinary(t *testing.T) {
	f := NewFetcher()
	f.Path = "/nonexistent/yt-dlp-not-here"

	err := f.Fetch(context.Background(), "vid123", "out.opus", nil)
	if !errors.Is(err, ErrYtdlpNotInstalled) {
		t.Errorf("Fetch() error = %v, want ErrYtdlpNotInstalled", err)
	}
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{
		VideoID: "vid123",
		Stderr:  "ERROR: Video unavailable",
		Err:     errors.New("exit status 1"),
	}

	msg := err.Error()
	if !strings.Contains(msg, "vid123") {
		t.Errorf("Error() = %q, want video ID included", msg)
	}
	if !strings.Contains(msg, "Video unavailable") {
		t.Errorf("Error() = %q, want stderr included", msg)
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Error("errors.As() failed to match *FetchError")
	}
}
