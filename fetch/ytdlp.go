// Package fetch produces local audio artifacts for catalog items by driving
// yt-dlp as a subprocess.
package fetch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"
)

const (
	defaultYtdlpPath    = "yt-dlp"
	defaultFetchTimeout = 10 * time.Minute

	watchURLPrefix = "https://www.youtube.com/watch?v="
)

// ErrYtdlpNotInstalled indicates the yt-dlp binary was not found.
var ErrYtdlpNotInstalled = errors.New("fetch: yt-dlp not installed")

// FetchError wraps a failed media fetch. Fetch failures are contained at the
// item boundary; the pipeline logs them and moves on.
type FetchError struct {
	// VideoID is the media reference that failed to fetch.
	VideoID string
	// Stderr is the tail of the tool's error output, if any.
	Stderr string
	// Err is the underlying error.
	Err error
}

func (e *FetchError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("fetch: %s: %v: %s", e.VideoID, e.Err, e.Stderr)
	}
	return fmt.Sprintf("fetch: %s: %v", e.VideoID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// progressRe matches yt-dlp download progress lines, e.g.
// "[download]  42.7% of 3.52MiB at 1.21MiB/s ETA 00:02".
var progressRe = regexp.MustCompile(`\[download\]\s+(\d+(?:\.\d+)?)%`)

// Fetcher downloads a video's audio track into an opus container with
// metadata and thumbnail embedded, matching the archive's fixed settings.
type Fetcher struct {
	// Path is the path to the yt-dlp executable. Defaults to "yt-dlp".
	Path string

	// CookiesFile is an optional cookies file passed to yt-dlp for
	// age-restricted or membership content.
	CookiesFile string

	// Timeout bounds a single fetch. Defaults to 10 minutes. A stuck
	// fetch otherwise stalls the whole run.
	Timeout time.Duration
}

// NewFetcher creates a fetcher with default settings.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Path:    defaultYtdlpPath,
		Timeout: defaultFetchTimeout,
	}
}

// Fetch downloads the audio for videoID to dest. The produced file is always
// an opus container; dest should carry the ".opus" extension. onProgress, if
// non-nil, receives download percentages as the tool reports them.
func (f *Fetcher) Fetch(ctx context.Context, videoID, dest string, onProgress func(percent float64)) error {
	path := f.Path
	if path == "" {
		path = defaultYtdlpPath
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("%w: %q", ErrYtdlpNotInstalled, path)
	}

	timeout := f.Timeout
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, path, f.buildArgs(videoID, dest)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &FetchError{VideoID: videoID, Err: err}
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return &FetchError{VideoID: videoID, Err: err}
	}

	// Progress lines arrive on stdout; --newline makes each update its own
	// line so a plain scanner works.
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if percent, ok := parseProgress(scanner.Text()); ok && onProgress != nil {
			onProgress(percent)
		}
	}

	if err := cmd.Wait(); err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return &FetchError{VideoID: videoID, Err: context.DeadlineExceeded}
		}
		if cmdCtx.Err() == context.Canceled {
			return &FetchError{VideoID: videoID, Err: context.Canceled}
		}
		return &FetchError{VideoID: videoID, Stderr: stderr.String(), Err: err}
	}

	return nil
}

// buildArgs assembles the yt-dlp invocation: best audio, extracted to opus at
// the highest quality, with metadata and thumbnail embedded, overwriting any
// partial file from a previous failed run.
func (f *Fetcher) buildArgs(videoID, dest string) []string {
	args := []string{
		watchURLPrefix + videoID,
		"-f", "ba",
		"-x",
		"--audio-format", "opus",
		"--audio-quality", "0",
		"--embed-metadata",
		"--embed-thumbnail",
		"--force-overwrite",
		"--newline",
		"--no-warnings",
		"-o", dest,
	}

	if f.CookiesFile != "" {
		args = append(args, "--cookies", f.CookiesFile)
	}

	return args
}

// parseProgress extracts the percentage from a yt-dlp progress line.
func parseProgress(line string) (float64, bool) {
	m := progressRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return percent, true
}
