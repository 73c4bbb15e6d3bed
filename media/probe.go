package media

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration returns the duration in seconds of an audio file on disk.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe returned no duration for %s", path)
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("bad ffprobe duration %q: %w", probe.Format.Duration, err)
	}
	return seconds, nil
}

// ProbeDurationBytes probes in-memory audio by staging it in a temp file,
// the shape synthesis results arrive in.
func ProbeDurationBytes(audio []byte) (float64, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s_probe.mp3", uuid.NewString()))
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return 0, fmt.Errorf("failed to stage audio for probe: %w", err)
	}
	defer os.Remove(path)
	return ProbeDuration(path)
}
