package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ExtractSubtitle pulls one embedded subtitle stream out of a media file,
// converted to SRT by ffmpeg.
func ExtractSubtitle(ctx context.Context, path string, streamIndex int) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-f", "srt",
		"pipe:1",
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("extract stream %d from %s: %w", streamIndex, path, err)
	}
	if len(bytes.TrimSpace(output)) == 0 {
		return nil, fmt.Errorf("stream %d of %s produced no subtitle data", streamIndex, path)
	}
	return output, nil
}
