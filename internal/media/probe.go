package media

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/tidwall/gjson"
)

// Stream is one track inside a media container
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"` // video, audio, subtitle
	Language  string `json:"language,omitempty"`
	Title     string `json:"title,omitempty"`
}

// Info summarizes an ffprobe run
type Info struct {
	Format   string   `json:"format"`
	Duration float64  `json:"duration"`
	Size     int64    `json:"size"`
	Streams  []Stream `json:"streams"`
}

// textSubtitleCodecs are subtitle codecs that can be converted to SRT.
// Bitmap formats (pgs, dvd_subtitle) need OCR and are excluded.
var textSubtitleCodecs = map[string]bool{
	"subrip":     true,
	"ass":        true,
	"ssa":        true,
	"webvtt":     true,
	"mov_text":   true,
	"srt":        true,
	"text":       true,
	"substation": true,
}

// Probe runs ffprobe on a media file and returns its stream layout
func Probe(ctx context.Context, path string) (*Info, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe(output)
}

func parseProbe(data []byte) (*Info, error) {
	root := gjson.ParseBytes(data)
	if !root.Get("format").Exists() {
		return nil, fmt.Errorf("unrecognized ffprobe output")
	}

	info := &Info{
		Format:   root.Get("format.format_name").String(),
		Duration: root.Get("format.duration").Float(),
		Size:     root.Get("format.size").Int(),
	}
	root.Get("streams").ForEach(func(_, s gjson.Result) bool {
		info.Streams = append(info.Streams, Stream{
			Index:     int(s.Get("index").Int()),
			CodecName: s.Get("codec_name").String(),
			CodecType: s.Get("codec_type").String(),
			Language:  s.Get("tags.language").String(),
			Title:     s.Get("tags.title").String(),
		})
		return true
	})
	return info, nil
}

// SubtitleStreams returns the extractable text subtitle tracks
func (i *Info) SubtitleStreams() []Stream {
	var subs []Stream
	for _, s := range i.Streams {
		if s.CodecType == "subtitle" && textSubtitleCodecs[s.CodecName] {
			subs = append(subs, s)
		}
	}
	return subs
}
