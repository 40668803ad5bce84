package subtitle

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,000
Hello world

2
00:00:03,500 --> 00:00:05,000
This is a test
of two lines
`

const sampleVTT = `WEBVTT

NOTE this block is ignored

1
00:00:01.000 --> 00:00:03.000
Hello <b>world</b>

00:00:03.500 --> 00:00:05.000
Second cue
`

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseSRT(t *testing.T) {
	cues, err := ParseSRT(sampleSRT)
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(cues))
	}
	if cues[0].Text != "Hello world" {
		t.Errorf("cue 1 text = %q", cues[0].Text)
	}
	if !approx(cues[0].Start, 1.0) || !approx(cues[0].End, 3.0) {
		t.Errorf("cue 1 timing = %v..%v, want 1..3", cues[0].Start, cues[0].End)
	}
	if cues[1].Text != "This is a test\nof two lines" {
		t.Errorf("cue 2 text = %q", cues[1].Text)
	}
}

func TestParseSRTVariants(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr error
	}{
		{"crlf", "1\r\n00:00:01,000 --> 00:00:02,000\r\nhi\r\n", 1, nil},
		{"bom", "﻿1\n00:00:01,000 --> 00:00:02,000\nhi\n", 1, nil},
		{"dot millis", "1\n00:00:01.000 --> 00:00:02.000\nhi\n", 1, nil},
		{"no index", "00:00:01,000 --> 00:00:02,000\nhi\n", 1, nil},
		{"no trailing newline", "1\n00:00:01,000 --> 00:00:02,000\nhi", 1, nil},
		{"empty", "", 0, ErrEmptySubtitle},
		{"whitespace only", "\n\n\n", 0, ErrEmptySubtitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues, err := ParseSRT(tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(cues) != tt.want {
				t.Errorf("got %d cues, want %d", len(cues), tt.want)
			}
		})
	}
}

func TestParseVTT(t *testing.T) {
	cues, err := ParseVTT(sampleVTT)
	if err != nil {
		t.Fatalf("ParseVTT: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(cues))
	}
	if cues[0].Text != "Hello world" {
		t.Errorf("inline tags not stripped: %q", cues[0].Text)
	}
	if !approx(cues[1].Start, 3.5) {
		t.Errorf("cue 2 start = %v, want 3.5", cues[1].Start)
	}
}

func TestRoundTrips(t *testing.T) {
	cues, err := ParseSRT(sampleSRT)
	if err != nil {
		t.Fatal(err)
	}

	back, err := ParseSRT(WriteSRT(cues))
	if err != nil {
		t.Fatalf("SRT round trip: %v", err)
	}
	if len(back) != len(cues) {
		t.Fatalf("SRT round trip cue count = %d, want %d", len(back), len(cues))
	}
	for i := range cues {
		if back[i].Text != cues[i].Text {
			t.Errorf("cue %d text = %q, want %q", i+1, back[i].Text, cues[i].Text)
		}
		if !approx(back[i].Start, cues[i].Start) || !approx(back[i].End, cues[i].End) {
			t.Errorf("cue %d timing drifted", i+1)
		}
	}

	back, err = ParseVTT(WriteVTT(cues))
	if err != nil {
		t.Fatalf("VTT round trip: %v", err)
	}
	if len(back) != len(cues) {
		t.Fatalf("VTT round trip cue count = %d, want %d", len(back), len(cues))
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"00:00:01,500", 1.5, false},
		{"00:01:00.000", 60.0, false},
		{"01:02:03,004", 3723.004, false},
		{"garbage", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if err != nil && !errors.Is(err, ErrBadTimestamp) {
				t.Errorf("error %v is not ErrBadTimestamp", err)
			}
		})
	}
}

func TestFormatTimes(t *testing.T) {
	if got := FormatSRTTime(3723.004); got != "01:02:03,004" {
		t.Errorf("FormatSRTTime = %q", got)
	}
	if got := FormatVTTTime(1.5); got != "00:00:01.500" {
		t.Errorf("FormatVTTTime = %q", got)
	}
	if got := FormatSRTTime(-1); got != "00:00:00,000" {
		t.Errorf("negative seconds = %q", got)
	}
}

func TestWords(t *testing.T) {
	cues := []Cue{{Index: 1, Start: 1.0, End: 2.0, Text: "hello world"}}
	words := Words(cues)
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	if words[0].Text != "hello" || words[1].Text != "world" {
		t.Errorf("tokens = %q, %q", words[0].Text, words[1].Text)
	}
	if !approx(words[0].Start, 1.0) || !approx(words[0].End, 1.5) {
		t.Errorf("word 1 timing = %v..%v, want 1..1.5", words[0].Start, words[0].End)
	}
	if !approx(words[1].Start, 1.5) || !approx(words[1].End, 2.0) {
		t.Errorf("word 2 timing = %v..%v, want 1.5..2", words[1].Start, words[1].End)
	}
	if words[0].Cue != 1 {
		t.Errorf("word cue = %d, want 1", words[0].Cue)
	}
}

func TestSplitText(t *testing.T) {
	got := SplitText("Hello, world! It's fine.")
	want := []string{"Hello", ",", "world", "!", "It", "s", "fine", "."}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"native", `{"subtitles":[{"index":1,"start":1,"end":2,"text":"hi"},{"index":2,"start":2,"end":3,"text":"there"}]}`, 2},
		{"segments", `{"segments":[{"start":0.5,"end":1.5,"text":"hello"}]}`, 1},
		{"bare array", `[{"start":0,"end":1,"text":"hi"}]`, 1},
		{"transcription", `{"transcription":[{"timestamps":{"from":"00:00:00,000","to":"00:00:01,500"},"text":"hi"},{"timestamps":{"from":"00:00:01,500","to":"00:00:02,000"},"text":"[_noise]"}]}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues, err := ParseJSON([]byte(tt.content))
			if err != nil {
				t.Fatalf("ParseJSON: %v", err)
			}
			if len(cues) != tt.want {
				t.Errorf("got %d cues, want %d", len(cues), tt.want)
			}
		})
	}

	if _, err := ParseJSON([]byte("not json")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("invalid JSON err = %v", err)
	}
	if _, err := ParseJSON([]byte(`{"subtitles":[]}`)); !errors.Is(err, ErrEmptySubtitle) {
		t.Errorf("empty err = %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"movie.srt", "", FormatSRT},
		{"movie.VTT", "", FormatVTT},
		{"movie.json", "", FormatJSON},
		{"", "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nhi", FormatVTT},
		{"", `{"segments":[]}`, FormatJSON},
		{"", "1\n00:00:01,000 --> 00:00:02,000\nhi", FormatSRT},
		{"movie.txt", "plain text", ""},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.name, tt.content); got != tt.want {
			t.Errorf("DetectFormat(%q, ...) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInspect(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 2.0, End: 1.0, Text: "backwards"},
		{Index: 2, Start: 0.5, End: 3.0, Text: "overlapping"},
		{Index: 3, Start: 3.5, End: 4.5, Text: "   "},
		{Index: 4, Start: 5.0, End: 6.0, Text: strings.Repeat("word ", 16)},
		{Index: 5, Start: 7.0, End: 8.0, Text: "fine"},
	}
	issues := Inspect(cues)

	byType := make(map[string]int)
	for _, issue := range issues {
		byType[issue.Type]++
	}
	for _, want := range []string{"negative_duration", "overlap", "empty_text", "too_long"} {
		if byType[want] == 0 {
			t.Errorf("missing %s issue in %v", want, issues)
		}
	}
	for _, issue := range issues {
		if issue.Cue == 5 {
			t.Errorf("clean cue flagged: %+v", issue)
		}
	}
}

func TestOptimizeTiming(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 0.0, End: 0.2, Text: "short"},
		{Index: 2, Start: 2.0, End: 12.0, Text: "long"},
		{Index: 3, Start: 9.5, End: 10.85, Text: "crowding"},
		{Index: 4, Start: 10.9, End: 12.0, Text: "next"},
	}
	out := OptimizeTiming(cues)

	if !approx(out[0].End, 1.0) {
		t.Errorf("short cue end = %v, want 1.0", out[0].End)
	}
	if !approx(out[1].End, 9.0) {
		t.Errorf("long cue end = %v, want 9.0 (max duration clamp)", out[1].End)
	}
	if !approx(out[2].End, 10.8) {
		t.Errorf("crowding cue end = %v, want 10.8 (gap before next cue)", out[2].End)
	}
	for i, cue := range out {
		if cue.End <= cue.Start {
			t.Errorf("cue %d has non-positive duration after optimize", i+1)
		}
	}
	// input untouched
	if !approx(cues[0].End, 0.2) {
		t.Errorf("input mutated: %v", cues[0].End)
	}
}

func TestStats(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 0, End: 2, Text: "the quick fox"},
		{Index: 2, Start: 2, End: 4, Text: "the lazy dog."},
	}
	stats := Stats(cues)

	if stats.CueCount != 2 {
		t.Errorf("CueCount = %d", stats.CueCount)
	}
	if !approx(stats.TotalDuration, 4.0) || !approx(stats.AvgDuration, 2.0) {
		t.Errorf("durations = %v total, %v avg", stats.TotalDuration, stats.AvgDuration)
	}
	if stats.WordCount != 6 {
		t.Errorf("WordCount = %d, want 6 (punctuation excluded)", stats.WordCount)
	}
	if len(stats.TopWords) == 0 || stats.TopWords[0].Word != "the" || stats.TopWords[0].Count != 2 {
		t.Errorf("TopWords = %v", stats.TopWords)
	}
}

func TestGroupByStart(t *testing.T) {
	words := []Word{
		{Text: "Now", Start: 0, End: 1, Cue: 1},
		{Text: "then", Start: 0, End: 1.5, Cue: 1},
		{Text: "look", Start: 1.5, End: 2, Cue: 1},
		{Text: "over", Start: 2, End: 3, Cue: 2},
		{Text: "there", Start: 2, End: 3.5, Cue: 2},
	}
	groups := GroupByStart(words)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if got := groups[0].Indexes; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("group 0 indexes = %v", got)
	}
	if !approx(groups[0].End, 1.5) || !approx(groups[1].End, 2) {
		t.Errorf("interior group ends = %v, %v, want the next group's start", groups[0].End, groups[1].End)
	}
	if !approx(groups[2].Start, 2) || !approx(groups[2].End, 3.5) {
		t.Errorf("last group = %v..%v, want 2..3.5", groups[2].Start, groups[2].End)
	}
	if GroupByStart(nil) != nil {
		t.Errorf("nil words must give nil groups")
	}
}
