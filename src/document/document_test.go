package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoad_FullDocument(t *testing.T) {
	path := writeDoc(t, `{
		"streamInfo": {"codecName": "h264", "width": 1920, "height": 1080, "frameRate": 29.97, "duration": 10.0, "bitrate": 5000000, "pixelFormat": "yuv420p"},
		"frameStats": {"totalFrames": 300, "iFrames": 10, "pFrames": 200, "bFrames": 90, "averageFrameSize": 2048.5},
		"bitrateStats": {"averageBitrate": 5000000, "maxBitrate": 9000000, "minBitrate": 1000000, "stdDeviation": 12.5, "timeSeriesData": [{"timestamp": 0.0, "bitrate": 4000000}, {"timestamp": 1.0, "bitrate": 6000000}]},
		"gops": [{"gopIndex": 0, "frameCount": 30, "isOpenGOP": false}],
		"frames": [{"timestamp": 0.033, "size": 15360, "type": "I", "qp": 22}]
	}`)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.StreamInfo == nil || doc.StreamInfo.CodecName != "h264" || doc.StreamInfo.Width != 1920 {
		t.Fatalf("unexpected streamInfo: %+v", doc.StreamInfo)
	}
	if doc.FrameStats == nil || doc.FrameStats.TotalFrames != 300 || doc.FrameStats.AverageFrameSize != 2048.5 {
		t.Fatalf("unexpected frameStats: %+v", doc.FrameStats)
	}
	if doc.BitrateStats == nil || len(doc.BitrateStats.TimeSeriesData) != 2 {
		t.Fatalf("unexpected bitrateStats: %+v", doc.BitrateStats)
	}
	if doc.BitrateStats.TimeSeriesData[1].Bitrate != 6000000 {
		t.Fatalf("unexpected sample: %+v", doc.BitrateStats.TimeSeriesData[1])
	}
	if len(doc.GOPs) != 1 || doc.GOPs[0].FrameCount != 30 {
		t.Fatalf("unexpected gops: %+v", doc.GOPs)
	}
	if len(doc.Frames) != 1 || doc.Frames[0].Type != "I" || doc.Frames[0].Size != 15360 {
		t.Fatalf("unexpected frames: %+v", doc.Frames)
	}
}

// Unknown top-level and nested fields must be accepted silently; the
// producing analyzer's schema is wider than what this tool reads.
func TestLoad_IgnoresUnknownFields(t *testing.T) {
	path := writeDoc(t, `{"streamInfo": {"codecName": "av1", "av1TileInfo": {"tileColumns": 2}}, "motionStats": {"averageMagnitude": 1.5}, "anomalies": []}`)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.StreamInfo == nil || doc.StreamInfo.CodecName != "av1" {
		t.Fatalf("unexpected streamInfo: %+v", doc.StreamInfo)
	}
}

func TestLoad_MissingSectionsAreNil(t *testing.T) {
	path := writeDoc(t, `{}`)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.StreamInfo != nil || doc.FrameStats != nil || doc.BitrateStats != nil {
		t.Fatalf("expected nil sections, got %+v", doc)
	}
	if doc.GOPs != nil || doc.Frames != nil {
		t.Fatalf("expected nil sequences, got gops=%v frames=%v", doc.GOPs, doc.Frames)
	}
}

func TestLoad_AbsentFieldsDefaultToZero(t *testing.T) {
	path := writeDoc(t, `{"streamInfo": {}, "frameStats": {"iFrames": 3}}`)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.StreamInfo.Width != 0 || doc.StreamInfo.FrameRate != 0 || doc.StreamInfo.CodecName != "" {
		t.Fatalf("expected zero defaults, got %+v", doc.StreamInfo)
	}
	if doc.FrameStats.IFrames != 3 || doc.FrameStats.PFrames != 0 || doc.FrameStats.TotalFrames != 0 {
		t.Fatalf("expected per-field defaults, got %+v", doc.FrameStats)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := writeDoc(t, `{"streamInfo": `)
	_, err := Load(path)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %v", err)
	}
	if fe.Path != path {
		t.Fatalf("FormatError path = %q, want %q", fe.Path, path)
	}
}
