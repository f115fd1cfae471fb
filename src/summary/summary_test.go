package summary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/build-your-own-x-with-ai/AIStreamEye/src/document"
)

func report(t *testing.T, doc *document.AnalysisDocument) string {
	t.Helper()
	var buf bytes.Buffer
	Print(&buf, doc)
	return buf.String()
}

func TestPrint_StreamInfoOnly(t *testing.T) {
	out := report(t, &document.AnalysisDocument{
		StreamInfo: &document.StreamInfo{
			CodecName: "h264",
			Width:     1920,
			Height:    1080,
			FrameRate: 29.97,
			Duration:  10.0,
			Bitrate:   5_000_000,
		},
	})
	for _, want := range []string{
		"VIDEO ANALYSIS SUMMARY",
		"Codec: h264",
		"Resolution: 1920x1080",
		"Frame Rate: 29.97 fps",
		"Duration: 10.00 seconds",
		"Bitrate: 5.00 Mbps",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	for _, absent := range []string{"Frame Statistics", "Bitrate Statistics", "GOP Statistics"} {
		if strings.Contains(out, absent) {
			t.Fatalf("report has block for absent section %q:\n%s", absent, out)
		}
	}
}

func TestPrint_AllSectionsInFixedOrder(t *testing.T) {
	out := report(t, &document.AnalysisDocument{
		StreamInfo: &document.StreamInfo{CodecName: "hevc"},
		FrameStats: &document.FrameStats{TotalFrames: 300, IFrames: 10, PFrames: 200, BFrames: 90, AverageFrameSize: 2048},
		BitrateStats: &document.BitrateStats{
			AverageBitrate: 5_000_000, MaxBitrate: 9_000_000, MinBitrate: 1_000_000,
		},
		GOPs: []document.GOP{{GOPIndex: 0, FrameCount: 30}, {GOPIndex: 1, FrameCount: 24}},
	})
	blocks := []string{"Stream Information", "Frame Statistics", "Bitrate Statistics", "GOP Statistics"}
	last := -1
	for _, b := range blocks {
		i := strings.Index(out, b)
		if i < 0 {
			t.Fatalf("report missing block %q:\n%s", b, out)
		}
		if i < last {
			t.Fatalf("block %q out of order:\n%s", b, out)
		}
		last = i
	}
	for _, want := range []string{
		"Total Frames: 300",
		"Average Frame Size: 2.00 KB",
		"Average: 5.00 Mbps",
		"Maximum: 9.00 Mbps",
		"Minimum: 1.00 Mbps",
		"Total GOPs: 2",
		"Average GOP Length: 27.0 frames",
		"Max GOP Length: 30 frames",
		"Min GOP Length: 24 frames",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPrint_EmptyCodecFallsBackToNA(t *testing.T) {
	out := report(t, &document.AnalysisDocument{StreamInfo: &document.StreamInfo{}})
	if !strings.Contains(out, "Codec: N/A") {
		t.Fatalf("expected N/A codec:\n%s", out)
	}
	if !strings.Contains(out, "Resolution: 0x0") {
		t.Fatalf("expected zero-default resolution:\n%s", out)
	}
}

func TestPrint_EmptyGOPSliceSkipsBlock(t *testing.T) {
	out := report(t, &document.AnalysisDocument{GOPs: []document.GOP{}})
	if strings.Contains(out, "GOP Statistics") {
		t.Fatalf("empty gops must not print a block:\n%s", out)
	}
}

func TestPrint_EmptyDocumentHasOnlyHeader(t *testing.T) {
	out := report(t, &document.AnalysisDocument{})
	if !strings.Contains(out, "VIDEO ANALYSIS SUMMARY") {
		t.Fatalf("missing header:\n%s", out)
	}
	for _, absent := range []string{"Codec", "Statistics"} {
		if strings.Contains(out, absent) {
			t.Fatalf("unexpected section content %q:\n%s", absent, out)
		}
	}
}
