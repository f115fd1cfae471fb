// Package summary writes the textual analysis report. Blocks are
// emitted in a fixed order, one per present document section; absent
// sections are skipped entirely rather than printed with zeros.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/build-your-own-x-with-ai/AIStreamEye/src/document"
)

const rule = "============================================================"

// Print writes the full report for doc to w. It only reads the
// document; chart rendering is unaffected by it.
func Print(w io.Writer, doc *document.AnalysisDocument) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "VIDEO ANALYSIS SUMMARY")
	fmt.Fprintln(w, rule)

	if info := doc.StreamInfo; info != nil {
		codec := info.CodecName
		if strings.TrimSpace(codec) == "" {
			codec = "N/A"
		}
		fmt.Fprintf(w, "\n📹 Stream Information:\n")
		fmt.Fprintf(w, "  Codec: %s\n", codec)
		fmt.Fprintf(w, "  Resolution: %dx%d\n", info.Width, info.Height)
		fmt.Fprintf(w, "  Frame Rate: %.2f fps\n", info.FrameRate)
		fmt.Fprintf(w, "  Duration: %.2f seconds\n", info.Duration)
		fmt.Fprintf(w, "  Bitrate: %.2f Mbps\n", float64(info.Bitrate)/1_000_000)
	}

	if stats := doc.FrameStats; stats != nil {
		fmt.Fprintf(w, "\n📊 Frame Statistics:\n")
		fmt.Fprintf(w, "  Total Frames: %d\n", stats.TotalFrames)
		fmt.Fprintf(w, "  I-Frames: %d\n", stats.IFrames)
		fmt.Fprintf(w, "  P-Frames: %d\n", stats.PFrames)
		fmt.Fprintf(w, "  B-Frames: %d\n", stats.BFrames)
		fmt.Fprintf(w, "  Average Frame Size: %.2f KB\n", stats.AverageFrameSize/1024)
	}

	if stats := doc.BitrateStats; stats != nil {
		fmt.Fprintf(w, "\n📈 Bitrate Statistics:\n")
		fmt.Fprintf(w, "  Average: %.2f Mbps\n", stats.AverageBitrate/1_000_000)
		fmt.Fprintf(w, "  Maximum: %.2f Mbps\n", stats.MaxBitrate/1_000_000)
		fmt.Fprintf(w, "  Minimum: %.2f Mbps\n", stats.MinBitrate/1_000_000)
	}

	// GOP block only when at least one GOP exists; the mean is never
	// computed over an empty sequence.
	if len(doc.GOPs) > 0 {
		sum, maxLen, minLen := 0, doc.GOPs[0].FrameCount, doc.GOPs[0].FrameCount
		for _, g := range doc.GOPs {
			sum += g.FrameCount
			if g.FrameCount > maxLen {
				maxLen = g.FrameCount
			}
			if g.FrameCount < minLen {
				minLen = g.FrameCount
			}
		}
		fmt.Fprintf(w, "\n🎬 GOP Statistics:\n")
		fmt.Fprintf(w, "  Total GOPs: %d\n", len(doc.GOPs))
		fmt.Fprintf(w, "  Average GOP Length: %.1f frames\n", float64(sum)/float64(len(doc.GOPs)))
		fmt.Fprintf(w, "  Max GOP Length: %d frames\n", maxLen)
		fmt.Fprintf(w, "  Min GOP Length: %d frames\n", minLen)
	}

	fmt.Fprintf(w, "\n%s\n\n", rule)
}
