// Package document defines the analysis-document model and its loader.
//
// The document is produced by an external stream analyzer and consumed
// here read-only. Every section is optional: a missing section decodes
// to nil (or an empty slice), never to an error. Schema validation is
// deliberately absent — consumers branch on presence themselves.
package document

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// ErrNotFound reports that the document path does not exist.
var ErrNotFound = errors.New("file not found")

// FormatError reports a file that exists but is not a well-formed
// analysis document.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// AnalysisDocument is the root of one analysis result. Nil pointers and
// nil slices mark absent sections.
type AnalysisDocument struct {
	StreamInfo   *StreamInfo   `json:"streamInfo,omitempty"`
	FrameStats   *FrameStats   `json:"frameStats,omitempty"`
	BitrateStats *BitrateStats `json:"bitrateStats,omitempty"`
	GOPs         []GOP         `json:"gops,omitempty"`
	Frames       []Frame       `json:"frames,omitempty"`
}

// StreamInfo describes the analyzed stream. Zero values are the defined
// defaults for fields the analyzer omitted.
type StreamInfo struct {
	CodecName string  `json:"codecName"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FrameRate float64 `json:"frameRate"`
	Duration  float64 `json:"duration"`  // seconds
	Bitrate   int64   `json:"bitrate"`   // bits/second
}

// FrameStats holds aggregate frame counters computed by the analyzer.
type FrameStats struct {
	TotalFrames      int     `json:"totalFrames"`
	IFrames          int     `json:"iFrames"`
	PFrames          int     `json:"pFrames"`
	BFrames          int     `json:"bFrames"`
	AverageFrameSize float64 `json:"averageFrameSize"` // bytes
}

// BitrateStats holds scalar bitrate aggregates plus the sampled time
// series, ordered by timestamp (input order is trusted, not re-sorted).
type BitrateStats struct {
	AverageBitrate float64         `json:"averageBitrate"` // bits/second
	MaxBitrate     float64         `json:"maxBitrate"`
	MinBitrate     float64         `json:"minBitrate"`
	TimeSeriesData []BitrateSample `json:"timeSeriesData,omitempty"`
}

// BitrateSample is one (timestamp, bitrate) point of the series.
type BitrateSample struct {
	Timestamp float64 `json:"timestamp"` // seconds
	Bitrate   int64   `json:"bitrate"`   // bits/second
}

// GOP is one group of pictures.
type GOP struct {
	GOPIndex   int `json:"gopIndex"`
	FrameCount int `json:"frameCount"`
}

// Frame is one decoded frame record. Type is the analyzer's literal
// string ("I", "P", "B", or anything else); mapping unrecognized values
// to UNKNOWN happens at extraction, not here.
type Frame struct {
	Timestamp float64 `json:"timestamp"` // seconds
	Size      int64   `json:"size"`      // bytes
	Type      string  `json:"type"`
}

// Load reads and parses the analysis document at path.
//
// A missing path yields an error wrapping ErrNotFound; content that is
// not valid JSON yields a *FormatError. Unknown fields are ignored and
// absent sections are not an error.
func Load(path string) (*AnalysisDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc AnalysisDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	return &doc, nil
}
