// Package series derives display-ready series from an analysis
// document. Extractors are pure: they never mutate the document and
// never fail — a nil result is the "no data, render a placeholder"
// sentinel shared by all chart renderers.
package series

import (
	"github.com/build-your-own-x-with-ai/AIStreamEye/src/document"
)

// FrameType is the normalized frame classification used for coloring.
type FrameType int

const (
	TypeI FrameType = iota
	TypeP
	TypeB
	TypeUnknown
)

// ParseFrameType maps the analyzer's literal type string to a
// FrameType; anything outside {I,P,B} becomes TypeUnknown.
func ParseFrameType(s string) FrameType {
	switch s {
	case "I":
		return TypeI
	case "P":
		return TypeP
	case "B":
		return TypeB
	}
	return TypeUnknown
}

func (t FrameType) String() string {
	switch t {
	case TypeI:
		return "I"
	case TypeP:
		return "P"
	case TypeB:
		return "B"
	}
	return "UNKNOWN"
}

// BitrateSeries is the bitrate-over-time chart input, already converted
// to Mbps.
type BitrateSeries struct {
	Timestamps  []float64 // seconds
	Mbps        []float64
	AverageMbps float64
}

// Bitrate extracts the bitrate time series. Returns nil when the
// bitrateStats section is absent or its time series is empty.
func Bitrate(doc *document.AnalysisDocument) *BitrateSeries {
	if doc == nil || doc.BitrateStats == nil || len(doc.BitrateStats.TimeSeriesData) == 0 {
		return nil
	}
	bs := doc.BitrateStats
	s := &BitrateSeries{
		Timestamps:  make([]float64, len(bs.TimeSeriesData)),
		Mbps:        make([]float64, len(bs.TimeSeriesData)),
		AverageMbps: bs.AverageBitrate / 1_000_000,
	}
	for i, p := range bs.TimeSeriesData {
		s.Timestamps[i] = p.Timestamp
		s.Mbps[i] = float64(p.Bitrate) / 1_000_000
	}
	return s
}

// FrameTypeCounts is the frame-type distribution chart input.
type FrameTypeCounts struct {
	I int
	P int
	B int
}

// Total returns the sum of the three counted kinds.
func (c *FrameTypeCounts) Total() int { return c.I + c.P + c.B }

// FrameTypes extracts the I/P/B counters. Returns nil only when the
// frameStats section itself is absent; missing individual counters
// default to zero.
func FrameTypes(doc *document.AnalysisDocument) *FrameTypeCounts {
	if doc == nil || doc.FrameStats == nil {
		return nil
	}
	fs := doc.FrameStats
	return &FrameTypeCounts{I: fs.IFrames, P: fs.PFrames, B: fs.BFrames}
}

// GOPSeries is the GOP-length bar chart input.
type GOPSeries struct {
	Indices     []int
	FrameCounts []int
	MeanLength  float64
}

// GOPLengths extracts per-GOP lengths in input order plus their mean.
// Returns nil when the gops section is absent or empty, so no consumer
// ever computes a mean over an empty sequence.
func GOPLengths(doc *document.AnalysisDocument) *GOPSeries {
	if doc == nil || len(doc.GOPs) == 0 {
		return nil
	}
	s := &GOPSeries{
		Indices:     make([]int, len(doc.GOPs)),
		FrameCounts: make([]int, len(doc.GOPs)),
	}
	sum := 0
	for i, g := range doc.GOPs {
		s.Indices[i] = g.GOPIndex
		s.FrameCounts[i] = g.FrameCount
		sum += g.FrameCount
	}
	s.MeanLength = float64(sum) / float64(len(doc.GOPs))
	return s
}

// GOPBucket classifies a GOP's length relative to the mean.
type GOPBucket int

const (
	GOPNormal GOPBucket = iota
	GOPLong
	GOPShort
)

// ClassifyGOP buckets one GOP length against the mean: strictly above
// 1.2x is long, strictly below 0.8x is short, boundary values are
// normal. The three buckets are exhaustive and mutually exclusive.
func ClassifyGOP(frameCount int, mean float64) GOPBucket {
	switch {
	case float64(frameCount) > mean*1.2:
		return GOPLong
	case float64(frameCount) < mean*0.8:
		return GOPShort
	}
	return GOPNormal
}

// FrameSizeSeries is the frame-size scatter chart input, sizes already
// converted to KB.
type FrameSizeSeries struct {
	Timestamps []float64 // seconds
	SizesKB    []float64
	Types      []FrameType
}

// FrameSizes extracts per-frame timestamps, sizes and normalized types
// in input order. Returns nil when the frames section is absent or
// empty. Type normalization is for coloring only and does not touch
// any frameStats aggregate.
func FrameSizes(doc *document.AnalysisDocument) *FrameSizeSeries {
	if doc == nil || len(doc.Frames) == 0 {
		return nil
	}
	s := &FrameSizeSeries{
		Timestamps: make([]float64, len(doc.Frames)),
		SizesKB:    make([]float64, len(doc.Frames)),
		Types:      make([]FrameType, len(doc.Frames)),
	}
	for i, f := range doc.Frames {
		s.Timestamps[i] = f.Timestamp
		s.SizesKB[i] = float64(f.Size) / 1024
		s.Types[i] = ParseFrameType(f.Type)
	}
	return s
}
