package mp4encoder

import (
	"bytes"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"
)

const (
	naluTypeSlice = 1
	naluTypeIDR   = 5
	naluTypeSPS   = 7
	naluTypePPS   = 8
	naluTypeAUD   = 9
)

// accessUnit is one frame's worth of NAL units.
type accessUnit struct {
	nalus      [][]byte
	isKeyframe bool
}

// buildMP4 boxes a raw Annex-B H.264 bitstream into a fragmented MP4.
func (e *Encoder) buildMP4(stream []byte) ([]byte, error) {
	units := splitAccessUnits(stream)
	if len(units) == 0 {
		return nil, ErrNoFrames
	}

	sps, pps, err := extractParameterSets(units)
	if err != nil {
		return nil, err
	}

	timescale := uint32(e.fps * 1000)
	sampleDur := uint32(float64(timescale) / e.fps)
	trackID := uint32(1)

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	trak := init.Moov.Trak

	avcC, err := mp4.CreateAvcC([][]byte{sps}, [][]byte{pps}, true)
	if err != nil {
		return nil, fmt.Errorf("create avcC: %w", err)
	}

	avc1 := mp4.CreateVisualSampleEntryBox("avc1", uint16(e.width), uint16(e.height), avcC)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(avc1)

	trak.Tkhd.Width = mp4.Fixed32(e.width << 16)
	trak.Tkhd.Height = mp4.Fixed32(e.height << 16)

	frag, err := mp4.CreateFragment(1, trackID)
	if err != nil {
		return nil, fmt.Errorf("create fragment: %w", err)
	}

	for i, au := range units {
		sampleData := toLengthPrefixed(au.nalus)
		if len(sampleData) == 0 {
			continue
		}

		flags := mp4.NonSyncSampleFlags
		if au.isKeyframe {
			flags = mp4.SyncSampleFlags
		}

		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: flags,
				Size:  uint32(len(sampleData)),
				Dur:   sampleDur,
			},
			DecodeTime: uint64(i) * uint64(sampleDur),
			Data:       sampleData,
		})
	}

	var buf bytes.Buffer

	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "avc1", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode ftyp: %w", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode moov: %w", err)
	}
	if err := frag.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode fragment: %w", err)
	}

	return buf.Bytes(), nil
}

// splitAccessUnits groups the bitstream's NAL units into frames. The
// encoder emits access unit delimiters (aud=1), so a frame boundary is
// every AUD NAL.
func splitAccessUnits(stream []byte) []accessUnit {
	nalus := parseAnnexB(stream)

	var units []accessUnit
	var current *accessUnit

	for _, nalu := range nalus {
		if len(nalu) == 0 {
			continue
		}
		nalType := nalu[0] & 0x1F

		if nalType == naluTypeAUD {
			if current != nil && len(current.nalus) > 0 {
				units = append(units, *current)
			}
			current = &accessUnit{}
			continue
		}

		if current == nil {
			current = &accessUnit{}
		}
		if nalType == naluTypeIDR {
			current.isKeyframe = true
		}
		current.nalus = append(current.nalus, nalu)
	}

	if current != nil && len(current.nalus) > 0 {
		units = append(units, *current)
	}

	return units
}

// extractParameterSets finds the first SPS and PPS in the stream.
func extractParameterSets(units []accessUnit) (sps, pps []byte, err error) {
	for _, au := range units {
		for _, nalu := range au.nalus {
			switch nalu[0] & 0x1F {
			case naluTypeSPS:
				if sps == nil {
					sps = append([]byte(nil), nalu...)
				}
			case naluTypePPS:
				if pps == nil {
					pps = append([]byte(nil), nalu...)
				}
			}
		}
		if sps != nil && pps != nil {
			return sps, pps, nil
		}
	}
	if sps == nil {
		return nil, nil, fmt.Errorf("SPS not found in bitstream")
	}
	return nil, nil, fmt.Errorf("PPS not found in bitstream")
}

// parseAnnexB splits an Annex-B byte stream into individual NAL units.
func parseAnnexB(data []byte) [][]byte {
	var nalus [][]byte
	start := 0
	i := 0

	for i < len(data) {
		if i+2 < len(data) && data[i] == 0 && data[i+1] == 0 {
			startCodeLen := 0
			if data[i+2] == 1 {
				startCodeLen = 3
			} else if i+3 < len(data) && data[i+2] == 0 && data[i+3] == 1 {
				startCodeLen = 4
			}

			if startCodeLen > 0 {
				if i > start {
					nalus = append(nalus, data[start:i])
				}
				i += startCodeLen
				start = i
				continue
			}
		}
		i++
	}

	if start < len(data) {
		nalus = append(nalus, data[start:])
	}

	return nalus
}

// toLengthPrefixed converts a frame's NAL units to AVCC (length-prefixed)
// sample data. Parameter sets live in the avcC box and are skipped here.
func toLengthPrefixed(nalus [][]byte) []byte {
	size := 0
	for _, nalu := range nalus {
		if n := nalu[0] & 0x1F; n == naluTypeSPS || n == naluTypePPS {
			continue
		}
		size += 4 + len(nalu)
	}

	out := make([]byte, 0, size)
	for _, nalu := range nalus {
		if n := nalu[0] & 0x1F; n == naluTypeSPS || n == naluTypePPS {
			continue
		}
		l := len(nalu)
		out = append(out, byte(l>>24), byte(l>>16), byte(l>>8), byte(l))
		out = append(out, nalu...)
	}
	return out
}
