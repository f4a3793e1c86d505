// reader.go - io.Reader adapter feeding a rendered waveform to oto

package buzzer

import "unsafe"

// sampleReader streams a pre-rendered float32 buffer to oto's Player as raw
// little-endian bytes, then pads with silence once exhausted so a player
// that reads past the end doesn't see io.EOF mid-playback.
type sampleReader struct {
	samples []float32
	pos     int
}

func newSampleReader(samples []float32) *sampleReader {
	return &sampleReader{samples: samples}
}

func (r *sampleReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.samples) {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	remaining := (*[1 << 30]byte)(unsafe.Pointer(&r.samples[r.pos]))[: (len(r.samples)-r.pos)*4 : (len(r.samples)-r.pos)*4]
	n := copy(p, remaining)
	r.pos += n / 4
	return n, nil
}
