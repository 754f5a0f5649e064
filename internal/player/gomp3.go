package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

const bytesPerFrame = 4 // stereo, 16-bit

// mp3Stream adapts an llehouerou/go-mp3 decoder to beep.StreamSeekCloser.
type mp3Stream struct {
	decoder *mp3.Decoder
	closer  io.Closer
	err     error
	buf     []byte
}

// decodeGoMP3 decodes MP3 data held by rc. rc must also be an io.Seeker for
// seeking to work.
func decodeGoMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2, // go-mp3 always outputs stereo
		Precision:   2,
	}

	return &mp3Stream{
		decoder: decoder,
		closer:  rc,
		buf:     make([]byte, 8192),
	}, format, nil
}

// Stream reads audio samples into the provided buffer.
func (s *mp3Stream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}

	want := len(samples) * bytesPerFrame
	if len(s.buf) < want {
		s.buf = make([]byte, want)
	}

	read, err := io.ReadFull(s.decoder, s.buf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	frames := read / bytesPerFrame
	if frames == 0 {
		return 0, false
	}
	for i := range frames {
		off := i * bytesPerFrame
		samples[i][0] = pcm16(s.buf[off:])
		samples[i][1] = pcm16(s.buf[off+2:])
	}
	return frames, true
}

func pcm16(b []byte) float64 {
	return float64(int16(binary.LittleEndian.Uint16(b))) / 32768.0 //nolint:gosec // audio samples
}

// Err returns any error that occurred during streaming.
func (s *mp3Stream) Err() error {
	return s.err
}

// Len returns the total number of samples.
func (s *mp3Stream) Len() int {
	count := s.decoder.SampleCount()
	if count < 0 {
		return 0
	}
	return int(count)
}

// Position returns the current sample position.
func (s *mp3Stream) Position() int {
	return int(s.decoder.SamplePosition())
}

// Seek seeks to the given sample position.
func (s *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.decoder.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

// Close closes the decoder's source.
func (s *mp3Stream) Close() error {
	return s.closer.Close()
}
