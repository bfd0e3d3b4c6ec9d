package openaitools

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/smallnest/ringbuffer"
)

// AudioIO bridges a caller's audio device rate and the 24 kHz PCM the
// realtime API speaks. The caller writes microphone PCM to Input and
// reads playback PCM from Output; the session side is pumped by
// StreamInput and FeedOutput.
type AudioIO struct {
	outputBuffer *ringbuffer.RingBuffer

	userInputWriter  io.Writer
	userOutputReader io.Reader
	modelInputReader io.Reader
}

const apiSampleRate = 24_000

func NewAudioIO(userSampleRate int, latency time.Duration) *AudioIO {
	inputSize := getChunkSize(apiSampleRate, latency, 2, 1) * 2
	inputBuffer := ringbuffer.New(inputSize).SetBlocking(true)

	outputSize := getChunkSize(apiSampleRate, 60*time.Second, 2, 1) * 2
	outputBuffer := ringbuffer.New(outputSize).SetBlocking(true)

	return &AudioIO{
		outputBuffer:     outputBuffer,
		modelInputReader: NewFixedAudioChunkReader(inputBuffer, apiSampleRate, latency, 2, 1),
		userOutputReader: NewFixedAudioChunkReader(outputBuffer, userSampleRate, latency, 2, 1),
		userInputWriter: &ResampleWriter{
			Sink:     inputBuffer,
			FromRate: userSampleRate,
			ToRate:   apiSampleRate,
		},
	}
}

// Input is where the caller writes microphone PCM at the user rate.
func (a *AudioIO) Input() io.Writer { return a.userInputWriter }

// Output is where the caller reads playback PCM at the user rate.
func (a *AudioIO) Output() io.Reader { return a.userOutputReader }

// FeedOutput queues model audio, resampling from the API rate to the
// user rate.
func (a *AudioIO) FeedOutput(pcm []byte, userSampleRate int) error {
	out := pcm
	if userSampleRate != apiSampleRate {
		resampled, err := ResamplePCM(pcm, apiSampleRate, userSampleRate)
		if err != nil {
			return err
		}
		out = resampled
	}
	_, err := a.outputBuffer.Write(out)
	return err
}

// ClearOutput drops buffered playback, used when the user interrupts the
// model.
func (a *AudioIO) ClearOutput() {
	a.outputBuffer.Reset()
}

// StreamInput pumps buffered microphone audio into the session as
// input_audio_buffer.append events until ctx ends or the session closes.
func (a *AudioIO) StreamInput(ctx context.Context, s *Session) error {
	chunk := make([]byte, getChunkSize(apiSampleRate, s.cfg.latency(), 2, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := a.modelInputReader.Read(chunk)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.AppendAudio(ctx, chunk[:n]); err != nil {
			return err
		}
	}
}
