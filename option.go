package openaitools

import (
	"log/slog"
	"time"

	"github.com/oaitools/openaitools-go/auth"
	"github.com/oaitools/openaitools-go/events"
	"github.com/oaitools/openaitools-go/models"
	"github.com/oaitools/openaitools-go/tool"
)

type clientConfig struct {
	model         string
	provider      *auth.Provider
	instructions  string
	modalities    []events.Modality
	voice         events.Voice
	temperature   *float64
	speed         float64
	sampleRate    int
	latencyMS     int
	inputFormat   events.AudioFormat
	outputFormat  events.AudioFormat
	transcription *events.InputAudioTranscription
	noiseRed      *events.InputAudioNoiseReduction
	turnDetection *events.TurnDetection
	maxTokens     *events.MaxTokens
	tools         []tool.Tool
	toolChoice    any
	dialTimeout   time.Duration
	logger        *slog.Logger
}

func (c *clientConfig) latency() time.Duration {
	return time.Duration(c.latencyMS) * time.Millisecond
}

func (c *clientConfig) sessionConfig() events.SessionConfig {
	toolChoice := c.toolChoice
	if toolChoice == nil && len(c.tools) > 0 {
		toolChoice = tool.ChoiceAuto
	}
	return events.SessionConfig{
		Modalities:               c.modalities,
		Instructions:             c.instructions,
		Voice:                    c.voice,
		InputAudioFormat:         c.inputFormat,
		OutputAudioFormat:        c.outputFormat,
		InputAudioTranscription:  c.transcription,
		InputAudioNoiseReduction: c.noiseRed,
		TurnDetection:            c.turnDetection,
		Tools:                    c.tools,
		ToolChoice:               toolChoice,
		Temperature:              c.temperature,
		MaxResponseOutputTokens:  c.maxTokens,
		Speed:                    c.speed,
	}
}

type ClientOption func(*clientConfig)

func WithModel(model string) ClientOption {
	return func(o *clientConfig) {
		o.model = model
	}
}

func WithProvider(p *auth.Provider) ClientOption {
	return func(o *clientConfig) {
		o.provider = p
	}
}

func WithKey(apiKey string) ClientOption {
	return func(o *clientConfig) {
		o.provider = auth.OpenAI(apiKey)
	}
}

func WithInstructions(instructions string) ClientOption {
	return func(o *clientConfig) {
		o.instructions = instructions
	}
}

func WithModalities(m ...events.Modality) ClientOption {
	return func(o *clientConfig) {
		o.modalities = m
	}
}

func WithVoice(voice events.Voice) ClientOption {
	return func(o *clientConfig) {
		o.voice = voice
	}
}

func WithTemperature(temperature float64) ClientOption {
	return func(o *clientConfig) {
		o.temperature = &temperature
	}
}

func WithSpeed(speed float64) ClientOption {
	return func(o *clientConfig) {
		o.speed = speed
	}
}

func WithAudioFormat(in, out events.AudioFormat) ClientOption {
	return func(o *clientConfig) {
		o.inputFormat = in
		o.outputFormat = out
	}
}

func WithTranscription(t *events.InputAudioTranscription) ClientOption {
	return func(o *clientConfig) {
		o.transcription = t
	}
}

func WithNoiseReduction(profile string) ClientOption {
	return func(o *clientConfig) {
		o.noiseRed = &events.InputAudioNoiseReduction{Type: profile}
	}
}

func WithTurnDetection(td *events.TurnDetection) ClientOption {
	return func(o *clientConfig) {
		o.turnDetection = td
	}
}

// WithoutTurnDetection disables server side turn detection; the caller
// commits audio and requests responses explicitly.
func WithoutTurnDetection() ClientOption {
	return func(o *clientConfig) {
		o.turnDetection = nil
	}
}

func WithMaxResponseTokens(m *events.MaxTokens) ClientOption {
	return func(o *clientConfig) {
		o.maxTokens = m
	}
}

func WithTools(tools ...tool.Tool) ClientOption {
	return func(o *clientConfig) {
		o.tools = tools
	}
}

func WithToolChoice(choice any) ClientOption {
	return func(o *clientConfig) {
		o.toolChoice = choice
	}
}

func WithSampleRate(sr int) ClientOption {
	return func(o *clientConfig) {
		o.sampleRate = sr
	}
}

// WithLatency sets the audio chunking latency in milliseconds.
func WithLatency(latencyMS int) ClientOption {
	return func(o *clientConfig) {
		o.latencyMS = latencyMS
	}
}

func WithDialTimeout(d time.Duration) ClientOption {
	return func(o *clientConfig) {
		o.dialTimeout = d
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientConfig) {
		o.logger = logger
	}
}

func WithOptions(opts ...ClientOption) ClientOption {
	return func(o *clientConfig) {
		for _, opt := range opts {
			opt(o)
		}
	}
}

func withDefaults() ClientOption {
	return WithOptions(
		WithLogger(slog.Default().With("name", "realtime")),
		WithModel(models.GPT4oRealtime),
		WithVoice(events.VoiceCoral),
		WithModalities(events.ModalityText, events.ModalityAudio),
		WithAudioFormat(events.AudioFormatPCM16, events.AudioFormatPCM16),
		WithTurnDetection(events.ServerVAD()),
		WithSampleRate(24_000),
		WithLatency(200),
		WithDialTimeout(10*time.Second),
	)
}
