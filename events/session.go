package events

import (
	"strconv"

	"github.com/goccy/go-json"

	"github.com/oaitools/openaitools-go/tool"
)

// AudioFormat of PCM frames on the wire.
type AudioFormat string

const (
	AudioFormatPCM16    AudioFormat = "pcm16"
	AudioFormatG711ULaw AudioFormat = "g711_ulaw"
	AudioFormatG711ALaw AudioFormat = "g711_alaw"
)

// Voice used for audio output.
type Voice string

const (
	VoiceAlloy   Voice = "alloy"
	VoiceAsh     Voice = "ash"
	VoiceBallad  Voice = "ballad"
	VoiceCoral   Voice = "coral"
	VoiceEcho    Voice = "echo"
	VoiceSage    Voice = "sage"
	VoiceShimmer Voice = "shimmer"
	VoiceVerse   Voice = "verse"
)

// Modality of model output.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityAudio Modality = "audio"
)

// MaxTokens is a response token limit: a count or unbounded ("inf").
type MaxTokens struct {
	n   int
	inf bool
}

// MaxTokensOf limits output to n tokens.
func MaxTokensOf(n int) *MaxTokens { return &MaxTokens{n: n} }

// MaxTokensInf removes the limit.
func MaxTokensInf() *MaxTokens { return &MaxTokens{inf: true} }

// IsInf reports whether the limit is unbounded.
func (m MaxTokens) IsInf() bool { return m.inf }

// Value returns the token count, 0 when unbounded.
func (m MaxTokens) Value() int { return m.n }

func (m MaxTokens) MarshalJSON() ([]byte, error) {
	if m.inf {
		return []byte(`"inf"`), nil
	}
	return []byte(strconv.Itoa(m.n)), nil
}

func (m *MaxTokens) UnmarshalJSON(data []byte) error {
	if string(data) == `"inf"` {
		m.inf = true
		m.n = 0
		return nil
	}
	m.inf = false
	return json.Unmarshal(data, &m.n)
}

// TurnDetection holds the VAD configuration. Type selects the variant:
// server_vad uses the threshold/padding/silence fields, semantic_vad the
// eagerness field.
type TurnDetection struct {
	Type              string  `json:"type"`
	Threshold         float64 `json:"threshold,omitempty"`
	PrefixPaddingMs   int     `json:"prefix_padding_ms,omitempty"`
	SilenceDurationMs int     `json:"silence_duration_ms,omitempty"`
	Eagerness         string  `json:"eagerness,omitempty"`
	CreateResponse    *bool   `json:"create_response,omitempty"`
	InterruptResponse *bool   `json:"interrupt_response,omitempty"`
}

// ServerVAD returns a server-side voice activity detection config with
// the vendor defaults.
func ServerVAD() *TurnDetection {
	return &TurnDetection{
		Type:              "server_vad",
		Threshold:         0.5,
		PrefixPaddingMs:   300,
		SilenceDurationMs: 500,
	}
}

// SemanticVAD returns a semantic turn detection config. Eagerness is one
// of low, medium, high or auto.
func SemanticVAD(eagerness string) *TurnDetection {
	return &TurnDetection{Type: "semantic_vad", Eagerness: eagerness}
}

// InputAudioTranscription enables transcription of input audio.
type InputAudioTranscription struct {
	Model    string `json:"model"`
	Language string `json:"language,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
}

// InputAudioNoiseReduction selects the noise reduction profile:
// near_field or far_field.
type InputAudioNoiseReduction struct {
	Type string `json:"type"`
}

// SessionConfig is the mutable session configuration sent in
// session.update. Zero fields are omitted and left unchanged server-side.
type SessionConfig struct {
	Model                    string                    `json:"model,omitempty"`
	Modalities               []Modality                `json:"modalities,omitempty"`
	Instructions             string                    `json:"instructions,omitempty"`
	Voice                    Voice                     `json:"voice,omitempty"`
	InputAudioFormat         AudioFormat               `json:"input_audio_format,omitempty"`
	OutputAudioFormat        AudioFormat               `json:"output_audio_format,omitempty"`
	InputAudioTranscription  *InputAudioTranscription  `json:"input_audio_transcription,omitempty"`
	InputAudioNoiseReduction *InputAudioNoiseReduction `json:"input_audio_noise_reduction,omitempty"`
	TurnDetection            *TurnDetection            `json:"turn_detection,omitempty"`
	Tools                    []tool.Tool               `json:"tools,omitempty"`
	ToolChoice               any                       `json:"tool_choice,omitempty"`
	Temperature              *float64                  `json:"temperature,omitempty"`
	MaxResponseOutputTokens  *MaxTokens                `json:"max_response_output_tokens,omitempty"`
	Speed                    float64                   `json:"speed,omitempty"`
}

// Session is the server's view of the session, echoed in
// session.created and session.updated.
type Session struct {
	ID           string `json:"id,omitempty"`
	Object       string `json:"object,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	ClientSecret any    `json:"client_secret,omitempty"`
	SessionConfig
}

// Conversation identifies a server-side conversation.
type Conversation struct {
	ID     string `json:"id"`
	Object string `json:"object,omitempty"`
}
