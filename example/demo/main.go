// Demo: a voice conversation against the realtime API using the default
// microphone and speaker. Requires OPENAI_API_KEY (or Azure equivalents)
// in the environment or a .env file.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	openaitools "github.com/oaitools/openaitools-go"
	"github.com/oaitools/openaitools-go/events"
	"github.com/oaitools/openaitools-go/tool"
)

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		debug       = false
		sampleRate  = 24_000
		instruction = "You are a helpcenter agent and help the user."
	)

	flag.StringVar(&instruction, "instruction", instruction, "instruction to send to the agent.")
	flag.IntVar(&sampleRate, "sample-rate", sampleRate, "microphone and speaker sample rate")
	flag.BoolVar(&debug, "debug", false, "enable debug logs")
	flag.Parse()

	slog.SetLogLoggerLevel(slog.LevelError)
	if debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	hw, err := NewAudioIO(sampleRate)
	must(err)

	client := openaitools.New(
		openaitools.WithInstructions(instruction),
		openaitools.WithSampleRate(sampleRate),
		openaitools.WithTools(
			tool.Function("conversation_end", "End the conversation", tool.NewParameters()),
			tool.Function("get_time", "Get current time", tool.NewParameters()),
		),
	)

	session, err := client.Connect(ctx)
	must(err)
	defer session.Close(context.Background())

	handler := &openaitools.Handler{
		OnTranscriptDone: func(e *events.ResponseAudioTranscriptDoneEvent) {
			fmt.Println("agent>", e.Transcript)
		},
		OnSpeechStarted: func(e *events.SpeechStartedEvent) {
			hw.Clear()
		},
		OnAudioDelta: func(e *events.ResponseAudioDeltaEvent) {
			pcm, err := base64.StdEncoding.DecodeString(e.Delta)
			if err != nil {
				slog.Error("bad audio delta", slog.Any("err", err))
				return
			}
			_, _ = hw.Write(pcm)
		},
		OnFunctionArgsDone: func(e *events.ResponseFunctionCallArgumentsDoneEvent) {
			switch e.Name {
			case "get_time":
				must(session.SubmitFunctionOutput(ctx, e.CallID, time.Now().Format(time.RFC3339), true))
			case "conversation_end":
				os.Exit(0)
			}
		},
		OnServerError: func(e *events.ErrorEvent) {
			slog.Error("server error", slog.Any("error", e))
		},
	}

	go func() {
		if err := handler.Run(ctx, session); err != nil {
			slog.Error("session ended", slog.Any("err", err))
		}
		cancel()
	}()

	must(session.CreateResponse(ctx))

	// mic -> input audio buffer
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := hw.Read(buf)
			if err != nil {
				slog.Error("mic read failed", slog.Any("err", err))
				return
			}
			if err := session.AppendAudio(ctx, buf[:n]); err != nil {
				return
			}
		}
	}()

	<-ctx.Done()
}
