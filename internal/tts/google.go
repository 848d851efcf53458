package tts

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"expediente/internal/logger"
)

const defaultVoice = "en-GB-Chirp3-HD-Charon"

type GoogleTTS struct {
	client *texttospeech.Client

	initSpeaker sync.Once
}

func NewGoogleTTS(ctx context.Context) (*GoogleTTS, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GoogleTTS{client: client}, nil
}

func (g *GoogleTTS) Speak(ctx context.Context, text, voice string) error {
	if voice == "" {
		voice = defaultVoice
	}

	logger.New().Debug(fmt.Sprintf("[tts] [voice:%s]", voice))

	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{
				Text: text,
			},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: getLanguageCode(voice),
			Name:         voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			SampleRateHertz: 44100,
			AudioEncoding:   ttspb.AudioEncoding_LINEAR16, // WAV PCM
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return err
	}

	stream, format, err := wav.Decode(bytes.NewReader(resp.AudioContent))
	if err != nil {
		return err
	}
	defer stream.Close()

	var initErr error
	g.initSpeaker.Do(func() {
		initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return fmt.Errorf("init speaker: %w", initErr)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func getLanguageCode(voice string) string {
	t := strings.Split(voice, "-")
	if len(t) < 3 {
		return voice
	}
	return fmt.Sprintf("%s-%s", t[0], t[1])
}

func (g *GoogleTTS) Name() string {
	return "google"
}
