package transcript

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ErrUnavailable means no transcript could be produced for the source.
var ErrUnavailable = errors.New("transcript: no transcript available for this video")

// Request describes one transcript source.
type Request struct {
	SourceType string
	YouTubeURL string
	FilePath   string
	Language   string
}

// Provider acquires a plain-text transcript for a source descriptor.
type Provider interface {
	Acquire(ctx context.Context, req Request) (string, error)
}

var videoIDRe = regexp.MustCompile(`^.*((youtu.be/)|(v/)|(/u/\w/)|(embed/)|(watch\?))\??v?=?([^#&?]*).*`)

// ExtractVideoID pulls the 11-character video identifier out of any of the
// usual YouTube URL shapes. Returns "" when the URL does not look like a
// YouTube video link.
func ExtractVideoID(rawURL string) string {
	m := videoIDRe.FindStringSubmatch(rawURL)
	if m == nil || len(m[7]) != 11 {
		return ""
	}
	return m[7]
}

const demoTranscript = "This is a demo transcript provided because the real subtitles could not be fetched for this YouTube video. It covers the core aspects of artificial intelligence, machine learning, and their impact on modern society. The speaker discusses how neural networks have evolved to solve complex problems and why data quality is the most crucial factor in model performance."

const simulatedUploadTranscript = "This is a simulated transcript from a locally uploaded video. In a real application, you would use OpenAI's Whisper API or a self-hosted Whisper model to convert audio/video to text."

// YouTube fetches captions through the public timedtext endpoint and falls
// back to a demo transcript when none can be retrieved, so an analysis can
// always be demonstrated.
type YouTube struct {
	httpClient *http.Client
	baseURL    string
}

func NewYouTube() *YouTube {
	return &YouTube{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://video.google.com/timedtext",
	}
}

func (y *YouTube) Acquire(ctx context.Context, req Request) (string, error) {
	switch req.SourceType {
	case "youtube":
		videoID := ExtractVideoID(req.YouTubeURL)
		if videoID == "" {
			return "", fmt.Errorf("%w: invalid youtube url", ErrUnavailable)
		}

		text, err := y.fetchCaptions(ctx, videoID, req.Language)
		if err != nil {
			log.Printf("error fetching real transcript for %s: %v", videoID, err)
			log.Printf("--- TRANSCRIPT FALLBACK ACTIVE: using demo transcript ---")
			return demoTranscript, nil
		}

		log.Printf("fetched transcript for video %s (%d chars)", videoID, len(text))
		return text, nil
	case "upload":
		log.Printf("simulating local transcription for: %s", req.FilePath)
		return simulatedUploadTranscript, nil
	default:
		return "", fmt.Errorf("%w: unknown source type %q", ErrUnavailable, req.SourceType)
	}
}

func (y *YouTube) fetchCaptions(ctx context.Context, videoID, language string) (string, error) {
	lang := language
	if lang == "" {
		lang = "en"
	}

	endpoint := fmt.Sprintf("%s?lang=%s&v=%s", y.baseURL, url.QueryEscape(lang), url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create captions request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("captions endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read captions: %w", err)
	}

	text, err := parseTimedText(body)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("transcript is empty")
	}

	return text, nil
}

type timedText struct {
	Texts []struct {
		Content string `xml:",chardata"`
	} `xml:"text"`
}

func parseTimedText(data []byte) (string, error) {
	var doc timedText
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parse timedtext: %w", err)
	}

	parts := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Content))
		if line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, " "), nil
}
