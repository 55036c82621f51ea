package domain

// Summary levels requested by the client.
const (
	SummaryShort    = "short"
	SummaryMedium   = "medium"
	SummaryDetailed = "detailed"
)

// Question types understood by the question generator.
const (
	QuestionMCQ         = "mcq"
	QuestionOpenEnded   = "open-ended"
	QuestionShortAnswer = "short-answer"
	QuestionInterview   = "interview"
)

const (
	SourceYouTube = "youtube"
	SourceUpload  = "upload"
)

type Topic struct {
	Topic      string  `json:"topic"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	KeyInsight string  `json:"keyInsight"`
}

type Video struct {
	ID           string  `json:"id"`
	SourceType   string  `json:"sourceType"`
	YouTubeURL   string  `json:"youtubeUrl,omitempty"`
	FilePath     string  `json:"filePath,omitempty"`
	Title        string  `json:"title"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty"`
	Language     string  `json:"language"`
	Transcript   string  `json:"transcript"`
	Duration     float64 `json:"duration"`
	Topics       []Topic `json:"topics"`
	CreatedAt    int64   `json:"createdAt"`
}

type Summary struct {
	ID      string `json:"id"`
	VideoID string `json:"videoId"`
	Level   string `json:"level"`
	Content string `json:"content"`
}

type Question struct {
	ID                 string   `json:"id,omitempty"`
	VideoID            string   `json:"videoId,omitempty"`
	Type               string   `json:"type"`
	Difficulty         string   `json:"difficulty"`
	Text               string   `json:"text"`
	Options            []string `json:"options,omitempty"`
	CorrectOptionIndex *int     `json:"correctOptionIndex,omitempty"`
	AnswerExplanation  string   `json:"answerExplanation,omitempty"`
	TimestampSeconds   float64  `json:"timestampSeconds"`
}

// AmbiguitySpan is a candidate unclear passage flagged by the detector,
// before any clarification has been generated. Spans are never persisted
// on their own; only their resolved Clarifications are.
type AmbiguitySpan struct {
	Snippet          string  `json:"snippet"`
	Reason           string  `json:"reason"`
	TimestampSeconds float64 `json:"timestampSeconds"`
}

type Clarification struct {
	ID                string   `json:"id,omitempty"`
	VideoID           string   `json:"videoId,omitempty"`
	TranscriptSnippet string   `json:"transcriptSnippet"`
	Reason            string   `json:"reason"`
	ClarificationText string   `json:"clarificationText"`
	Examples          []string `json:"examples"`
	Definition        string   `json:"definition,omitempty"`
	CreatedAt         int64    `json:"createdAt,omitempty"`
}

type Doubt struct {
	ID        string `json:"id"`
	VideoID   string `json:"videoId"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt int64  `json:"createdAt"`
}
