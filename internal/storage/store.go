package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TejasKabotula/youtube-genai-learning/internal/domain"
)

type metaData struct {
	Videos         map[string]domain.Video         `json:"videos"`
	Summaries      map[string]domain.Summary       `json:"summaries"`
	Questions      map[string]domain.Question      `json:"questions"`
	Clarifications map[string]domain.Clarification `json:"clarifications"`
	Doubts         map[string]domain.Doubt         `json:"doubts"`
}

// Store persists all analysis artifacts in a single JSON file, written
// atomically via a temp-file rename.
type Store struct {
	mu   sync.RWMutex
	path string
	data metaData
}

func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	store := &Store{path: filepath.Join(baseDir, "meta.json")}
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = metaData{}
	s.ensureMaps()

	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.saveLocked()
	}
	if err != nil {
		return fmt.Errorf("open meta file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&s.data); err != nil {
		if errors.Is(err, io.EOF) {
			return s.saveLocked()
		}
		return fmt.Errorf("decode meta file: %w", err)
	}

	s.ensureMaps()
	return nil
}

func (s *Store) CreateVideo(video domain.Video) (domain.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if video.CreatedAt == 0 {
		video.CreatedAt = time.Now().Unix()
	}
	if video.Topics == nil {
		video.Topics = []domain.Topic{}
	}

	s.data.Videos[video.ID] = video

	if err := s.saveLocked(); err != nil {
		return domain.Video{}, err
	}
	return video, nil
}

func (s *Store) ListVideos() []domain.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	videos := make([]domain.Video, 0, len(s.data.Videos))
	for _, video := range s.data.Videos {
		videos = append(videos, video)
	}
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].CreatedAt > videos[j].CreatedAt
	})
	return videos
}

func (s *Store) GetVideo(id string) (domain.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	video, ok := s.data.Videos[id]
	if !ok {
		return domain.Video{}, fmt.Errorf("video %s not found", id)
	}
	return video, nil
}

// DeleteVideo removes a video and cascades to its summaries, questions,
// clarifications and doubts.
func (s *Store) DeleteVideo(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Videos[id]; !ok {
		return fmt.Errorf("video %s not found", id)
	}

	delete(s.data.Videos, id)
	for sid, summary := range s.data.Summaries {
		if summary.VideoID == id {
			delete(s.data.Summaries, sid)
		}
	}
	for qid, question := range s.data.Questions {
		if question.VideoID == id {
			delete(s.data.Questions, qid)
		}
	}
	for cid, clar := range s.data.Clarifications {
		if clar.VideoID == id {
			delete(s.data.Clarifications, cid)
		}
	}
	for did, doubt := range s.data.Doubts {
		if doubt.VideoID == id {
			delete(s.data.Doubts, did)
		}
	}

	return s.saveLocked()
}

func (s *Store) CreateSummary(summary domain.Summary) (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if summary.ID == "" {
		summary.ID = uuid.NewString()
	}
	s.data.Summaries[summary.ID] = summary

	if err := s.saveLocked(); err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}

func (s *Store) ListSummariesByVideo(videoID string) []domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.Summary, 0)
	for _, summary := range s.data.Summaries {
		if summary.VideoID == videoID {
			summaries = append(summaries, summary)
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Level < summaries[j].Level
	})
	return summaries
}

func (s *Store) CreateQuestion(question domain.Question) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	s.data.Questions[question.ID] = question

	if err := s.saveLocked(); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (s *Store) ListQuestionsByVideo(videoID string) []domain.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]domain.Question, 0)
	for _, question := range s.data.Questions {
		if question.VideoID == videoID {
			questions = append(questions, question)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].TimestampSeconds < questions[j].TimestampSeconds
	})
	return questions
}

func (s *Store) UpdateQuestion(question domain.Question) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.data.Questions[question.ID]
	if !ok {
		return domain.Question{}, fmt.Errorf("question %s not found", question.ID)
	}

	question.VideoID = existing.VideoID
	s.data.Questions[question.ID] = question

	if err := s.saveLocked(); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (s *Store) DeleteQuestion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Questions[id]; !ok {
		return fmt.Errorf("question %s not found", id)
	}
	delete(s.data.Questions, id)

	return s.saveLocked()
}

func (s *Store) CreateClarification(clar domain.Clarification) (domain.Clarification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clar.ID == "" {
		clar.ID = uuid.NewString()
	}
	if clar.CreatedAt == 0 {
		clar.CreatedAt = time.Now().Unix()
	}
	if clar.Examples == nil {
		clar.Examples = []string{}
	}
	s.data.Clarifications[clar.ID] = clar

	if err := s.saveLocked(); err != nil {
		return domain.Clarification{}, err
	}
	return clar, nil
}

func (s *Store) ListClarificationsByVideo(videoID string) []domain.Clarification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clarifications := make([]domain.Clarification, 0)
	for _, clar := range s.data.Clarifications {
		if clar.VideoID == videoID {
			clarifications = append(clarifications, clar)
		}
	}
	sort.Slice(clarifications, func(i, j int) bool {
		return clarifications[i].CreatedAt < clarifications[j].CreatedAt
	})
	return clarifications
}

func (s *Store) CreateDoubt(doubt domain.Doubt) (domain.Doubt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doubt.ID == "" {
		doubt.ID = uuid.NewString()
	}
	if doubt.CreatedAt == 0 {
		doubt.CreatedAt = time.Now().Unix()
	}
	s.data.Doubts[doubt.ID] = doubt

	if err := s.saveLocked(); err != nil {
		return domain.Doubt{}, err
	}
	return doubt, nil
}

func (s *Store) ListDoubtsByVideo(videoID string) []domain.Doubt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doubts := make([]domain.Doubt, 0)
	for _, doubt := range s.data.Doubts {
		if doubt.VideoID == videoID {
			doubts = append(doubts, doubt)
		}
	}
	sort.Slice(doubts, func(i, j int) bool {
		return doubts[i].CreatedAt < doubts[j].CreatedAt
	})
	return doubts
}

func (s *Store) saveLocked() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "meta-*.json")
	if err != nil {
		return fmt.Errorf("create temp meta: %w", err)
	}

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode meta: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp meta: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace meta file: %w", err)
	}

	return nil
}

func (s *Store) ensureMaps() {
	if s.data.Videos == nil {
		s.data.Videos = map[string]domain.Video{}
	}
	if s.data.Summaries == nil {
		s.data.Summaries = map[string]domain.Summary{}
	}
	if s.data.Questions == nil {
		s.data.Questions = map[string]domain.Question{}
	}
	if s.data.Clarifications == nil {
		s.data.Clarifications = map[string]domain.Clarification{}
	}
	if s.data.Doubts == nil {
		s.data.Doubts = map[string]domain.Doubt{}
	}
}
