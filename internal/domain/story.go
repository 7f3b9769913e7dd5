package domain

import (
	"errors"
	"fmt"
	"time"
)

// Story-specific validation errors.
var (
	// ErrStoryTextEmpty is returned when a story has no generated text.
	ErrStoryTextEmpty = errors.New("story text cannot be empty")

	// ErrStoryProfileIDInvalid is returned when a story references an invalid profile ID.
	ErrStoryProfileIDInvalid = errors.New("story profile ID must be positive")

	// ErrPageTextEmpty is returned when a story page has no text.
	ErrPageTextEmpty = errors.New("page text cannot be empty")

	// ErrPageNumberInvalid is returned when a page number is not 1-based.
	ErrPageNumberInvalid = errors.New("page number must be positive")
)

// Supported story languages. LanguageEnglish is the default; LanguageTurkish
// is the app's native locale.
const (
	LanguageEnglish = "en"
	LanguageTurkish = "tr"
)

// Story represents a generated bedtime story. The full text is immutable once
// the story is created; per-page assets are attached through StoryPage records.
type Story struct {
	ID                 int       `json:"id"`
	FullText           string    `json:"fullText"`
	UserProfileID      int       `json:"userProfileId"`
	Character          string    `json:"character"`
	Environment        string    `json:"environment"`
	Theme              string    `json:"theme"`
	RequestedWordCount int       `json:"requestedWordCount"`
	CreationDate       time.Time `json:"creationDate"`
}

// InsertStory holds the fields for persisting a newly generated story.
type InsertStory struct {
	FullText           string
	UserProfileID      int
	Character          string
	Environment        string
	Theme              string
	RequestedWordCount int
}

// NewStory creates a Story from insert data, stamping the creation time.
// Returns an error if validation fails.
func NewStory(insert InsertStory) (*Story, error) {
	story := &Story{
		FullText:           insert.FullText,
		UserProfileID:      insert.UserProfileID,
		Character:          insert.Character,
		Environment:        insert.Environment,
		Theme:              insert.Theme,
		RequestedWordCount: insert.RequestedWordCount,
		CreationDate:       time.Now().UTC(),
	}

	if err := story.Validate(); err != nil {
		return nil, err
	}

	return story, nil
}

// Validate checks if the Story has valid data.
func (s *Story) Validate() error {
	if s.FullText == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrStoryTextEmpty)
	}

	if s.UserProfileID <= 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrStoryProfileIDInvalid)
	}

	return nil
}

// StoryPage is one reader-sized page of a story. Pages are created as
// placeholders with nil image and audio URLs immediately after pagination;
// each URL is then set exactly once as the corresponding asset completes.
type StoryPage struct {
	ID         int     `json:"id"`
	Text       string  `json:"text"`
	ImageURL   *string `json:"imageUrl"`
	AudioURL   *string `json:"audioUrl"`
	PageNumber int     `json:"pageNumber"`
	StoryID    int     `json:"storyId"`
}

// InsertStoryPage holds the fields for persisting a placeholder page.
type InsertStoryPage struct {
	Text       string
	ImageURL   *string
	AudioURL   *string
	PageNumber int
	StoryID    int
}

// NewStoryPage creates a StoryPage from insert data.
// Returns an error if validation fails.
func NewStoryPage(insert InsertStoryPage) (*StoryPage, error) {
	page := &StoryPage{
		Text:       insert.Text,
		ImageURL:   insert.ImageURL,
		AudioURL:   insert.AudioURL,
		PageNumber: insert.PageNumber,
		StoryID:    insert.StoryID,
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}

	return page, nil
}

// Validate checks if the StoryPage has valid data.
func (p *StoryPage) Validate() error {
	if p.Text == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrPageTextEmpty)
	}

	if p.PageNumber <= 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrPageNumberInvalid)
	}

	if p.StoryID <= 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidID)
	}

	return nil
}

// CompleteStory is the read-only composed view of a story: the story record,
// its pages in ascending page order, and the owning profile. Callers querying
// mid-generation may see pages whose image or audio URL is still nil.
type CompleteStory struct {
	Story
	Pages       []StoryPage `json:"pages"`
	UserProfile Profile     `json:"userProfile"`
}

// StoryGenerationRequest is the caller's request to generate a story.
// Immutable once submitted.
type StoryGenerationRequest struct {
	UserProfileID int    `json:"userProfileId" validate:"required,gt=0"`
	Character     string `json:"character"     validate:"required,min=1"`
	Environment   string `json:"environment"   validate:"required,min=1"`
	Theme         string `json:"theme"         validate:"required,min=1"`
	WordCount     int    `json:"wordCount"     validate:"required,gte=100,lte=500"`
	TTSVoice      string `json:"ttsVoice"      validate:"required,min=1"`
	Language      string `json:"language"      validate:"omitempty,oneof=en tr"`
}
