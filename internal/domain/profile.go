package domain

import (
	"errors"
	"fmt"
	"time"
)

// Profile-specific validation errors.
var (
	// ErrProfileNameEmpty is returned when a profile name is empty.
	ErrProfileNameEmpty = errors.New("profile name cannot be empty")

	// ErrProfileAgeOutOfRange is returned when a profile age is outside the
	// supported 3-12 range.
	ErrProfileAgeOutOfRange = errors.New("profile age must be between 3 and 12")

	// ErrProfileAppearanceEmpty is returned when one of the appearance
	// attributes used to personalize generated content is empty.
	ErrProfileAppearanceEmpty = errors.New("profile appearance attributes cannot be empty")
)

// Age bounds for child profiles.
const (
	MinProfileAge = 3
	MaxProfileAge = 12
)

// Profile represents a child's appearance and identity record used to
// personalize generated stories and illustrations.
type Profile struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	HairColor    string    `json:"hairColor"`
	HairType     string    `json:"hairType"`
	SkinTone     string    `json:"skinTone"`
	CreationDate time.Time `json:"creationDate"`
	Thumbnail    *string   `json:"thumbnail"`
}

// InsertProfile holds the caller-supplied fields for creating a new profile.
// The store assigns the ID and creation timestamp.
type InsertProfile struct {
	Name      string  `json:"name"      validate:"required,min=1"`
	Gender    string  `json:"gender"    validate:"required,min=1"`
	Age       int     `json:"age"       validate:"required,gte=3,lte=12"`
	HairColor string  `json:"hairColor" validate:"required,min=1"`
	HairType  string  `json:"hairType"  validate:"required,min=1"`
	SkinTone  string  `json:"skinTone"  validate:"required,min=1"`
	Thumbnail *string `json:"thumbnail"`
}

// NewProfile creates a Profile from insert data, stamping the creation time.
// The zero ID is filled in by the store. Returns an error if validation fails.
func NewProfile(insert InsertProfile) (*Profile, error) {
	profile := &Profile{
		Name:         insert.Name,
		Gender:       insert.Gender,
		Age:          insert.Age,
		HairColor:    insert.HairColor,
		HairType:     insert.HairType,
		SkinTone:     insert.SkinTone,
		CreationDate: time.Now().UTC(),
		Thumbnail:    insert.Thumbnail,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
// Returns an error if any field fails validation.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrProfileNameEmpty)
	}

	if p.Age < MinProfileAge || p.Age > MaxProfileAge {
		return fmt.Errorf("%w: %w", ErrValidation, ErrProfileAgeOutOfRange)
	}

	if p.Gender == "" || p.HairColor == "" || p.HairType == "" || p.SkinTone == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrProfileAppearanceEmpty)
	}

	return nil
}
