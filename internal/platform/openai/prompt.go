package openai

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dreamtale/dreamtale-api/internal/generation"
)

// illustrationPromptTemplate describes one page's scene to DALL-E. The "no
// text" instruction is repeated because the model otherwise tends to letter
// the image like a real book page.
const illustrationPromptTemplate = `Create a charming, high-quality children's book illustration for a bedtime story with NO TEXT OR WORDS visible in the image.

The scene depicts: "{{.PageText}}"

The main character is a {{.Age}}-year-old {{.GenderLower}} named {{.Name}} with {{.HairColorLower}} {{.HairTypeLower}} hair and {{.SkinToneLower}} skin tone. The character is portrayed as a {{.Character}} in a {{.Environment}} setting.

The illustration should:
- Have a warm, soothing color palette suitable for bedtime
- Be in a gentle, child-friendly cartoon style
- Convey the theme of "{{.Theme}}"
- Be highly detailed but not overwhelming
- Include soft lighting and a dreamy quality
- Be appropriate for young children
- IMPORTANT: Contain NO text, words, or lettering of any kind

Use a style that's appropriate for children's books with soft edges and friendly characters. This is page {{.PageNumber}} of a bedtime story, so the image should match the mood of the text.`

// illustrationPromptData is the data passed to the illustration template.
type illustrationPromptData struct {
	Name           string
	Age            int
	GenderLower    string
	HairColorLower string
	HairTypeLower  string
	SkinToneLower  string
	PageText       string
	Character      string
	Environment    string
	Theme          string
	PageNumber     int
}

func parsePromptTemplate() (*template.Template, error) {
	tmpl, err := template.New("illustration").Parse(illustrationPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse illustration prompt template: %w", err)
	}
	return tmpl, nil
}

// buildPrompt renders the illustration prompt for one page.
func (g *IllustrationGenerator) buildPrompt(req generation.ImageRequest) (string, error) {
	data := illustrationPromptData{
		Name:           req.Profile.Name,
		Age:            req.Profile.Age,
		GenderLower:    strings.ToLower(req.Profile.Gender),
		HairColorLower: strings.ToLower(req.Profile.HairColor),
		HairTypeLower:  strings.ToLower(req.Profile.HairType),
		SkinToneLower:  strings.ToLower(req.Profile.SkinTone),
		PageText:       req.PageText,
		Character:      req.Character,
		Environment:    req.Environment,
		Theme:          req.Theme,
		PageNumber:     req.PageNumber,
	}

	var promptBuffer bytes.Buffer
	if err := g.promptTemplate.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute illustration prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}
