package gemini

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/generation"
)

// englishPromptTemplate is the default story prompt.
const englishPromptTemplate = `Please write an engaging, age-appropriate bedtime story for a {{.Age}}-year-old {{.GenderLower}} named {{.Name}}. The story should be suitable for children before sleep.

STORY PARAMETERS:
- Main Character Type: {{.Character}}
- Setting/Environment: {{.Environment}}
- Theme/Lesson: {{.Theme}}
- Story Length: Approximately {{.AdjustedWordCount}} words
- Character Description: {{.Gender}}, {{.Age}} years old, {{.HairColor}} {{.HairTypeLower}} hair, {{.SkinTone}} skin tone

STORY REQUIREMENTS:
1. The main character in the story should resemble the child ({{.Name}}).
2. The story should be gentle, positive, and appropriate for bedtime.
3. The narrative should be engaging but wind down toward the end to help with sleep.
4. Use simple language appropriate for a {{.Age}}-year-old.
5. Include an age-appropriate moral or lesson related to the theme.
6. The story should be cohesive with clear beginning, middle, and end structure.
7. Avoid any scary, violent, or disturbing content.

Please provide ONLY the story text, without any additional explanations or notes. The narrative should flow naturally and be divided into logical paragraphs.`

// turkishPromptTemplate is used when the request language is "tr".
const turkishPromptTemplate = `Lütfen {{.Age}} yaşındaki bir {{.GenderLower}} çocuk olan {{.Name}} için uygun, ilgi çekici bir uyku masalı yaz. Hikaye, uyku öncesi çocuklar için uygun olmalıdır.

HİKAYE PARAMETRELERİ:
- Ana Karakter Türü: {{.Character}}
- Ortam/Çevre: {{.Environment}}
- Tema/Ders: {{.Theme}}
- Hikaye Uzunluğu: Yaklaşık {{.AdjustedWordCount}} kelime
- Karakter Tanımı: {{.Gender}}, {{.Age}} yaşında, {{.HairColor}} {{.HairTypeLower}} saçlı, {{.SkinTone}} ten tonlu

HİKAYE GEREKSİNİMLERİ:
1. Hikayedeki ana karakter çocuğa ({{.Name}}) benzemelidir.
2. Hikaye nazik, olumlu ve uyku saati için uygun olmalıdır.
3. Anlatım ilgi çekici olmalı ancak uykuya yardımcı olmak için sona doğru sakinleşmelidir.
4. {{.Age}} yaşındaki bir çocuk için uygun basit bir dil kullanın.
5. Temayla ilgili yaşa uygun bir ahlaki ders içermelidir.
6. Hikaye net bir başlangıç, orta ve bitiş yapısı ile tutarlı olmalıdır.
7. Korkutucu, şiddet içeren veya rahatsız edici içeriklerden kaçının.

Lütfen SADECE hikaye metnini sağlayın, ek açıklamalar veya notlar olmadan. Anlatım doğal akmalı ve mantıklı paragraflara bölünmelidir.`

// promptData is the data passed to the prompt templates.
type promptData struct {
	Name              string
	Age               int
	Gender            string
	GenderLower       string
	HairColor         string
	HairTypeLower     string
	SkinTone          string
	Character         string
	Environment       string
	Theme             string
	AdjustedWordCount int
}

// parsePromptTemplates parses both language templates. Called once at
// construction so template errors surface at startup, not per request.
func parsePromptTemplates() (english, turkish *template.Template, err error) {
	english, err = template.New("story_en").Parse(englishPromptTemplate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse english prompt template: %w", err)
	}

	turkish, err = template.New("story_tr").Parse(turkishPromptTemplate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse turkish prompt template: %w", err)
	}

	return english, turkish, nil
}

// buildPrompt renders the prompt for the given request. The language selects
// the template; anything other than "tr" falls back to English.
func (g *StoryGenerator) buildPrompt(req generation.TextRequest, adjustedWordCount int) (string, error) {
	data := promptData{
		Name:              req.Profile.Name,
		Age:               req.Profile.Age,
		Gender:            req.Profile.Gender,
		GenderLower:       strings.ToLower(req.Profile.Gender),
		HairColor:         req.Profile.HairColor,
		HairTypeLower:     strings.ToLower(req.Profile.HairType),
		SkinTone:          req.Profile.SkinTone,
		Character:         req.Character,
		Environment:       req.Environment,
		Theme:             req.Theme,
		AdjustedWordCount: adjustedWordCount,
	}

	tmpl := g.englishTemplate
	if req.Language == domain.LanguageTurkish {
		tmpl = g.turkishTemplate
	}

	var promptBuffer bytes.Buffer
	if err := tmpl.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}
