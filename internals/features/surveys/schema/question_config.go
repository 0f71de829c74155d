// file: internals/features/surveys/schema/question_config.go
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"gorm.io/datatypes"

	model "surveyku_backend/internals/features/surveys/model"
)

/* =========================================================
   Konfigurasi per tipe pertanyaan.
   Blob jsonb survey_question_config di-decode SEKALI di sini;
   validator dan analytics hanya membaca hasil ketikannya.
========================================================= */

type TextValidation string

const (
	ValidationNone    TextValidation = "none"
	ValidationNumber  TextValidation = "number"
	ValidationInteger TextValidation = "integer"
	ValidationEmail   TextValidation = "email"
	ValidationPhone   TextValidation = "phone"
	ValidationIDCard  TextValidation = "idcard"
	ValidationURL     TextValidation = "url"
	ValidationRegex   TextValidation = "regex"
)

// ChoiceConfig untuk SINGLE_CHOICE / MULTIPLE_CHOICE.
type ChoiceConfig struct {
	Options        []string
	HasOtherOption bool
	MinChoices     int // hanya multiple choice
	MaxChoices     int // hanya multiple choice; 0 = tanpa batas
}

// OptionCount = jumlah opsi valid, termasuk satu slot sintetis "Lainnya"
// bila hasOtherOption aktif.
func (c *ChoiceConfig) OptionCount() int {
	n := len(c.Options)
	if c.HasOtherOption {
		n++
	}
	return n
}

// EffectiveMaxChoices mengembalikan batas atas riil (MaxInt bila 0).
func (c *ChoiceConfig) EffectiveMaxChoices() int {
	if c.MaxChoices <= 0 {
		return math.MaxInt
	}
	return c.MaxChoices
}

// OptionLabel untuk tampilan jawaban (detail/analytics/export).
func (c *ChoiceConfig) OptionLabel(index int) string {
	if index >= 0 && index < len(c.Options) {
		return c.Options[index]
	}
	if c.HasOtherOption && index == len(c.Options) {
		return "Lainnya"
	}
	return fmt.Sprintf("Opsi %d", index)
}

// TextConfig untuk SHORT_TEXT / LONG_TEXT.
type TextConfig struct {
	MaxLength    int // 0 = tanpa batas
	Validation   TextValidation
	RegexPattern string
}

var textValidationPatterns = map[TextValidation]*regexp.Regexp{
	ValidationNumber:  regexp.MustCompile(`^-?\d+(\.\d+)?$`),
	ValidationInteger: regexp.MustCompile(`^-?\d+$`),
	ValidationEmail:   regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w{2,}$`),
	ValidationPhone:   regexp.MustCompile(`^08\d{8,11}$`),
	ValidationIDCard:  regexp.MustCompile(`^\d{16}$`),
	ValidationURL:     regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#][^\s]*$`),
}

// Matches mengecek value terhadap validationType. Regex kustom yang tidak
// valid diperlakukan sebagai tanpa constraint, bukan hard failure.
func (c *TextConfig) Matches(value string) bool {
	switch c.Validation {
	case "", ValidationNone:
		return true
	case ValidationRegex:
		if strings.TrimSpace(c.RegexPattern) == "" {
			return true
		}
		re, err := regexp.Compile(c.RegexPattern)
		if err != nil {
			return true
		}
		return re.MatchString(value)
	default:
		re, ok := textValidationPatterns[c.Validation]
		if !ok {
			return true
		}
		return re.MatchString(value)
	}
}

// ValidationMessage: pesan untuk user saat Matches gagal.
func (c *TextConfig) ValidationMessage() string {
	switch c.Validation {
	case ValidationNumber:
		return "Harus berupa angka"
	case ValidationInteger:
		return "Harus berupa bilangan bulat"
	case ValidationEmail:
		return "Alamat email tidak valid"
	case ValidationPhone:
		return "Nomor HP tidak valid"
	case ValidationIDCard:
		return "NIK tidak valid (16 digit)"
	case ValidationURL:
		return "URL tidak valid"
	default:
		return "Format tidak sesuai"
	}
}

// ScaleConfig untuk SCALE. Default 1..5.
type ScaleConfig struct {
	Min int
	Max int
}

// QuestionConfig: tagged union, hanya satu field yang terisi sesuai tipe.
type QuestionConfig struct {
	Choice *ChoiceConfig
	Text   *TextConfig
	Scale  *ScaleConfig
}

/* =========================================================
   Decoder
========================================================= */

// bentuk mentah blob authoring; opsi bisa berupa string polos
// atau objek {"label": "..."}.
type rawQuestionConfig struct {
	Options        []json.RawMessage `json:"options"`
	HasOtherOption bool              `json:"hasOtherOption"`
	MinChoices     *int              `json:"minChoices"`
	MaxChoices     *int              `json:"maxChoices"`
	MaxLength      *int              `json:"maxLength"`
	ValidationType *string           `json:"validationType"`
	RegexPattern   *string           `json:"regexPattern"`
	ScaleMin       *int              `json:"scaleMin"`
	ScaleMax       *int              `json:"scaleMax"`
}

type rawOptionObject struct {
	Label string `json:"label"`
}

func decodeOptionLabels(raws []json.RawMessage) []string {
	labels := make([]string, 0, len(raws))
	for _, r := range raws {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			labels = append(labels, s)
			continue
		}
		var obj rawOptionObject
		if err := json.Unmarshal(r, &obj); err == nil {
			labels = append(labels, obj.Label)
			continue
		}
		labels = append(labels, "")
	}
	return labels
}

// ParseQuestionConfig men-decode blob config untuk satu tipe pertanyaan.
// Blob kosong atau rusak menghasilkan config default tipe tsb (perilaku
// longgar, konsisten dengan authoring yang tidak pernah menolak blob).
func ParseQuestionConfig(qType model.QuestionType, blob datatypes.JSON) QuestionConfig {
	var raw rawQuestionConfig
	if len(blob) > 0 {
		// abaikan error: blob rusak = config kosong
		_ = json.Unmarshal(blob, &raw)
	}

	switch qType {
	case model.QuestionTypeSingleChoice, model.QuestionTypeMultipleChoice:
		cc := &ChoiceConfig{
			Options:        decodeOptionLabels(raw.Options),
			HasOtherOption: raw.HasOtherOption,
		}
		if qType == model.QuestionTypeMultipleChoice {
			if raw.MinChoices != nil && *raw.MinChoices > 0 {
				cc.MinChoices = *raw.MinChoices
			}
			if raw.MaxChoices != nil && *raw.MaxChoices > 0 {
				cc.MaxChoices = *raw.MaxChoices
			}
		}
		return QuestionConfig{Choice: cc}

	case model.QuestionTypeShortText, model.QuestionTypeLongText:
		tc := &TextConfig{Validation: ValidationNone}
		if raw.MaxLength != nil && *raw.MaxLength > 0 {
			tc.MaxLength = *raw.MaxLength
		}
		if raw.ValidationType != nil {
			tc.Validation = TextValidation(strings.ToLower(strings.TrimSpace(*raw.ValidationType)))
		}
		if raw.RegexPattern != nil {
			tc.RegexPattern = *raw.RegexPattern
		}
		return QuestionConfig{Text: tc}

	case model.QuestionTypeScale:
		sc := &ScaleConfig{Min: 1, Max: 5}
		if raw.ScaleMin != nil {
			sc.Min = *raw.ScaleMin
		}
		if raw.ScaleMax != nil {
			sc.Max = *raw.ScaleMax
		}
		return QuestionConfig{Scale: sc}
	}

	return QuestionConfig{}
}
