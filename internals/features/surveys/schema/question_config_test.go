package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	model "surveyku_backend/internals/features/surveys/model"
)

func TestParseChoiceConfig(t *testing.T) {
	blob := datatypes.JSON(`{
		"options": ["Merah", {"label": "Hijau"}, "Biru"],
		"hasOtherOption": true,
		"minChoices": 1,
		"maxChoices": 2
	}`)

	cfg := ParseQuestionConfig(model.QuestionTypeMultipleChoice, blob)
	assert.NotNil(t, cfg.Choice)
	assert.Equal(t, []string{"Merah", "Hijau", "Biru"}, cfg.Choice.Options)
	assert.True(t, cfg.Choice.HasOtherOption)
	assert.Equal(t, 1, cfg.Choice.MinChoices)
	assert.Equal(t, 2, cfg.Choice.MaxChoices)

	// slot "Lainnya" ikut dihitung sebagai opsi valid
	assert.Equal(t, 4, cfg.Choice.OptionCount())
	assert.Equal(t, "Lainnya", cfg.Choice.OptionLabel(3))
	assert.Equal(t, "Merah", cfg.Choice.OptionLabel(0))
}

func TestParseChoiceConfigSingleIgnoresChoiceBounds(t *testing.T) {
	blob := datatypes.JSON(`{"options": ["A", "B"], "minChoices": 2, "maxChoices": 5}`)
	cfg := ParseQuestionConfig(model.QuestionTypeSingleChoice, blob)
	assert.Equal(t, 0, cfg.Choice.MinChoices)
	assert.Equal(t, 0, cfg.Choice.MaxChoices)
	assert.Equal(t, 2, cfg.Choice.OptionCount())
}

func TestEffectiveMaxChoicesUnbounded(t *testing.T) {
	cfg := ParseQuestionConfig(model.QuestionTypeMultipleChoice, datatypes.JSON(`{"options": ["A"]}`))
	assert.Equal(t, math.MaxInt, cfg.Choice.EffectiveMaxChoices())
}

func TestParseTextConfigValidations(t *testing.T) {
	blob := datatypes.JSON(`{"maxLength": 30, "validationType": "phone"}`)
	cfg := ParseQuestionConfig(model.QuestionTypeShortText, blob)
	assert.Equal(t, 30, cfg.Text.MaxLength)

	assert.True(t, cfg.Text.Matches("081234567890"))
	assert.False(t, cfg.Text.Matches("62812345678"))
	assert.False(t, cfg.Text.Matches("0812"))
}

func TestTextValidationTable(t *testing.T) {
	cases := []struct {
		validation string
		value      string
		ok         bool
	}{
		{"number", "-12.5", true},
		{"number", "12a", false},
		{"integer", "42", true},
		{"integer", "4.2", false},
		{"email", "budi@sekolah.sch.id", true},
		{"email", "budi@", false},
		{"idcard", "3175031234560001", true},
		{"idcard", "12345", false},
		{"url", "https://example.com/x", true},
		{"url", "bukan url", false},
		{"none", "apa saja", true},
	}
	for _, tc := range cases {
		blob := datatypes.JSON(`{"validationType": "` + tc.validation + `"}`)
		cfg := ParseQuestionConfig(model.QuestionTypeLongText, blob)
		assert.Equalf(t, tc.ok, cfg.Text.Matches(tc.value), "%s(%q)", tc.validation, tc.value)
	}
}

func TestCustomRegexInvalidPatternIsLenient(t *testing.T) {
	blob := datatypes.JSON(`{"validationType": "regex", "regexPattern": "([unclosed"}`)
	cfg := ParseQuestionConfig(model.QuestionTypeShortText, blob)
	assert.True(t, cfg.Text.Matches("apapun lolos"))
}

func TestParseScaleConfigDefaults(t *testing.T) {
	cfg := ParseQuestionConfig(model.QuestionTypeScale, nil)
	assert.Equal(t, 1, cfg.Scale.Min)
	assert.Equal(t, 5, cfg.Scale.Max)

	cfg = ParseQuestionConfig(model.QuestionTypeScale, datatypes.JSON(`{"scaleMin": 0, "scaleMax": 10}`))
	assert.Equal(t, 0, cfg.Scale.Min)
	assert.Equal(t, 10, cfg.Scale.Max)
}

func TestCorruptBlobFallsBackToDefaults(t *testing.T) {
	blob := datatypes.JSON(`{bukan json`)
	cfg := ParseQuestionConfig(model.QuestionTypeMultipleChoice, blob)
	assert.NotNil(t, cfg.Choice)
	assert.Empty(t, cfg.Choice.Options)

	cfg = ParseQuestionConfig(model.QuestionTypeScale, blob)
	assert.Equal(t, 1, cfg.Scale.Min)
	assert.Equal(t, 5, cfg.Scale.Max)
}
