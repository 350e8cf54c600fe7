package intake

import (
	"errors"
	"testing"

	"datemate/questionnaire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm_Defaults(t *testing.T) {
	f := NewForm()
	d := f.Snapshot()

	assert.Equal(t, questionnaire.IntentLongTerm, d.DatingIntent)
	assert.Equal(t, questionnaire.LanguageWordsOfAffirmation, d.LoveLanguage)
	assert.Empty(t, d.Gesture)
	assert.False(t, f.IsSubmittable())
}

func TestDraft_IsSubmittable(t *testing.T) {
	tests := []struct {
		name     string
		draft    Draft
		expected bool
	}{
		{"all filled", Draft{Gesture: "Bring coffee", Passion: "Astronomy", ThreeWords: "curious, warm, driven"}, true},
		{"surrounding whitespace is fine", Draft{Gesture: "  a ", Passion: "\tb", ThreeWords: "c\n"}, true},
		{"single word three_words", Draft{Gesture: "a", Passion: "b", ThreeWords: "c"}, true},
		{"blank gesture", Draft{Gesture: "", Passion: "b", ThreeWords: "c"}, false},
		{"whitespace passion", Draft{Gesture: "a", Passion: "   ", ThreeWords: "c"}, false},
		{"whitespace three_words", Draft{Gesture: "a", Passion: "b", ThreeWords: "\n\t"}, false},
		{"all blank", Draft{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.draft.IsSubmittable())
		})
	}
}

func TestDraft_IsSubmittable_IndependentOfEnums(t *testing.T) {
	for _, d := range questionnaire.DatingIntents() {
		for _, l := range questionnaire.LoveLanguages() {
			draft := Draft{DatingIntent: d, LoveLanguage: l, Gesture: "g", Passion: "p", ThreeWords: "w"}
			assert.True(t, draft.IsSubmittable())
		}
	}
}

func TestDraft_Payload(t *testing.T) {
	d := Draft{
		DatingIntent: questionnaire.IntentSeeWhereItGoes,
		Gesture:      "  Bring coffee ",
		Passion:      "Astronomy\n",
		ThreeWords:   " curious, warm, driven",
		LoveLanguage: questionnaire.LanguageQualityTime,
	}

	p := d.Payload()

	assert.Equal(t, "Going on dates and seeing where it goes", p.DatingIntent)
	assert.Equal(t, "Bring coffee", p.Gesture)
	assert.Equal(t, "Astronomy", p.Passion)
	assert.Equal(t, "curious, warm, driven", p.ThreeWords)
	assert.Equal(t, "Quality time", p.LoveLanguage)
}

func TestForm_SetField(t *testing.T) {
	f := NewForm()

	require.NoError(t, f.SetField(questionnaire.FieldGesture, "Bring coffee"))
	require.NoError(t, f.SetField(questionnaire.FieldPassion, "Astronomy"))
	assert.False(t, f.IsSubmittable())

	require.NoError(t, f.SetField(questionnaire.FieldThreeWords, "curious, warm, driven"))
	assert.True(t, f.IsSubmittable())

	require.NoError(t, f.SetField(questionnaire.FieldPassion, " "))
	assert.False(t, f.IsSubmittable(), "completeness follows every edit")

	require.NoError(t, f.SetField(questionnaire.FieldLoveLanguage, "Acts of service"))
	assert.Equal(t, questionnaire.LanguageActsOfService, f.Snapshot().LoveLanguage)

	require.NoError(t, f.SetField(questionnaire.FieldDatingIntent, "Figuring it out, open to surprises"))
	assert.Equal(t, questionnaire.IntentFiguringItOut, f.Snapshot().DatingIntent)
}

func TestForm_SetField_Rejections(t *testing.T) {
	f := NewForm()
	f.SetLoveLanguage(questionnaire.LanguageGifts)

	err := f.SetField(questionnaire.FieldLoveLanguage, "Snacks")
	assert.True(t, errors.Is(err, questionnaire.ErrUnknownLabel))
	assert.Equal(t, questionnaire.LanguageGifts, f.Snapshot().LoveLanguage, "rejected label leaves the answer unchanged")

	assert.Error(t, f.SetField(questionnaire.Field("age"), "31"))
}

func TestForm_SnapshotIsACopy(t *testing.T) {
	f := NewForm()
	f.SetGesture("first")
	snap := f.Snapshot()

	f.SetGesture("second")

	assert.Equal(t, "first", snap.Gesture)
	assert.Equal(t, "second", f.Snapshot().Gesture)
}

func TestForm_FrozenIgnoresWrites(t *testing.T) {
	f := completeForm()
	f.Freeze()

	f.SetGesture("")
	f.SetPassion("")
	f.SetDatingIntent(questionnaire.IntentCasual)
	require.NoError(t, f.SetField(questionnaire.FieldThreeWords, ""))

	d := f.Snapshot()
	assert.True(t, f.IsFrozen())
	assert.Equal(t, "Bring coffee", d.Gesture)
	assert.Equal(t, "Astronomy", d.Passion)
	assert.Equal(t, "curious, warm, driven", d.ThreeWords)
	assert.NotEqual(t, questionnaire.IntentCasual, d.DatingIntent)
	assert.True(t, f.IsSubmittable())
}
