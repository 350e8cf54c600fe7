package questionnaire

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var d DatingIntent
	var l LoveLanguage

	assert.Equal(t, "Something meaningful, open to long-term", d.String())
	assert.Equal(t, "Words of affirmation", l.String())
}

func TestParseDatingIntent(t *testing.T) {
	for _, label := range DatingIntentLabels() {
		d, err := ParseDatingIntent(label)
		require.NoError(t, err)
		assert.Equal(t, label, d.String())
	}

	_, err := ParseDatingIntent("Looking for a pen pal")
	assert.True(t, errors.Is(err, ErrUnknownLabel))
}

func TestParseLoveLanguage(t *testing.T) {
	for _, label := range LoveLanguageLabels() {
		l, err := ParseLoveLanguage(label)
		require.NoError(t, err)
		assert.Equal(t, label, l.String())
	}

	_, err := ParseLoveLanguage("quality time")
	assert.True(t, errors.Is(err, ErrUnknownLabel), "labels are matched verbatim")
}

func TestClosedSetSizes(t *testing.T) {
	assert.Len(t, DatingIntents(), 4)
	assert.Len(t, LoveLanguages(), 5)
	assert.False(t, DatingIntent(4).Valid())
	assert.False(t, LoveLanguage(5).Valid())
	assert.Equal(t, "unknown", LoveLanguage(9).String())
}

func TestPayloadKeys(t *testing.T) {
	b, err := json.Marshal(Payload{})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))

	assert.Len(t, m, 5)
	for _, f := range Fields() {
		assert.Contains(t, m, string(f))
	}
}

func TestPayloadSummary(t *testing.T) {
	p := Payload{
		DatingIntent: IntentCasual.String(),
		Gesture:      "Coffee",
		Passion:      "Climbing",
		ThreeWords:   "calm, curious, kind",
		LoveLanguage: LanguageQualityTime.String(),
	}

	expected := "Dating intent: Short-term or more casual right now. Love language: Quality time. " +
		"Gesture: Coffee. Passion: Climbing. Three words: calm, curious, kind."
	assert.Equal(t, expected, p.Summary())
}
