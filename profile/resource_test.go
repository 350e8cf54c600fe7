package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	profileMsg "datemate/kafka/message/profile"
	"datemate/match"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServerInfo struct{}

func (t testServerInfo) GetVersion() string { return "1.0.0" }
func (t testServerInfo) GetURI() string     { return "/api/" }
func (t testServerInfo) GetPrefix() string  { return "/api/" }
func (t testServerInfo) GetBaseURL() string { return "http://localhost:8080" }

type resourceFixture struct {
	db     *gorm.DB
	index  *match.Index
	rp     *recordingProducer
	server *httptest.Server
}

func setupResource(t *testing.T) *resourceFixture {
	f := &resourceFixture{
		db:    setupTestDB(t),
		index: setupTestIndex(t),
		rp:    newRecordingProducer(),
	}

	router := mux.NewRouter()
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	InitializeRoutes(f.db, f.index, f.rp.Factory())(testServerInfo{})(router, l)

	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)
	return f
}

func (f *resourceFixture) post(t *testing.T, body string) *http.Response {
	resp, err := http.Post(f.server.URL+"/profiles", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (f *resourceFixture) get(t *testing.T, path string) *http.Response {
	resp, err := http.Get(f.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (f *resourceFixture) create(t *testing.T, gesture, passion, threeWords string) uint32 {
	b, err := json.Marshal(payload(gesture, passion, threeWords))
	require.NoError(t, err)
	resp := f.post(t, string(b))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created CreatedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created.ProfileId
}

func decodeError(t *testing.T, resp *http.Response) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	e, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error envelope")
	return e
}

func decodeData(t *testing.T, resp *http.Response) []map[string]interface{} {
	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Data
}

func TestCreateProfileEndpoint(t *testing.T) {
	f := setupResource(t)

	resp := f.post(t, `{
		"dating_intent": "Short-term or more casual right now",
		"gesture": "  Coffee  ",
		"passion": "Climbing",
		"three_words": "calm, curious, kind",
		"love_language": "Quality time"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body, 1)
	assert.Equal(t, float64(1), body["profile_id"])

	var e Entity
	require.NoError(t, f.db.First(&e, "profile_id = ?", 1).Error)
	assert.Equal(t, "Coffee", e.Gesture)
	assert.Equal(t, "Short-term or more casual right now", e.DatingIntent)

	assert.Len(t, f.rp.Messages(profileMsg.EnvEventTopicStatus), 1)
	assert.Equal(t, 1, f.index.Count())
}

func TestCreateProfileEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "malformed JSON", body: `{"gesture":`, status: http.StatusBadRequest},
		{name: "wrong type", body: `{"gesture": 5}`, status: http.StatusBadRequest},
		{name: "missing fields", body: `{"dating_intent": "Something meaningful, open to long-term"}`, status: http.StatusUnprocessableEntity},
		{name: "blank text", body: `{"dating_intent":"Something meaningful, open to long-term","gesture":" ","passion":"x","three_words":"y","love_language":"Quality time"}`, status: http.StatusUnprocessableEntity},
		{name: "unknown label", body: `{"dating_intent":"Forever","gesture":"g","passion":"x","three_words":"y","love_language":"Quality time"}`, status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupResource(t)
			resp := f.post(t, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			e := decodeError(t, resp)
			assert.Equal(t, float64(tt.status), e["status"])
			assert.Equal(t, http.StatusText(tt.status), e["title"])
			assert.NotEmpty(t, e["detail"])

			var count int64
			require.NoError(t, f.db.Model(&Entity{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestGetProfilesEndpoint(t *testing.T) {
	f := setupResource(t)

	resp := f.get(t, "/profiles")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeData(t, resp))

	f.create(t, "Coffee", "Climbing", "calm")
	f.create(t, "Tea", "Baking", "warm")

	data := decodeData(t, f.get(t, "/profiles"))
	require.Len(t, data, 2)
	assert.Equal(t, "profiles", data[0]["type"])
	assert.Equal(t, "1", data[0]["id"])
	assert.Equal(t, "2", data[1]["id"])

	attributes, ok := data[0]["attributes"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Coffee", attributes["gesture"])
	assert.Equal(t, "Quality time", attributes["loveLanguage"])
	assert.NotEmpty(t, attributes["createdAt"])
}

func TestGetMatchesEndpoint(t *testing.T) {
	f := setupResource(t)

	target := f.create(t, "Morning coffee on the balcony", "Rock climbing in the mountains", "adventurous, warm, honest")
	near := f.create(t, "Morning coffee on the balcony", "Rock climbing on weekends", "adventurous, warm, funny")
	far := f.create(t, "Handwritten letters", "Baking sourdough", "quiet, patient, bookish")

	data := decodeData(t, f.get(t, fmt.Sprintf("/matches/%d", target)))
	require.Len(t, data, 2)
	assert.Equal(t, "matches", data[0]["type"])
	assert.Equal(t, fmt.Sprint(near), data[0]["id"])
	assert.Equal(t, fmt.Sprint(far), data[1]["id"])
	for _, d := range data {
		assert.NotEqual(t, fmt.Sprint(target), d["id"])
		attributes, ok := d["attributes"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, attributes, "similarity")
	}

	data = decodeData(t, f.get(t, fmt.Sprintf("/matches/%d?top_k=1", target)))
	require.Len(t, data, 1)
	assert.Equal(t, fmt.Sprint(near), data[0]["id"])

	data = decodeData(t, f.get(t, fmt.Sprintf("/matches/%d?top_k=0", target)))
	assert.Empty(t, data)
}

func TestGetMatchesEndpoint_Errors(t *testing.T) {
	f := setupResource(t)

	resp := f.get(t, "/matches/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeData(t, resp))

	f.create(t, "a", "b", "c")
	f.create(t, "d", "e", "f")

	resp = f.get(t, "/matches/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "profile_id not found", decodeError(t, resp)["detail"])

	resp = f.get(t, "/matches/1?top_k=many")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.get(t, "/matches/abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
