package match

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	chromem "github.com/philippgille/chromem-go"
)

const DefaultDimensions = 512

const emptyToken = "<empty>"

// NewHashingEmbedder returns a deterministic embedding function. Lower-cased word unigrams and
// bigrams are hashed into a fixed number of signed buckets and the result is L2-normalised.
func NewHashingEmbedder(dimensions int) chromem.EmbeddingFunc {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return func(_ context.Context, text string) ([]float32, error) {
		return embed(dimensions, text), nil
	}
}

func embed(dimensions int, text string) []float32 {
	words := tokenize(text)
	features := make([]string, 0, 2*len(words))
	features = append(features, words...)
	for i := 1; i < len(words); i++ {
		features = append(features, words[i-1]+" "+words[i])
	}
	if len(features) == 0 {
		features = append(features, emptyToken)
	}

	acc := make([]float64, dimensions)
	for _, f := range features {
		h := fnv.New64a()
		_, _ = h.Write([]byte(f))
		sum := h.Sum64()
		bucket := int(sum % uint64(dimensions))
		if sum>>63 == 1 {
			acc[bucket] -= 1
		} else {
			acc[bucket] += 1
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, dimensions)
	if norm == 0 {
		// every feature cancelled out
		out[0] = 1
		return out
	}
	for i, v := range acc {
		out[i] = float32(v / norm)
	}
	return out
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
