package match

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"github.com/sirupsen/logrus"
)

const collectionName = "profiles"

// Document is a profile's text as seen by the index
type Document struct {
	ProfileId uint32
	Text      string
}

// Match is a candidate profile ranked against a target
type Match struct {
	ProfileId  uint32
	Similarity float32
}

// Index ranks profiles by cosine similarity of their embedded text
type Index struct {
	l          logrus.FieldLogger
	mu         sync.RWMutex
	collection *chromem.Collection
	embed      chromem.EmbeddingFunc
}

func NewIndex(l logrus.FieldLogger) (*Index, error) {
	embedder := NewHashingEmbedder(DefaultDimensions)
	collection, err := chromem.NewDB().GetOrCreateCollection(collectionName, nil, embedder)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &Index{l: l, collection: collection, embed: embedder}, nil
}

func documentId(profileId uint32) string {
	return strconv.FormatUint(uint64(profileId), 10)
}

func (i *Index) toDocument(ctx context.Context, d Document) (chromem.Document, error) {
	embedding, err := i.embed(ctx, d.Text)
	if err != nil {
		return chromem.Document{}, err
	}
	return chromem.Document{
		ID:        documentId(d.ProfileId),
		Metadata:  map[string]string{"profile_id": documentId(d.ProfileId)},
		Embedding: embedding,
		Content:   d.Text,
	}, nil
}

// Upsert adds or replaces the document for a profile
func (i *Index) Upsert(ctx context.Context, d Document) error {
	if d.ProfileId == 0 {
		return fmt.Errorf("profile id is required")
	}
	doc, err := i.toDocument(ctx, d)
	if err != nil {
		return fmt.Errorf("embed profile %d: %w", d.ProfileId, err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if err = i.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add profile %d: %w", d.ProfileId, err)
	}
	return nil
}

// Sync upserts every document. Documents already indexed with the same text are skipped.
// Returns the number of documents written.
func (i *Index) Sync(ctx context.Context, docs []Document) (int, error) {
	pending := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		if d.ProfileId == 0 {
			continue
		}
		if existing, err := i.get(ctx, d.ProfileId); err == nil && existing.Content == d.Text {
			continue
		}
		doc, err := i.toDocument(ctx, d)
		if err != nil {
			return 0, fmt.Errorf("embed profile %d: %w", d.ProfileId, err)
		}
		pending = append(pending, doc)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.collection.AddDocuments(ctx, pending, 1); err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}
	i.l.Debugf("Indexed [%d] profiles.", len(pending))
	return len(pending), nil
}

func (i *Index) get(ctx context.Context, profileId uint32) (chromem.Document, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.collection.GetByID(ctx, documentId(profileId))
}

func (i *Index) Count() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.collection.Count()
}

// Nearest returns up to topK profiles most similar to the target, most similar first.
// The target is never its own match. The stored embedding of the target is preferred over text.
func (i *Index) Nearest(ctx context.Context, profileId uint32, text string, topK int) ([]Match, error) {
	if topK <= 0 {
		return []Match{}, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	count := i.collection.Count()
	if count < 2 {
		return []Match{}, nil
	}

	var query []float32
	if doc, err := i.collection.GetByID(ctx, documentId(profileId)); err == nil {
		query = doc.Embedding
	} else {
		query, err = i.embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed profile %d: %w", profileId, err)
		}
	}

	results, err := i.collection.QueryEmbedding(ctx, query, min(topK+1, count), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query profile %d: %w", profileId, err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		id, err := strconv.ParseUint(r.ID, 10, 32)
		if err != nil {
			i.l.WithError(err).Warnf("Skipping malformed index entry [%s].", r.ID)
			continue
		}
		if uint32(id) == profileId {
			continue
		}
		matches = append(matches, Match{ProfileId: uint32(id), Similarity: r.Similarity})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return cmp.Compare(a.ProfileId, b.ProfileId)
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}
