package profile

import (
	"context"

	"datemate/kafka/message"
	profileMsg "datemate/kafka/message/profile"
	"datemate/kafka/producer"
	"datemate/match"
	"datemate/questionnaire"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const DefaultTopK = 5

// Index is the similarity index profiles are ranked against
type Index interface {
	Upsert(ctx context.Context, d match.Document) error
	Sync(ctx context.Context, docs []match.Document) (int, error)
	Nearest(ctx context.Context, profileId uint32, text string, topK int) ([]match.Match, error)
}

type Processor interface {
	Create(input questionnaire.Payload) model.Provider[Profile]
	CreateAndEmit(transactionId uuid.UUID, input questionnaire.Payload) (Profile, error)
	GetById(profileId uint32) model.Provider[Profile]
	GetAll() model.Provider[[]Profile]
	GetMatches(profileId uint32, topK int) model.Provider[[]match.Match]
	SyncIndex() (int, error)
}

type ProcessorImpl struct {
	log      logrus.FieldLogger
	ctx      context.Context
	db       *gorm.DB
	producer producer.Provider
	index    Index
}

func NewProcessor(log logrus.FieldLogger, ctx context.Context, db *gorm.DB, index Index) Processor {
	return NewProcessorWithProducer(log, ctx, db, index, producer.ProviderImpl(log)(ctx))
}

func NewProcessorWithProducer(log logrus.FieldLogger, ctx context.Context, db *gorm.DB, index Index, pp producer.Provider) Processor {
	return &ProcessorImpl{
		log:      log,
		ctx:      ctx,
		db:       db,
		producer: pp,
		index:    index,
	}
}

func document(p Profile) match.Document {
	return match.Document{ProfileId: p.Id(), Text: p.Text()}
}

// Create validates and stores the answers, then indexes the new profile.
// An indexing failure is logged; the periodic sync will pick the profile up.
func (p *ProcessorImpl) Create(input questionnaire.Payload) model.Provider[Profile] {
	return func() (Profile, error) {
		candidate, err := NewBuilderFromPayload(input).Build()
		if err != nil {
			p.log.WithError(err).Debug("Rejected profile submission.")
			return Profile{}, err
		}

		entity, err := CreateProfile(p.db, p.log)(candidate)()
		if err != nil {
			return Profile{}, err
		}
		profile, err := Make(entity)
		if err != nil {
			return Profile{}, err
		}

		if err = p.index.Upsert(p.ctx, document(profile)); err != nil {
			p.log.WithError(err).WithField("profileId", profile.Id()).Warn("Unable to index profile.")
		}

		p.log.WithField("profileId", profile.Id()).Info("Profile created.")
		return profile, nil
	}
}

// CreateAndEmit creates the profile and announces it. Emit failures are logged, not returned.
func (p *ProcessorImpl) CreateAndEmit(transactionId uuid.UUID, input questionnaire.Payload) (Profile, error) {
	profile, err := p.Create(input)()
	if err != nil {
		return Profile{}, err
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		return buf.Put(profileMsg.EnvEventTopicStatus, CreatedEventProvider(profile))
	})
	if err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"transactionId": transactionId,
			"profileId":     profile.Id(),
		}).Error("Unable to emit ProfileCreated event.")
		return profile, nil
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"profileId":     profile.Id(),
	}).Debug("ProfileCreated event emitted")
	return profile, nil
}

func (p *ProcessorImpl) GetById(profileId uint32) model.Provider[Profile] {
	return GetByIdProvider(p.db, p.log)(profileId)
}

func (p *ProcessorImpl) GetAll() model.Provider[[]Profile] {
	return GetAllProvider(p.db, p.log)
}

// GetMatches ranks every other profile against the target, most similar first.
// Fewer than two stored profiles yields no matches, whether or not the target exists.
func (p *ProcessorImpl) GetMatches(profileId uint32, topK int) model.Provider[[]match.Match] {
	return func() ([]match.Match, error) {
		count, err := CountProvider(p.db)()
		if err != nil {
			return nil, err
		}
		if count < 2 {
			return []match.Match{}, nil
		}

		target, err := p.GetById(profileId)()
		if err != nil {
			return nil, err
		}
		if topK <= 0 {
			return []match.Match{}, nil
		}

		if err = p.index.Upsert(p.ctx, document(target)); err != nil {
			p.log.WithError(err).WithField("profileId", profileId).Warn("Unable to index target profile.")
		}
		return p.index.Nearest(p.ctx, target.Id(), target.Text(), topK)
	}
}

// SyncIndex loads every stored profile into the index
func (p *ProcessorImpl) SyncIndex() (int, error) {
	profiles, err := p.GetAll()()
	if err != nil {
		return 0, err
	}
	docs := make([]match.Document, 0, len(profiles))
	for _, pr := range profiles {
		docs = append(docs, document(pr))
	}
	return p.index.Sync(p.ctx, docs)
}
