package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	sessionsCollection = "sessions"
	usersCollection    = "users"
	eventsCollection   = "llm_events"
	countersCollection = "counters"
)

// Mongo is the MongoDB backend used by hosted deployments.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ Backend = (*Mongo)(nil)

// OpenMongo connects to uri, selects database and ensures indexes.
func OpenMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	m := &Mongo{client: client, db: client.Database(database)}
	if err := m.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	if _, err := m.db.Collection(sessionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}); err != nil {
		return err
	}
	if _, err := m.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}); err != nil {
		return err
	}
	_, err := m.db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "purpose", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *Mongo) SessionRepo() SessionRepo {
	return &mongoSessionRepo{coll: m.db.Collection(sessionsCollection)}
}

func (m *Mongo) UserRepo() UserRepo {
	return &mongoUserRepo{coll: m.db.Collection(usersCollection)}
}

func (m *Mongo) EventRepo() EventRepo {
	return &mongoEventRepo{
		coll:     m.db.Collection(eventsCollection),
		counters: m.db.Collection(countersCollection),
	}
}

type mongoSessionRepo struct {
	coll *mongo.Collection
}

func (r *mongoSessionRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	return &s, nil
}

func (r *mongoSessionRepo) Save(ctx context.Context, s *Session) error {
	next := *s
	next.Version = s.Version + 1
	if next.UpdatedAt.IsZero() {
		next.UpdatedAt = time.Now().UTC()
	}
	if next.CreatedAt.IsZero() {
		next.CreatedAt = next.UpdatedAt
	}

	if s.Version == 0 {
		if _, err := r.coll.InsertOne(ctx, &next); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrStaleVersion
			}
			return fmt.Errorf("insert session: %w", err)
		}
	} else {
		res, err := r.coll.ReplaceOne(ctx,
			bson.M{"sessionId": s.SessionID, "version": s.Version}, &next)
		if err != nil {
			return fmt.Errorf("replace session: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStaleVersion
		}
	}

	s.Version = next.Version
	s.CreatedAt = next.CreatedAt
	s.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *mongoSessionRepo) List(ctx context.Context, filter SessionFilter) ([]*Session, error) {
	q := bson.M{}
	if filter.SessionID != "" {
		q["sessionId"] = filter.SessionID
	}
	if filter.UserID != "" {
		q["userId"] = filter.UserID
	}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	var out []*Session
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	for _, s := range out {
		if s.Messages == nil {
			s.Messages = []Message{}
		}
	}
	return out, nil
}

func (r *mongoSessionRepo) Delete(ctx context.Context, sessionID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

func (r *mongoUserRepo) Create(ctx context.Context, u *User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *mongoUserRepo) FindByLogin(ctx context.Context, login string) (*User, error) {
	var u User
	err := r.coll.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

type mongoEvent struct {
	ID           int64     `bson:"_id"`
	Timestamp    time.Time `bson:"timestamp"`
	Provider     string    `bson:"provider"`
	Model        string    `bson:"model"`
	Purpose      string    `bson:"purpose"`
	InputTokens  int       `bson:"inputTokens"`
	OutputTokens int       `bson:"outputTokens"`
	LatencyMs    int64     `bson:"latencyMs"`
	Success      bool      `bson:"success"`
	ErrorMessage string    `bson:"errorMessage,omitempty"`
	RequestBody  string    `bson:"requestBody,omitempty"`
	ResponseBody string    `bson:"responseBody,omitempty"`
}

func (e mongoEvent) toEvent() LLMEvent {
	return LLMEvent{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		LLMRequestEventData: LLMRequestEventData{
			Provider:     e.Provider,
			Model:        e.Model,
			Purpose:      e.Purpose,
			InputTokens:  e.InputTokens,
			OutputTokens: e.OutputTokens,
			LatencyMs:    e.LatencyMs,
			Success:      e.Success,
			ErrorMessage: e.ErrorMessage,
			RequestBody:  e.RequestBody,
			ResponseBody: e.ResponseBody,
		},
	}
}

type mongoEventRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// nextID hands out monotonically increasing event IDs so the CLI can
// address events the same way on every backend.
func (r *mongoEventRepo) nextID(ctx context.Context) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": eventsCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next event id: %w", err)
	}
	return doc.Seq, nil
}

func (r *mongoEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, mongoEvent{
		ID:           id,
		Timestamp:    time.Now().UTC(),
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
		RequestBody:  data.RequestBody,
		ResponseBody: data.ResponseBody,
	})
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *mongoEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	q := bson.M{}
	if opts.Purpose != "" {
		q["purpose"] = opts.Purpose
	}
	ts := bson.M{}
	if !opts.From.IsZero() {
		ts["$gte"] = opts.From.UTC()
	}
	if !opts.To.IsZero() {
		ts["$lte"] = opts.To.UTC()
	}
	if len(ts) > 0 {
		q["timestamp"] = ts
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	cur, err := r.coll.Find(ctx, q, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find LLM events: %w", err)
	}
	var docs []mongoEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode LLM events: %w", err)
	}
	out := make([]LLMEvent, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEvent())
	}
	return out, nil
}

func (r *mongoEventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	var d mongoEvent
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find LLM event: %w", err)
	}
	e := d.toEvent()
	return &e, nil
}
