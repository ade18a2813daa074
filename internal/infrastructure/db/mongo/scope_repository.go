package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worksync/session-agent/internal/core/ports"
)

const scopeCollection = "agent_credentials"

// ScopeRepository stores one credential scope as small documents keyed by
// "<namespace>:<key>". It lets several agents on one host share a durable
// login through a local MongoDB.
type ScopeRepository struct {
	coll      *mongo.Collection
	namespace string
}

func NewScopeRepository(db *mongo.Database, namespace string) *ScopeRepository {
	return &ScopeRepository{coll: db.Collection(scopeCollection), namespace: namespace}
}

type scopeEntry struct {
	ID        string `bson:"_id"`
	Namespace string `bson:"namespace"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *ScopeRepository) Get(ctx context.Context, key string) (string, error) {
	var e scopeEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": r.id(key)}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ports.ErrKeyNotFound
		}
		return "", fmt.Errorf("find %s: %w", key, err)
	}
	return e.Value, nil
}

func (r *ScopeRepository) Set(ctx context.Context, key, value string) error {
	doc := scopeEntry{
		ID:        r.id(key),
		Namespace: r.namespace,
		Value:     value,
		UpdatedAt: time.Now().UTC().Unix(),
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (r *ScopeRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = r.id(k)
	}
	if _, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}

func (r *ScopeRepository) id(key string) string {
	return r.namespace + ":" + key
}

var _ ports.ScopeStorage = (*ScopeRepository)(nil)
