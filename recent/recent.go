// Package recent keeps a short per-user ring of recently viewed product
// IDs in durable key-value storage.
package recent

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// MaxEntries caps the ring; the oldest entries fall off.
const MaxEntries = 6

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type List struct {
	storage Storage
	log     *zap.Logger
}

func NewList(storage Storage, log *zap.Logger) *List {
	return &List{storage: storage, log: log}
}

// Record prepends the product to the user's ring. A product already in
// the ring is left where it is.
func (l *List) Record(ctx context.Context, userID, productID string) {
	ids := l.IDs(ctx, userID)
	for _, id := range ids {
		if id == productID {
			return
		}
	}
	ids = append([]string{productID}, ids...)
	if len(ids) > MaxEntries {
		ids = ids[:MaxEntries]
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := l.storage.Set(ctx, "recent:"+userID, raw); err != nil {
		l.log.Warn("recently-viewed persist failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// IDs returns the ring, most recent first. Missing or unparseable data
// yields an empty list.
func (l *List) IDs(ctx context.Context, userID string) []string {
	raw, err := l.storage.Get(ctx, "recent:"+userID)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		l.log.Warn("recently-viewed payload unparseable", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return ids
}
