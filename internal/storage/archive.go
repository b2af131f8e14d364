package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// FactArchive writes each stored fact as a small JSON object under facts/.
type FactArchive struct {
	store Storage
	now   func() time.Time
}

// NewFactArchive wraps an object store.
func NewFactArchive(store Storage) *FactArchive {
	return &FactArchive{store: store, now: time.Now}
}

type archivedFact struct {
	Fact       string    `json:"fact"`
	ArchivedAt time.Time `json:"archived_at"`
}

// Save uploads text as facts/<uuid>.json and returns the stored object's info.
func (a *FactArchive) Save(ctx context.Context, text string) (ObjectInfo, error) {
	body, err := json.Marshal(archivedFact{Fact: text, ArchivedAt: a.now().UTC()})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("encode fact: %w", err)
	}

	key := path.Join("facts", uuid.NewString()+".json")
	info, err := a.store.Put(ctx, key, bytes.NewReader(body), PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	return info, nil
}
