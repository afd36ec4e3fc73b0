package vectorstore

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"notebookrag/pkg/apperror"
)

// Metadata carries the per-chunk attributes stored alongside a document.
type Metadata struct {
	Source string
}

// Result is one query hit. Distance is cosine distance, ascending order
// means most similar first.
type Result struct {
	Id       int64
	Document string
	Source   string
	Distance float64
}

// Collection is one notebook's vector index, backed by a single database
// file inside the notebook directory. All methods are safe for concurrent
// use within a process.
type Collection struct {
	name string
	db   *gorm.DB
	mu   sync.Mutex
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&entryModel{}).Count(&count).Error; err != nil {
		return 0, apperror.IO(err, "count entries in %s", c.name)
	}
	return count, nil
}

// Insert stores one embedded chunk per text. metadatas must be empty or
// align 1:1 with texts. Ids continue from the current entry count, so
// successive batches never collide.
func (c *Collection) Insert(ctx context.Context, texts []string, embeddings [][]float32, metadatas []Metadata) error {
	if len(texts) == 0 {
		return nil
	}
	if len(embeddings) != len(texts) {
		return apperror.Validation("embeddings count %d does not match texts count %d", len(embeddings), len(texts))
	}
	if len(metadatas) != 0 && len(metadatas) != len(texts) {
		return apperror.Validation("metadatas count %d does not match texts count %d", len(metadatas), len(texts))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkDimension(ctx, len(embeddings[0])); err != nil {
		return err
	}

	offset, err := c.Count(ctx)
	if err != nil {
		return err
	}

	entries := make([]entryModel, len(texts))
	for i, text := range texts {
		entry := entryModel{
			Id:        offset + int64(i),
			Document:  text,
			Embedding: pgvector.NewVector(embeddings[i]),
		}
		if len(metadatas) != 0 {
			entry.Source = metadatas[i].Source
		}
		entries[i] = entry
	}

	if err := c.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return apperror.IO(err, "insert %d entries into %s", len(entries), c.name)
	}
	return nil
}

// Query scans the whole collection and returns up to k entries ordered by
// ascending cosine distance. Ties keep insertion order.
func (c *Collection) Query(ctx context.Context, queryEmbedding []float32, k int) ([]Result, error) {
	if k <= 0 {
		return nil, nil
	}

	var entries []entryModel
	if err := c.db.WithContext(ctx).Order("id asc").Find(&entries).Error; err != nil {
		return nil, apperror.IO(err, "load entries from %s", c.name)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		distance, err := cosineDistance(queryEmbedding, entry.Embedding.Slice())
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			Id:       entry.Id,
			Document: entry.Document,
			Source:   entry.Source,
			Distance: distance,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// checkDimension records the embedding dimension on first insert and
// rejects batches that disagree with it afterwards.
func (c *Collection) checkDimension(ctx context.Context, dimension int) error {
	var meta metaModel
	err := c.db.WithContext(ctx).Where("key = ?", metaDimension).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		meta = metaModel{Key: metaDimension, Value: strconv.Itoa(dimension)}
		if err := c.db.WithContext(ctx).Create(&meta).Error; err != nil {
			return apperror.IO(err, "record embedding dimension for %s", c.name)
		}
		return nil
	}
	if err != nil {
		return apperror.IO(err, "read embedding dimension for %s", c.name)
	}
	if meta.Value != strconv.Itoa(dimension) {
		return apperror.Validation("embedding dimension %d does not match collection dimension %s", dimension, meta.Value)
	}
	return nil
}
