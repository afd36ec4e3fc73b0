package vectorstore

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// entryModel is one indexed chunk. Ids are collection-scoped, monotonically
// increasing integers assigned as count+offset at insert time; they are
// never reused because deletion is whole-notebook only.
type entryModel struct {
	Id        int64           `gorm:"primaryKey;autoIncrement:false"`
	Document  string          `gorm:"type:text;not null"`
	Embedding pgvector.Vector `gorm:"type:text;not null"`
	Source    string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (entryModel) TableName() string {
	return "entries"
}

// metaModel pins the collection configuration (distance metric, embedding
// dimension) so a reopened collection cannot silently change semantics.
type metaModel struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text;not null"`
}

func (metaModel) TableName() string {
	return "collection_meta"
}

const (
	metaDistance   = "distance"
	metaDimension  = "dimension"
	distanceCosine = "cosine"
)
