// Package render sequences the engine's render passes and owns the
// per-category renderers.
package render

import (
	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/model"
)

// Batch is one group of entities sharing a textured model. The renderer
// binds the model's VAO and texture once per batch.
type Batch struct {
	Model    *model.TexturedModel
	Entities []*entity.Entity
}

// GroupByModel partitions entities by their model identity (texture handle
// plus VAO). Every entity appears in exactly one batch; batch order follows
// first appearance so frame-to-frame ordering is stable.
func GroupByModel(entities []*entity.Entity) []Batch {
	byKey := make(map[model.Key]int)
	batches := make([]Batch, 0)

	for _, e := range entities {
		key := e.Model.Key()
		idx, ok := byKey[key]
		if !ok {
			idx = len(batches)
			byKey[key] = idx
			batches = append(batches, Batch{Model: e.Model})
		}
		batches[idx].Entities = append(batches[idx].Entities, e)
	}
	return batches
}
