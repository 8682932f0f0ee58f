package render

import (
	"testing"

	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/model"
)

func makeModel(texHandle, vao uint32) *model.TexturedModel {
	return &model.TexturedModel{
		Raw:     model.RawModel{VaoID: vao, VertexCount: 3},
		Texture: model.ModelTexture{ID: model.LoadedTexture(texHandle), AtlasRows: 1},
	}
}

func TestGroupByModelPartitions(t *testing.T) {
	tree := makeModel(1, 10)
	rock := makeModel(2, 11)
	fern := makeModel(1, 12) // same texture, different mesh

	entities := []*entity.Entity{
		{Model: tree}, {Model: rock}, {Model: tree},
		{Model: fern}, {Model: rock}, {Model: tree},
	}

	batches := GroupByModel(entities)
	if len(batches) != 3 {
		t.Fatalf("got %d batches, want 3", len(batches))
	}

	// Every entity lands in exactly one batch: none lost, none duplicated.
	seen := make(map[*entity.Entity]int)
	total := 0
	for _, b := range batches {
		for _, e := range b.Entities {
			if e.Model.Key() != b.Model.Key() {
				t.Errorf("entity with key %v filed under batch %v", e.Model.Key(), b.Model.Key())
			}
			seen[e]++
			total++
		}
	}
	if total != len(entities) {
		t.Errorf("batches hold %d entities, want %d", total, len(entities))
	}
	for e, n := range seen {
		if n != 1 {
			t.Errorf("entity %p appears %d times", e, n)
		}
	}
}

func TestGroupByModelSharedMeshDifferentTexture(t *testing.T) {
	a := makeModel(1, 10)
	b := makeModel(2, 10) // same mesh, different texture
	batches := GroupByModel([]*entity.Entity{{Model: a}, {Model: b}})
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2: texture is part of the batch key", len(batches))
	}
}

func TestGroupByModelEmpty(t *testing.T) {
	if batches := GroupByModel(nil); len(batches) != 0 {
		t.Errorf("empty input produced %d batches", len(batches))
	}
}

func TestGroupByModelStableOrder(t *testing.T) {
	a := makeModel(1, 10)
	b := makeModel(2, 11)
	entities := []*entity.Entity{{Model: b}, {Model: a}, {Model: b}}
	batches := GroupByModel(entities)
	if batches[0].Model != b || batches[1].Model != a {
		t.Error("batch order must follow first appearance")
	}
}
