package render

import (
	"reflect"
	"testing"

	"github.com/fernwood/glade/internal/engine/animation"
	"github.com/fernwood/glade/internal/engine/entity"
)

func TestWaterPassesSkippedWithoutTiles(t *testing.T) {
	toggles := 0
	passes := 0
	renderWaterPasses(nil,
		func(bool) { toggles++ },
		func(float32) { passes++ },
		func(float32) { passes++ })

	if toggles != 0 {
		t.Errorf("clip plane toggled %d times with no water tiles", toggles)
	}
	if passes != 0 {
		t.Errorf("%d water passes ran with no water tiles", passes)
	}
}

func TestWaterPassesBracketedByClipToggle(t *testing.T) {
	tiles := []entity.WaterTile{{X: 400, Z: 340, Height: -2}}
	var calls []string
	var heights []float32

	renderWaterPasses(tiles,
		func(on bool) {
			if on {
				calls = append(calls, "enable")
			} else {
				calls = append(calls, "disable")
			}
		},
		func(h float32) {
			calls = append(calls, "reflection")
			heights = append(heights, h)
		},
		func(h float32) {
			calls = append(calls, "refraction")
			heights = append(heights, h)
		})

	want := []string{"enable", "reflection", "refraction", "disable"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("call sequence %v, want %v", calls, want)
	}
	for _, h := range heights {
		if h != -2 {
			t.Errorf("pass got water height %v, want -2", h)
		}
	}
}

func TestStaticCastersPlayerVariants(t *testing.T) {
	tree := makeModel(1, 10)
	playerModel := makeModel(2, 11)
	scene := &Scene{Entities: []*entity.Entity{{Model: tree}}}

	if got := staticCasters(scene); len(got) != 1 {
		t.Fatalf("no player: got %d casters, want 1", len(got))
	}

	scene.Player = &entity.Player{Entity: entity.Entity{Model: playerModel}}
	got := staticCasters(scene)
	if len(got) != 2 || got[1] != &scene.Player.Entity {
		t.Fatalf("static player must join the batched casters, got %d", len(got))
	}

	// The animated player stays out of the batches; the shadow pass gives it
	// a separate depth draw and the skinned renderer draws it lit.
	scene.Player.Animator = new(animation.Animator)
	if got := staticCasters(scene); len(got) != 1 {
		t.Errorf("animated player leaked into the static batches: %d casters", len(got))
	}
}
