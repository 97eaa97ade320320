package anim

import (
	"errors"
	"testing"

	"github.com/Faultbox/cortexmorph/internal/colormap"
	"github.com/Faultbox/cortexmorph/internal/fault"
)

func TestScalarTrackStatic(t *testing.T) {
	track := StaticScalars([]float64{1, 2, 3})
	if track.Varying() {
		t.Error("static track reports varying")
	}
	if err := track.Validate(4, 3); err != nil {
		t.Errorf("static track valid for any keyframe count: %v", err)
	}
	for k := 0; k < 4; k++ {
		if got := track.At(k); got[0] != 1 {
			t.Errorf("At(%d) = %v", k, got)
		}
	}
}

func TestScalarTrackNil(t *testing.T) {
	if StaticScalars(nil) != nil {
		t.Error("nil data must produce a nil track")
	}
	var track *ScalarTrack
	if track.Varying() {
		t.Error("nil track reports varying")
	}
	if err := track.Validate(2, 8); err != nil {
		t.Errorf("nil track must validate: %v", err)
	}
}

func TestScalarTrackVarying(t *testing.T) {
	track := VaryingScalars([][]float64{{1, 2}, {3, 4}})
	if !track.Varying() {
		t.Error("varying track reports static")
	}
	if err := track.Validate(2, 2); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if got := track.At(1); got[0] != 3 {
		t.Errorf("At(1) = %v", got)
	}

	if err := track.Validate(3, 2); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("keyframe count mismatch: expected ErrInvalidArgument, got %v", err)
	}
	if err := track.Validate(2, 5); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("vertex count mismatch: expected ErrInvalidArgument, got %v", err)
	}
}

func TestMapTrack(t *testing.T) {
	gray, _ := colormap.ByName("gray")
	jet, _ := colormap.ByName("jet")

	static := StaticMap(gray)
	if static.Varying() {
		t.Error("static map track reports varying")
	}
	if err := static.Validate(5); err != nil {
		t.Errorf("Validate: %v", err)
	}

	varying := VaryingMaps([]colormap.Map{gray, jet})
	if err := varying.Validate(2); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := varying.Validate(3); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("count mismatch: expected ErrInvalidArgument, got %v", err)
	}

	uneven := VaryingMaps([]colormap.Map{gray, jet[:10]})
	if err := uneven.Validate(2); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("length mismatch: expected ErrInvalidArgument, got %v", err)
	}

	var none *MapTrack
	if err := none.Validate(2); !errors.Is(err, fault.ErrInvalidArgument) {
		t.Errorf("missing colormap: expected ErrInvalidArgument, got %v", err)
	}
}
