package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionPause)

	if !f.Has(ActionLeft) || !f.Has(ActionPause) {
		t.Error("frame should report set actions")
	}
	if f.Has(ActionRight) {
		t.Error("frame should not report unset actions")
	}

	f.SetPointer(12)
	if !f.HasPointer || f.Pointer != 12 {
		t.Errorf("pointer = (%d, %v), expected (12, true)", f.Pointer, f.HasPointer)
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
}

func TestInputLog(t *testing.T) {
	var log InputLog
	for i := range 5 {
		var f InputFrame
		if i%2 == 0 {
			f.Set(ActionRight)
		}
		log.Append(f)
	}

	if log.Len() != 5 {
		t.Fatalf("Len() = %d, expected 5", log.Len())
	}
	if !log.Frames()[2].Has(ActionRight) || log.Frames()[1].Has(ActionRight) {
		t.Error("frames recorded out of order")
	}
}

func TestActionString(t *testing.T) {
	if ActionLaunch.String() != "Launch" {
		t.Errorf("ActionLaunch.String() = %q", ActionLaunch.String())
	}
	if Action(200).String() != "Unknown" {
		t.Error("out-of-range action should be Unknown")
	}
}
