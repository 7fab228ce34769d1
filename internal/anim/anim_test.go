package anim

import (
	"errors"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	defs := []Definition{
		{Key: "spin", Sheet: "top", Frames: GenerateFrameNumbers(0, 3), FrameRate: 10, Repeat: RepeatForever},
		{Key: "boosty", Sheet: "boost-platform", Frames: GenerateFrameNumbers(1, 4), FrameRate: 10, Repeat: 1},
	}
	for _, d := range defs {
		if _, err := r.Create(d); err != nil {
			t.Fatalf("Create(%s) failed: %v", d.Key, err)
		}
	}
	return r
}

func TestGenerateFrameNumbers(t *testing.T) {
	got := GenerateFrameNumbers(1, 4)
	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Expected %d frames, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Frame %d: expected %d, got %d", i, want[i], got[i])
		}
	}
	if GenerateFrameNumbers(3, 1) != nil {
		t.Error("Expected nil for an inverted range")
	}
}

func TestRegistryCreateIsIdempotent(t *testing.T) {
	r := NewRegistry()
	def := Definition{Key: "boosty", Sheet: "boost-platform", Frames: []int{1, 2}, FrameRate: 10}

	created, err := r.Create(def)
	if err != nil || !created {
		t.Fatalf("First Create: created=%v err=%v", created, err)
	}

	redefined := def
	redefined.Frames = []int{9}
	created, err = r.Create(redefined)
	if err != nil {
		t.Fatalf("Redefinition should be tolerated, got %v", err)
	}
	if created {
		t.Error("Expected redefinition to report false")
	}

	got, _ := r.Get("boosty")
	if len(got.Frames) != 2 {
		t.Errorf("Expected the first definition to be kept, got frames %v", got.Frames)
	}
}

func TestRegistryCreateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"missing key", Definition{Frames: []int{0}, FrameRate: 1}},
		{"no frames", Definition{Key: "a", FrameRate: 1}},
		{"zero rate", Definition{Key: "a", Frames: []int{0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry().Create(tt.def); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestAnimatorUnknownKey(t *testing.T) {
	a := NewAnimator(NewRegistry())
	err := a.Play("red-run-left", true)
	if !errors.Is(err, ErrUnknownAnimation) {
		t.Fatalf("Expected ErrUnknownAnimation, got %v", err)
	}
	if a.Frame() != -1 {
		t.Errorf("Expected no frame before a successful Play, got %d", a.Frame())
	}
}

func TestAnimatorLoops(t *testing.T) {
	a := NewAnimator(newTestRegistry(t))
	if err := a.Play("spin", true); err != nil {
		t.Fatal(err)
	}
	// 10 fps, 4 frames: 0.45s is 4 steps, wrapping back to frame 0.
	a.Update(0.45)
	if a.Frame() != 0 {
		t.Errorf("Expected wrap to frame 0, got %d", a.Frame())
	}
	if a.Done() {
		t.Error("Looping clip should never be done")
	}
}

func TestAnimatorHoldsWhenNotLooping(t *testing.T) {
	a := NewAnimator(newTestRegistry(t))
	if err := a.Play("spin", false); err != nil {
		t.Fatal(err)
	}
	a.Update(2.0)
	if !a.Done() {
		t.Fatal("Expected clip to finish")
	}
	if a.Frame() != 3 {
		t.Errorf("Expected hold on last frame 3, got %d", a.Frame())
	}
}

func TestAnimatorPlaysThroughBeforeHolding(t *testing.T) {
	a := NewAnimator(newTestRegistry(t))
	if err := a.Play("spin", false); err != nil {
		t.Fatal(err)
	}
	for want := 1; want <= 3; want++ {
		a.Update(0.1)
		if a.Done() || a.Frame() != want {
			t.Fatalf("Expected frame %d still playing, got frame=%d done=%v", want, a.Frame(), a.Done())
		}
	}
	a.Update(0.1)
	if !a.Done() || a.Frame() != 3 {
		t.Errorf("Expected hold on frame 3 after one play-through, got frame=%d done=%v", a.Frame(), a.Done())
	}
}

func TestAnimatorHonorsRepeatCount(t *testing.T) {
	a := NewAnimator(newTestRegistry(t))
	if err := a.Play("boosty", false); err != nil {
		t.Fatal(err)
	}
	// First play ends after 4 steps and restarts for the single repeat.
	a.Update(0.45)
	if a.Done() {
		t.Fatal("Expected one repeat before finishing")
	}
	if a.Frame() != 1 {
		t.Errorf("Expected restart at frame 1, got %d", a.Frame())
	}
	a.Update(0.4)
	if !a.Done() || a.Frame() != 4 {
		t.Errorf("Expected done holding frame 4, got done=%v frame=%d", a.Done(), a.Frame())
	}
}

func TestAnimatorReplayKeepsProgress(t *testing.T) {
	a := NewAnimator(newTestRegistry(t))
	_ = a.Play("spin", true)
	a.Update(0.25)
	before := a.Frame()

	if err := a.Play("spin", true); err != nil {
		t.Fatal(err)
	}
	if a.Frame() != before {
		t.Errorf("Replaying the running clip reset frame %d to %d", before, a.Frame())
	}

	// Switching mode restarts the clip.
	_ = a.Play("spin", false)
	if a.Frame() != 0 || a.Looping() {
		t.Errorf("Expected restart in hold mode, got frame=%d looping=%v", a.Frame(), a.Looping())
	}
}
