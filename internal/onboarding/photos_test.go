package onboarding

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "SkiBuddy/pkg/errors"
)

type fakePicker struct {
	calls   int
	cancel  bool
	err     error
	lastCfg PickConfig
}

func (p *fakePicker) Pick(_ context.Context, cfg PickConfig) (PickResult, error) {
	p.calls++
	p.lastCfg = cfg
	if p.err != nil {
		return PickResult{}, p.err
	}
	if p.cancel {
		return PickResult{Cancelled: true}, nil
	}
	return PickResult{LocalReference: fmt.Sprintf("asset:%d", p.calls)}, nil
}

func TestAddPhotoUpToMax(t *testing.T) {
	ctx := context.Background()
	picker := &fakePicker{}
	w := Wizard{Step: StepPhotos}

	for i := 0; i < MaxPhotos; i++ {
		var added bool
		var err error
		w, added, err = AddPhoto(ctx, w, picker)
		if err != nil || !added {
			t.Fatalf("add %d: added=%v err=%v", i, added, err)
		}
	}
	if picker.lastCfg != DefaultPickConfig {
		t.Fatalf("unexpected picker config %+v", picker.lastCfg)
	}

	full, added, err := AddPhoto(ctx, w, picker)
	if err != nil || added {
		t.Fatalf("seventh add: added=%v err=%v", added, err)
	}
	if picker.calls != MaxPhotos {
		t.Fatalf("picker invoked at capacity, calls=%d", picker.calls)
	}
	if len(full.Draft.Photos) != MaxPhotos {
		t.Fatalf("expected %d photos, got %d", MaxPhotos, len(full.Draft.Photos))
	}
}

func TestAddPhotoCancelled(t *testing.T) {
	w := Wizard{Step: StepPhotos, Draft: Draft{Photos: []string{"asset:a"}}}

	got, added, err := AddPhoto(context.Background(), w, &fakePicker{cancel: true})
	if err != nil || added {
		t.Fatalf("added=%v err=%v", added, err)
	}
	if len(got.Draft.Photos) != 1 {
		t.Fatalf("draft changed on cancel: %v", got.Draft.Photos)
	}
}

func TestAddPhotoPickerError(t *testing.T) {
	boom := errors.New("boom")
	w := Wizard{Step: StepPhotos}

	_, _, err := AddPhoto(context.Background(), w, &fakePicker{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected picker error, got %v", err)
	}
}

func TestAddPhotoWrongStep(t *testing.T) {
	picker := &fakePicker{}
	_, _, err := AddPhoto(context.Background(), Wizard{Step: StepStyle}, picker)
	if !errors.Is(err, pkgerrors.OnboardingFieldNotOnStep) {
		t.Fatalf("expected FieldNotOnStep, got %v", err)
	}
	if picker.calls != 0 {
		t.Fatal("picker invoked off step")
	}
}

func TestRemovePhoto(t *testing.T) {
	w := Wizard{Step: StepPhotos, Draft: Draft{Photos: []string{"a", "b", "c", "d"}}}

	got, err := RemovePhoto(w, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "c", "d"}
	if fmt.Sprint(got.Draft.Photos) != fmt.Sprint(want) {
		t.Fatalf("got %v, want %v", got.Draft.Photos, want)
	}
	if len(w.Draft.Photos) != 4 || w.Draft.Photos[1] != "b" {
		t.Fatalf("input wizard was modified: %v", w.Draft.Photos)
	}

	for _, idx := range []int{-1, 4, 100} {
		same, err := RemovePhoto(w, idx)
		if err != nil {
			t.Fatalf("index %d: %v", idx, err)
		}
		if len(same.Draft.Photos) != 4 {
			t.Fatalf("index %d removed something: %v", idx, same.Draft.Photos)
		}
	}
}
