package onboarding

import "testing"

func TestViewEveryStep(t *testing.T) {
	titles := map[Step]string{
		StepName:     "What's your first name?",
		StepBirthday: "When's your birthday?",
		StepGender:   "What's your gender?",
		StepLocation: "Where do you usually ski?",
		StepStyle:    "What's your style?",
		StepPhotos:   "Add your photos",
		StepWelcome:  "Welcome to SkiBuddy!",
	}

	for step, title := range titles {
		v := View(Wizard{Step: step})
		if v.Step != step || v.Title != title {
			t.Errorf("step %d: got step %d title %q", step, v.Step, v.Title)
		}
		wantAction := "Continue"
		if step == StepWelcome {
			wantAction = "Start Exploring"
		}
		if v.Action != wantAction {
			t.Errorf("step %d: action %q, want %q", step, v.Action, wantAction)
		}
		if v.CanRetreat != (step != StepName) {
			t.Errorf("step %d: can_retreat %v", step, v.CanRetreat)
		}
	}
}

func TestStyleViewSelections(t *testing.T) {
	d := Draft{
		PreferredTerrain: []TerrainPreference{TerrainMoguls, TerrainPark},
		SkillLevel:       SkillDoubleBlack,
	}
	v := View(Wizard{Step: StepStyle, Draft: d})
	if len(v.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(v.Fields))
	}

	selected := map[string]bool{}
	for _, o := range v.Fields[0].Options {
		selected[o.Value] = o.Selected
	}
	if !selected["moguls"] || !selected["park"] || selected["groomed"] || selected["backcountry"] {
		t.Fatalf("terrain selection wrong: %v", selected)
	}
	if v.CanProceed {
		t.Fatal("style step without speed should not proceed")
	}
}

func TestPhotosViewSlots(t *testing.T) {
	v := View(Wizard{Step: StepPhotos, Draft: Draft{Photos: []string{"asset:1"}}})
	if v.Photos == nil {
		t.Fatal("photos grid missing")
	}
	if len(v.Photos.Slots) != MaxPhotos {
		t.Fatalf("expected %d slots, got %d", MaxPhotos, len(v.Photos.Slots))
	}
	if v.Photos.Slots[0].Reference != "asset:1" {
		t.Fatalf("slot 0 = %+v", v.Photos.Slots[0])
	}
	if v.Photos.Slots[1].Label != "Add photo" {
		t.Fatalf("slot 1 label = %q", v.Photos.Slots[1].Label)
	}
	if !v.Photos.CanAdd || v.Photos.Picker != DefaultPickConfig {
		t.Fatalf("grid = %+v", v.Photos)
	}

	empty := View(Wizard{Step: StepPhotos})
	if empty.Photos.Slots[0].Label != "Add main photo" {
		t.Fatalf("empty slot 0 label = %q", empty.Photos.Slots[0].Label)
	}
}
