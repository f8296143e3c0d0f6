package onboarding

import (
	"errors"
	"testing"

	pkgerrors "SkiBuddy/pkg/errors"
)

func strp(s string) *string { return &s }

func completeDraft() Draft {
	return Draft{
		Name:             "Alex",
		Birthday:         "1/2/1999",
		Gender:           GenderOther,
		Location:         "Tahoe",
		YearsSkiing:      "5",
		PreferredTerrain: []TerrainPreference{TerrainGroomed},
		SkillLevel:       SkillBlue,
		SpeedPreference:  SpeedModerate,
		Photos:           []string{"asset:1"},
	}
}

func TestStepComplete(t *testing.T) {
	full := completeDraft()

	tests := []struct {
		name  string
		step  Step
		draft Draft
		want  bool
	}{
		{"name empty", StepName, Draft{}, false},
		{"name set", StepName, Draft{Name: "Alex"}, true},
		{"birthday empty", StepBirthday, Draft{}, false},
		{"birthday any text", StepBirthday, Draft{Birthday: "not a date"}, true},
		{"gender empty", StepGender, Draft{}, false},
		{"gender set", StepGender, Draft{Gender: GenderFemale}, true},
		{"location only", StepLocation, Draft{Location: "Tahoe"}, false},
		{"years only", StepLocation, Draft{YearsSkiing: "5"}, false},
		{"location and non numeric years", StepLocation, Draft{Location: "Tahoe", YearsSkiing: "lots"}, true},
		{"style missing terrain", StepStyle, Draft{SkillLevel: SkillBlue, SpeedPreference: SpeedFast}, false},
		{"style missing skill", StepStyle, Draft{PreferredTerrain: []TerrainPreference{TerrainPark}, SpeedPreference: SpeedFast}, false},
		{"style missing speed", StepStyle, Draft{PreferredTerrain: []TerrainPreference{TerrainPark}, SkillLevel: SkillBlue}, false},
		{"style complete", StepStyle, full, true},
		{"photos empty", StepPhotos, Draft{}, false},
		{"photos one", StepPhotos, Draft{Photos: []string{"a"}}, true},
		{"welcome always", StepWelcome, Draft{}, true},
		{"unknown step", Step(9), full, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepComplete(tt.step, tt.draft); got != tt.want {
				t.Errorf("StepComplete(%d) = %v, want %v", tt.step, got, tt.want)
			}
		})
	}
}

func TestAdvanceRejectedWhenIncomplete(t *testing.T) {
	for step := StepName; step < StepWelcome; step++ {
		w := Wizard{Step: step}
		got, _, err := Advance(w)
		if !errors.Is(err, pkgerrors.OnboardingStepIncomplete) {
			t.Fatalf("step %d: expected incomplete error, got %v", step, err)
		}
		if got.Step != step {
			t.Fatalf("step %d: wizard moved to %d", step, got.Step)
		}
	}
}

func TestAdvanceWalksAllSteps(t *testing.T) {
	w := Wizard{Step: StepName, Draft: completeDraft()}

	for want := StepBirthday; want <= StepWelcome; want++ {
		next, outcome, err := Advance(w)
		if err != nil {
			t.Fatalf("advance to %d: %v", want, err)
		}
		if outcome != Advanced || next.Step != want {
			t.Fatalf("expected step %d advanced, got step %d outcome %d", want, next.Step, outcome)
		}
		w = next
	}

	final, outcome, err := Advance(w)
	if err != nil {
		t.Fatalf("advance on last step: %v", err)
	}
	if outcome != SubmitRequested {
		t.Fatalf("expected SubmitRequested, got %d", outcome)
	}
	if final.Step != StepWelcome {
		t.Fatalf("last step should not move, got %d", final.Step)
	}
}

func TestRetreat(t *testing.T) {
	if _, err := Retreat(New()); !errors.Is(err, pkgerrors.OnboardingAtFirstStep) {
		t.Fatalf("expected AtFirstStep, got %v", err)
	}

	// 返回不受校验影响
	for step := StepBirthday; step <= StepWelcome; step++ {
		got, err := Retreat(Wizard{Step: step})
		if err != nil {
			t.Fatalf("retreat from %d: %v", step, err)
		}
		if got.Step != step-1 {
			t.Fatalf("retreat from %d landed on %d", step, got.Step)
		}
	}
}

func TestRetreatKeepsDraft(t *testing.T) {
	w := Wizard{Step: StepGender, Draft: Draft{Name: "Alex", Birthday: "01/02/1999"}}
	got, err := Retreat(w)
	if err != nil {
		t.Fatal(err)
	}
	if got.Draft.Name != "Alex" || got.Draft.Birthday != "01/02/1999" {
		t.Fatalf("draft changed on retreat: %+v", got.Draft)
	}
}

func TestApplyStepLocal(t *testing.T) {
	w := New()

	got, err := Apply(w, Edit{Name: strp("Alex")})
	if err != nil {
		t.Fatal(err)
	}
	if got.Draft.Name != "Alex" {
		t.Fatalf("name not applied: %q", got.Draft.Name)
	}
	if w.Draft.Name != "" {
		t.Fatal("input wizard was modified")
	}

	if _, err := Apply(got, Edit{Location: strp("Tahoe")}); !errors.Is(err, pkgerrors.OnboardingFieldNotOnStep) {
		t.Fatalf("expected FieldNotOnStep, got %v", err)
	}
}

func TestApplyRejectsUnknownOptions(t *testing.T) {
	bogusGender := Gender("robot")
	bogusSkill := SkillLevel("purple")
	bogusTerrain := TerrainPreference("halfpipe")

	tests := []struct {
		name string
		step Step
		edit Edit
	}{
		{"gender", StepGender, Edit{Gender: &bogusGender}},
		{"skill", StepStyle, Edit{SkillLevel: &bogusSkill}},
		{"terrain set", StepStyle, Edit{PreferredTerrain: []TerrainPreference{TerrainPark, bogusTerrain}}},
		{"terrain toggle", StepStyle, Edit{ToggleTerrain: &bogusTerrain}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Wizard{Step: tt.step}
			got, err := Apply(w, tt.edit)
			if !errors.Is(err, pkgerrors.OnboardingOptionInvalid) {
				t.Fatalf("expected OptionInvalid, got %v", err)
			}
			if len(got.Draft.PreferredTerrain) != 0 || got.Draft.Gender != "" || got.Draft.SkillLevel != "" {
				t.Fatalf("partial edit applied: %+v", got.Draft)
			}
		})
	}
}

func TestApplyTerrain(t *testing.T) {
	w := Wizard{Step: StepStyle}

	w, err := Apply(w, Edit{PreferredTerrain: []TerrainPreference{TerrainPark, TerrainGroomed, TerrainPark}})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Draft.PreferredTerrain) != 2 {
		t.Fatalf("expected duplicates removed, got %v", w.Draft.PreferredTerrain)
	}

	moguls := TerrainMoguls
	w, _ = Apply(w, Edit{ToggleTerrain: &moguls})
	if !w.Draft.HasTerrain(TerrainMoguls) {
		t.Fatal("toggle on failed")
	}
	w, _ = Apply(w, Edit{ToggleTerrain: &moguls})
	if w.Draft.HasTerrain(TerrainMoguls) {
		t.Fatal("toggle off failed")
	}

	w, _ = Apply(w, Edit{PreferredTerrain: []TerrainPreference{}})
	if len(w.Draft.PreferredTerrain) != 0 {
		t.Fatalf("expected cleared terrain, got %v", w.Draft.PreferredTerrain)
	}
}
