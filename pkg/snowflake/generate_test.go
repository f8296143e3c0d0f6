package snowflake

import "testing"

func TestNextPublicIDUnique(t *testing.T) {
	if err := Init(1, 1); err != nil {
		t.Fatalf("init: %v", err)
	}

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := NextPublicID()
		if err != nil {
			t.Fatal(err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
