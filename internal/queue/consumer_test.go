package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"SkiBuddy/internal/model"
	pkgerrors "SkiBuddy/pkg/errors"
)

type fakeIdem struct {
	marked   map[string]bool
	done     []string
	unmarked []string
	markErr  error
}

func newFakeIdem() *fakeIdem { return &fakeIdem{marked: map[string]bool{}} }

func (f *fakeIdem) TryMark(_ context.Context, id string) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	if f.marked[id] {
		return false, nil
	}
	f.marked[id] = true
	return true, nil
}

func (f *fakeIdem) Done(_ context.Context, id string) error {
	f.done = append(f.done, id)
	return nil
}

func (f *fakeIdem) Unmark(_ context.Context, id string) error {
	delete(f.marked, id)
	f.unmarked = append(f.unmarked, id)
	return nil
}

type recordingHandler struct {
	got []model.ProfileCreatedMessage
	err error
}

func (h *recordingHandler) HandleProfileCreated(_ context.Context, msg model.ProfileCreatedMessage) error {
	h.got = append(h.got, msg)
	return h.err
}

func body(t *testing.T, msg model.ProfileCreatedMessage) []byte {
	t.Helper()
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestProfileCreatedHandlerIdempotent(t *testing.T) {
	h := &recordingHandler{}
	idem := newFakeIdem()
	handle := NewProfileCreatedHandler(h, idem)

	msg := NewProfileCreatedMessage(&model.Profile{ID: "42", Name: "Alex"})
	msg.MessageID = "m1"

	if err := handle(context.Background(), body(t, msg)); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	err := handle(context.Background(), body(t, msg))
	if !pkgerrors.IsSkipMessageError(err) {
		t.Fatalf("second delivery should be skipped, got %v", err)
	}
	if len(h.got) != 1 || h.got[0].Profile.Name != "Alex" {
		t.Fatalf("handler calls = %+v", h.got)
	}
	if len(idem.done) != 1 {
		t.Fatalf("done = %v", idem.done)
	}
}

func TestProfileCreatedHandlerFailureUnmarks(t *testing.T) {
	h := &recordingHandler{err: errors.New("redis down")}
	idem := newFakeIdem()
	handle := NewProfileCreatedHandler(h, idem)

	msg := model.ProfileCreatedMessage{MessageID: "m2", ProfileID: "42"}
	if err := handle(context.Background(), body(t, msg)); err == nil || pkgerrors.IsSkipMessageError(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
	if len(idem.unmarked) != 1 || idem.marked["m2"] {
		t.Fatal("failed message should be unmarked for redelivery")
	}
}

func TestProfileCreatedHandlerBadBody(t *testing.T) {
	handle := NewProfileCreatedHandler(&recordingHandler{}, newFakeIdem())

	for _, b := range [][]byte{[]byte("{"), []byte(`{"message_id":"x"}`)} {
		if err := handle(context.Background(), b); !pkgerrors.IsSkipMessageError(err) {
			t.Errorf("body %s: expected skip, got %v", b, err)
		}
	}
}

func TestProfileCreatedHandlerMarkErrorStillProcesses(t *testing.T) {
	h := &recordingHandler{}
	idem := newFakeIdem()
	idem.markErr = errors.New("unavailable")

	handle := NewProfileCreatedHandler(h, idem)
	if err := handle(context.Background(), body(t, model.ProfileCreatedMessage{MessageID: "m3", ProfileID: "1"})); err != nil {
		t.Fatal(err)
	}
	if len(h.got) != 1 {
		t.Fatal("handler should run when idempotency check fails")
	}
}
