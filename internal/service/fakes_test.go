package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"SkiBuddy/internal/model"
	"SkiBuddy/internal/onboarding"
	pkgerrors "SkiBuddy/pkg/errors"
)

type memWizards struct {
	saved     map[string]onboarding.Wizard
	discarded []string
}

func newMemWizards() *memWizards { return &memWizards{saved: map[string]onboarding.Wizard{}} }

func (m *memWizards) Load(_ context.Context, userID string) (onboarding.Wizard, bool, error) {
	w, ok := m.saved[userID]
	return w, ok, nil
}

func (m *memWizards) Save(_ context.Context, userID string, w onboarding.Wizard) error {
	m.saved[userID] = w
	return nil
}

func (m *memWizards) Discard(_ context.Context, userID string) error {
	delete(m.saved, userID)
	m.discarded = append(m.discarded, userID)
	return nil
}

type memAssets struct {
	data      map[string][]byte
	seq       int
	discarded []string
}

func newMemAssets() *memAssets { return &memAssets{data: map[string][]byte{}} }

func (m *memAssets) Stage(_ context.Context, _ string, data []byte) (string, error) {
	m.seq++
	ref := fmt.Sprintf("asset:%d", m.seq)
	m.data[ref] = data
	return ref, nil
}

func (m *memAssets) Open(_ context.Context, ref string) ([]byte, error) {
	data, ok := m.data[ref]
	if !ok {
		return nil, errors.New("asset expired")
	}
	return data, nil
}

func (m *memAssets) DiscardAll(_ context.Context, userID string) error {
	m.discarded = append(m.discarded, userID)
	return nil
}

type fakeLocks struct {
	held     map[string]bool
	released int
	// acquired 在拿到锁后、返回前调用，用来模拟并发提交
	acquired func(userID string)
}

func newFakeLocks() *fakeLocks { return &fakeLocks{held: map[string]bool{}} }

func (f *fakeLocks) Acquire(_ context.Context, userID string) (func(context.Context) error, bool, error) {
	if f.held[userID] {
		return nil, false, nil
	}
	f.held[userID] = true
	if f.acquired != nil {
		f.acquired(userID)
	}
	return func(context.Context) error {
		delete(f.held, userID)
		f.released++
		return nil
	}, true, nil
}

type fakeUsers struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
	active  []string
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*model.User{}, byEmail: map[string]*model.User{}}
	for _, u := range users {
		f.byID[u.PublicIDString()] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return pkgerrors.EmailAlreadyRegistered
	}
	f.byID[u.PublicIDString()] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, pkgerrors.ErrUserNotFound
}

func (f *fakeUsers) FindByPublicID(_ context.Context, id string) (*model.User, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, pkgerrors.InvalidUserID
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, pkgerrors.ErrUserNotFound
}

func (f *fakeUsers) MarkActive(_ context.Context, id string) error {
	f.active = append(f.active, id)
	if u, ok := f.byID[id]; ok {
		u.Status = model.UserStatusActive
	}
	return nil
}

type fakeFiles struct {
	failAt int // 第几次调用失败，从 1 开始；0 表示不失败
	calls  int
	paths  []string
}

func (f *fakeFiles) Upload(_ context.Context, path string, _ []byte, _ string) (string, error) {
	f.calls++
	if f.failAt == f.calls {
		return "", errors.New("storage unavailable")
	}
	f.paths = append(f.paths, path)
	return "https://cdn.test/profile-photos/" + path, nil
}

type fakeProfiles struct {
	inserted []onboarding.ProfileRecord
	err      error
	existing map[string]*model.Profile
}

func (f *fakeProfiles) InsertProfile(_ context.Context, r onboarding.ProfileRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, r)
	return nil
}

func (f *fakeProfiles) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.existing[id]
	return ok, nil
}

func (f *fakeProfiles) FindByID(_ context.Context, id string) (*model.Profile, error) {
	if p, ok := f.existing[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.ProfileNotFound
}

type fakeEvents struct {
	published []*model.Profile
	err       error
}

func (f *fakeEvents) PublishProfileCreated(_ context.Context, p *model.Profile) error {
	f.published = append(f.published, p)
	return f.err
}

type fakeSource struct {
	data      []byte
	cancelled bool
	err       error
	reads     int
}

func (f *fakeSource) Read(context.Context, onboarding.PickConfig) ([]byte, bool, error) {
	f.reads++
	return f.data, f.cancelled, f.err
}

type fakeTokens struct {
	saved map[string]string
}

func (f *fakeTokens) Save(_ context.Context, userID, rt string, _ time.Duration) error {
	f.saved[userID] = rt
	return nil
}

func (f *fakeTokens) Matches(_ context.Context, userID, rt string) bool {
	return f.saved[userID] == rt
}
