package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "SkiBuddy/pkg/errors"
)

type fakeAuth struct {
	user *User
	err  error
}

func (a fakeAuth) CurrentUser(context.Context) (*User, error) { return a.user, a.err }

type fakeAssets map[string][]byte

func (f fakeAssets) Open(_ context.Context, ref string) ([]byte, error) {
	data, ok := f[ref]
	if !ok {
		return nil, fmt.Errorf("asset %s not found", ref)
	}
	return data, nil
}

type fakeFiles struct {
	failAt int // 第几次调用失败，从 1 开始，0 表示不失败
	calls  int
	paths  []string
	ctypes []string
}

func (f *fakeFiles) Upload(_ context.Context, path string, _ []byte, contentType string) (string, error) {
	f.calls++
	if f.failAt != 0 && f.calls == f.failAt {
		return "", errors.New("storage unavailable")
	}
	f.paths = append(f.paths, path)
	f.ctypes = append(f.ctypes, contentType)
	return "https://cdn.example.com/profile-photos/" + path, nil
}

type fakeProfiles struct {
	err     error
	records []ProfileRecord
}

func (p *fakeProfiles) InsertProfile(_ context.Context, r ProfileRecord) error {
	if p.err != nil {
		return p.err
	}
	p.records = append(p.records, r)
	return nil
}

func newSubmitter(auth Authenticator, files *fakeFiles, profiles *fakeProfiles) *Submitter {
	n := 0
	return &Submitter{
		Auth:     auth,
		Assets:   fakeAssets{"asset:1": []byte("one"), "asset:2": []byte("two")},
		Files:    files,
		Profiles: profiles,
		NewName: func() string {
			n++
			return fmt.Sprintf("img-%d", n)
		},
	}
}

// 场景 A：完整提交
func TestSubmitScenarioA(t *testing.T) {
	files := &fakeFiles{}
	profiles := &fakeProfiles{}
	s := newSubmitter(fakeAuth{user: &User{ID: "u1", Email: "alex@example.com"}}, files, profiles)

	res, err := s.Submit(context.Background(), completeDraft())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Destination != DestinationMain {
		t.Fatalf("destination = %q", res.Destination)
	}
	if len(profiles.records) != 1 {
		t.Fatalf("expected one record, got %d", len(profiles.records))
	}

	r := profiles.records[0]
	if r.ID != "u1" || r.Email != "alex@example.com" || r.Name != "Alex" {
		t.Fatalf("identity fields wrong: %+v", r)
	}
	if r.Birthday != "1999-01-02" {
		t.Fatalf("birthday = %q", r.Birthday)
	}
	if r.YearsSkiing == nil || *r.YearsSkiing != 5 {
		t.Fatalf("years_skiing = %v", r.YearsSkiing)
	}
	if len(r.PhotoReferences) != 1 || r.MainPhotoReference == nil || *r.MainPhotoReference != r.PhotoReferences[0] {
		t.Fatalf("photo references wrong: main=%v all=%v", r.MainPhotoReference, r.PhotoReferences)
	}
	if files.paths[0] != "u1/img-1.jpg" || files.ctypes[0] != PhotoContentType {
		t.Fatalf("upload path=%q type=%q", files.paths[0], files.ctypes[0])
	}
}

// 场景 B：唯一的照片上传失败
func TestSubmitScenarioB(t *testing.T) {
	files := &fakeFiles{failAt: 1}
	profiles := &fakeProfiles{}
	s := newSubmitter(fakeAuth{user: &User{ID: "u1"}}, files, profiles)

	res, err := s.Submit(context.Background(), completeDraft())
	if res != nil {
		t.Fatalf("expected no result, got %+v", res)
	}
	if !errors.Is(err, pkgerrors.OnboardingPhotoUploadFailed) {
		t.Fatalf("expected upload failure, got %v", err)
	}
	var upErr *PhotoUploadError
	if !errors.As(err, &upErr) || upErr.Index != 0 {
		t.Fatalf("expected PhotoUploadError at index 0, got %v", err)
	}
	if len(profiles.records) != 0 {
		t.Fatalf("record written despite upload failure")
	}
}

// 场景 C：没有登录用户
func TestSubmitScenarioC(t *testing.T) {
	files := &fakeFiles{}
	profiles := &fakeProfiles{}
	s := newSubmitter(fakeAuth{}, files, profiles)

	res, err := s.Submit(context.Background(), Draft{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Destination != DestinationSignIn || res.Record != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if files.calls != 0 || len(profiles.records) != 0 {
		t.Fatalf("side effects without user: uploads=%d records=%d", files.calls, len(profiles.records))
	}
}

func TestSubmitAuthError(t *testing.T) {
	s := newSubmitter(fakeAuth{err: errors.New("db down")}, &fakeFiles{}, &fakeProfiles{})
	if _, err := s.Submit(context.Background(), completeDraft()); err == nil {
		t.Fatal("expected error")
	}
}

func TestUploadPhotosStopsAtFirstFailure(t *testing.T) {
	files := &fakeFiles{failAt: 2}
	s := newSubmitter(nil, files, nil)

	_, err := s.UploadPhotos(context.Background(), "u1", []string{"asset:1", "asset:2", "asset:1"})
	var upErr *PhotoUploadError
	if !errors.As(err, &upErr) || upErr.Index != 1 {
		t.Fatalf("expected failure at index 1, got %v", err)
	}
	if files.calls != 2 {
		t.Fatalf("uploads continued after failure, calls=%d", files.calls)
	}
}

func TestUploadPhotosMissingAsset(t *testing.T) {
	files := &fakeFiles{}
	s := newSubmitter(nil, files, nil)

	_, err := s.UploadPhotos(context.Background(), "u1", []string{"asset:1", "asset:gone"})
	if !errors.Is(err, pkgerrors.OnboardingPhotoUploadFailed) {
		t.Fatalf("expected upload failure, got %v", err)
	}
	if files.calls != 1 {
		t.Fatalf("calls=%d", files.calls)
	}
}

func TestUploadPhotosKeepsOrder(t *testing.T) {
	files := &fakeFiles{}
	s := newSubmitter(nil, files, nil)

	refs, err := s.UploadPhotos(context.Background(), "u9", []string{"asset:2", "asset:1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 || !strings.HasSuffix(refs[0], "u9/img-1.jpg") || !strings.HasSuffix(refs[1], "u9/img-2.jpg") {
		t.Fatalf("refs out of order: %v", refs)
	}
}

func TestSubmitInsertFailure(t *testing.T) {
	profiles := &fakeProfiles{err: errors.New("connection reset")}
	s := newSubmitter(fakeAuth{user: &User{ID: "u1"}}, &fakeFiles{}, profiles)

	_, err := s.Submit(context.Background(), completeDraft())
	if !errors.Is(err, pkgerrors.OnboardingProfileSaveFailed) {
		t.Fatalf("expected save failure, got %v", err)
	}
}

func TestSubmitInsertDuplicate(t *testing.T) {
	profiles := &fakeProfiles{err: pkgerrors.ProfileAlreadyExists}
	s := newSubmitter(fakeAuth{user: &User{ID: "u1"}}, &fakeFiles{}, profiles)

	_, err := s.Submit(context.Background(), completeDraft())
	if !errors.Is(err, pkgerrors.ProfileAlreadyExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestBuildRecord(t *testing.T) {
	d := completeDraft()
	d.YearsSkiing = "a lot"

	r := BuildRecord(User{ID: "u1", Email: "e"}, d, "1999-01-02", nil)
	if r.YearsSkiing != nil {
		t.Fatalf("expected nil years, got %d", *r.YearsSkiing)
	}
	if r.MainPhotoReference != nil {
		t.Fatalf("expected nil main photo, got %q", *r.MainPhotoReference)
	}
	if r.PhotoReferences == nil || len(r.PhotoReferences) != 0 {
		t.Fatalf("expected empty references, got %v", r.PhotoReferences)
	}
}
