package tasks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minepkg/openlauncher/internals/fetch"
	"github.com/minepkg/openlauncher/internals/merrors"
)

type fakeFetcher struct {
	calls int
	data  []byte
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func (f *fakeFetcher) FetchTo(ctx context.Context, url string, path string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, f.data, 0644)
}

func TestModInstall_existingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "fabric-api.jar")
	if err := os.WriteFile(target, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}
	before, _ := os.Stat(target)

	f := &fakeFetcher{data: []byte("new")}
	status, err := NewModInstall(dir, Release{URL: "https://example.com/fabric-api.jar"}, "fabric-api", f).Install(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if status != InstallSkipped {
		t.Errorf("status = %d, want InstallSkipped", status)
	}
	if f.calls != 0 {
		t.Errorf("fetcher was called %d times, want 0", f.calls)
	}

	content, _ := os.ReadFile(target)
	after, _ := os.Stat(target)
	if string(content) != "original" || !after.ModTime().Equal(before.ModTime()) {
		t.Error("existing file was modified")
	}
}

func TestModInstall(t *testing.T) {
	data := []byte("mod content")
	sum := sha256.Sum256(data)

	tests := []struct {
		name    string
		release Release
		fetcher *fakeFetcher
		// wantErr is a pointer to the expected cause type
		wantErr any
	}{
		{
			name:    "fetches missing file",
			release: Release{URL: "https://example.com/mod.jar"},
			fetcher: &fakeFetcher{data: data},
		},
		{
			name:    "checks sha256",
			release: Release{URL: "https://example.com/mod.jar", Sha256: hex.EncodeToString(sum[:])},
			fetcher: &fakeFetcher{data: data},
		},
		{
			name:    "fetch errors are returned",
			release: Release{URL: "https://example.com/mod.jar"},
			fetcher: &fakeFetcher{err: &fetch.StatusError{URL: "https://example.com/mod.jar", Status: "404 Not Found"}},
			wantErr: new(*fetch.StatusError),
		},
		{
			name:    "wrong sha256",
			release: Release{URL: "https://example.com/mod.jar", Sha256: "abc"},
			fetcher: &fakeFetcher{data: data},
			wantErr: new(*fetch.ErrInvalidSha),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "mods")
			task := NewModInstall(dir, tt.release, "mod", tt.fetcher)
			status, err := task.Install(context.Background())

			if tt.wantErr == nil {
				if err != nil {
					t.Fatal(err)
				}
				if status != Installed {
					t.Errorf("status = %d, want Installed", status)
				}
				content, err := os.ReadFile(filepath.Join(dir, "mod.jar"))
				if err != nil || string(content) != string(data) {
					t.Errorf("target content = %q (%v)", content, err)
				}
				return
			}

			var installErr *merrors.InstallFailedError
			if !errors.As(err, &installErr) {
				t.Fatalf("expected an InstallFailedError, got %v", err)
			}
			if installErr.Target != task.Target() || installErr.URL != tt.release.URL {
				t.Errorf("error lacks context: %+v", installErr)
			}
			if !errors.As(err, tt.wantErr) {
				t.Errorf("expected %T to be wrapped, got %v", tt.wantErr, err)
			}
			if merrors.KindOf(err) != merrors.KindInstall {
				t.Errorf("KindOf() = %s, want install", merrors.KindOf(err))
			}
			if _, statErr := os.Stat(task.Target()); !os.IsNotExist(statErr) {
				t.Error("failed install left a file behind")
			}
		})
	}
}

// recorder records the stages it was called in
type recorder struct {
	name  string
	calls *[]string
	err   error
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) PreLaunch(ctx context.Context, c *PreLaunchContext) error {
	*r.calls = append(*r.calls, r.name+":pre")
	return r.err
}

// postOnly only implements one stage
type postOnly struct {
	calls *[]string
	code  int
}

func (p *postOnly) Name() string { return "post" }

func (p *postOnly) PostLaunch(ctx context.Context, c *PostLaunchContext) error {
	*p.calls = append(*p.calls, "post:post")
	p.code = c.ExitCode
	return nil
}

func TestRunner(t *testing.T) {
	var calls []string
	failing := errors.New("boom")
	post := &postOnly{calls: &calls}
	r := NewRunner(
		&recorder{name: "a", calls: &calls, err: failing},
		post,
	)
	r.Add(&recorder{name: "b", calls: &calls})
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	ctx := context.Background()

	pre := r.PreLaunch(ctx, &PreLaunchContext{})
	if len(pre) != 2 {
		t.Fatalf("expected 2 pre-launch results, got %d", len(pre))
	}
	if pre[0].Task != "a" || pre[0].Err != failing || pre[1].Task != "b" || pre[1].Err != nil {
		t.Errorf("unexpected results %+v", pre)
	}
	if !errors.Is(Err(pre), failing) {
		t.Errorf("Err() = %v", Err(pre))
	}

	if launch := r.Launch(ctx, &LaunchContext{}); len(launch) != 0 {
		t.Errorf("no task implements launch, got %+v", launch)
	}
	if Err(nil) != nil {
		t.Error("Err(nil) should be nil")
	}

	postResults := r.PostLaunch(ctx, &PostLaunchContext{ExitCode: 3})
	if len(postResults) != 1 || postResults[0].Stage != StagePostLaunch || post.code != 3 {
		t.Errorf("unexpected post-launch results %+v", postResults)
	}

	want := []string{"a:pre", "b:pre", "post:post"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls = %v, want %v", calls, want)
			break
		}
	}
}

func TestModInstall_isLaunchTask(t *testing.T) {
	f := &fakeFetcher{data: []byte("x")}
	dir := t.TempDir()
	r := NewRunner(NewModInstall(dir, Release{URL: "https://example.com/a.jar"}, "a.jar", f))

	if res := r.PreLaunch(context.Background(), &PreLaunchContext{}); len(res) != 0 {
		t.Errorf("mod install should not run pre-launch")
	}
	res := r.Launch(context.Background(), &LaunchContext{})
	if err := Err(res); err != nil || len(res) != 1 {
		t.Fatalf("launch results %+v", res)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.jar")); err != nil {
		t.Error(err)
	}
}
