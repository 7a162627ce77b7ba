package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tmulin/wire/internal/domain"
)

func TestProfileLoader_NoExistingFilesReturnsEmpty(t *testing.T) {
	opener := newFakeOpener()
	parser := &fakeParser{}

	pl := NewProfileLoader("android", opener, parser).
		AddLocation(domain.Location{Base: "/proj", Path: "a/b/c.proto"})

	profile, err := pl.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !profile.Empty() {
		t.Fatalf("expected empty profile, got %d files", profile.Len())
	}
	if len(parser.calls) != 0 {
		t.Fatalf("expected parser not to be called")
	}
	want := []string{"a/b/android.wire", "a/android.wire", "android.wire"}
	if got := opener.roots["/proj"].probed; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected probes %v, got %v", want, got)
	}
}

func TestProfileLoader_NothingRegistered(t *testing.T) {
	opener := newFakeOpener()
	profile, err := NewProfileLoader("android", opener, &fakeParser{}).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !profile.Empty() || len(opener.opens) != 0 {
		t.Fatalf("expected no work for an empty loader")
	}
}

func TestProfileLoader_ArchiveOpenedAndClosedOnce(t *testing.T) {
	opener := newFakeOpener()
	opener.root("protos.zip", map[string]string{"x/android.wire": "x"})

	pl := NewProfileLoader("android", opener, &fakeParser{}).
		AddLocation(domain.Location{Base: "protos.zip", Path: "x/a.proto"}).
		AddLocation(domain.Location{Base: "protos.zip", Path: "y/b.proto"})

	profile, err := pl.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Len() != 1 {
		t.Fatalf("expected one document, got %d", profile.Len())
	}
	got := profile.Files[0].Location
	if got.Base != "protos.zip" || got.Path != "x/android.wire" {
		t.Fatalf("unexpected location %v", got)
	}
	if n := opener.openCount("protos.zip"); n != 1 {
		t.Fatalf("expected archive opened once, got %d", n)
	}
	if n := opener.closeCount("protos.zip"); n != 1 {
		t.Fatalf("expected archive closed once, got %d", n)
	}
	// x/android.wire, android.wire, y/android.wire
	if probes := opener.roots["protos.zip"].probed; len(probes) != 3 {
		t.Fatalf("expected 3 probes, got %v", probes)
	}
}

func TestProfileLoader_RoundTripKeepsCandidateOrder(t *testing.T) {
	opener := newFakeOpener()
	opener.root("/proj", map[string]string{
		"a/b/android.wire": "ab",
		"a/android.wire":   "a",
		"android.wire":     "root",
		"z/android.wire":   "z",
	})
	opener.root("libs.zip", map[string]string{
		"android.wire": "lib",
	})

	pl := NewProfileLoader("android", opener, &fakeParser{}).
		AddSchema(fakeSchema{
			{Base: "/proj", Path: "a/b/c.proto"},
			{Base: "libs.zip", Path: "q.proto"},
			{Base: "/proj", Path: "z/d.proto"},
		})

	profile, err := pl.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var want []string
	cs := pl.Candidates()
	for _, root := range cs.Roots() {
		for _, p := range cs.Paths(root) {
			want = append(want, root+"|"+p)
		}
	}
	if got := pathsOf(profile); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got, want := opener.closes, []string{"libs.zip", "/proj"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected closes in reverse order %v, got %v", want, got)
	}
}

func TestProfileLoader_RegistrationIsIdempotent(t *testing.T) {
	loc := domain.Location{Base: "/proj", Path: "a/b/c.proto"}

	once := NewProfileLoader("android", newFakeOpener(), &fakeParser{}).AddLocation(loc)
	twice := NewProfileLoader("android", newFakeOpener(), &fakeParser{}).
		AddLocation(loc).
		AddSchema(fakeSchema{loc})

	a, b := once.Candidates(), twice.Candidates()
	if !reflect.DeepEqual(a.Roots(), b.Roots()) || !reflect.DeepEqual(a.Paths("/proj"), b.Paths("/proj")) {
		t.Fatalf("expected identical candidate sets")
	}
}

func TestProfileLoader_ReadFailureNamesPathAndRoot(t *testing.T) {
	opener := newFakeOpener()
	opener.root("first.zip", map[string]string{"android.wire": "ok"})
	bad := opener.root("/proj", nil)
	bad.readErrs = map[string]error{"a/android.wire": errBoom}

	parser := &fakeParser{}
	pl := NewProfileLoader("android", opener, parser).
		AddLocation(domain.Location{Base: "first.zip", Path: "x.proto"}).
		AddLocation(domain.Location{Base: "/proj", Path: "a/c.proto"})

	profile, err := pl.Load(context.Background())
	if err == nil {
		t.Fatal("expected read failure")
	}
	if !profile.Empty() {
		t.Fatalf("expected no partial result")
	}
	if !domain.IsKind(err, domain.KindReadFailure) {
		t.Fatalf("expected %s, got %v", domain.KindReadFailure, err)
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	var oe *domain.OpError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OpError, got %T", err)
	}
	if oe.Root != "/proj" || oe.Path != "/proj!/a/android.wire" {
		t.Fatalf("unexpected root/path %q %q", oe.Root, oe.Path)
	}
	if opener.closeCount("first.zip") != 1 || opener.closeCount("/proj") != 1 {
		t.Fatalf("expected every opened root to be released, got %v", opener.closes)
	}
}

func TestProfileLoader_StatFailureIsReadFailure(t *testing.T) {
	opener := newFakeOpener()
	r := opener.root("/proj", nil)
	r.statErrs = map[string]error{"android.wire": errBoom}

	_, err := NewProfileLoader("android", opener, &fakeParser{}).
		AddLocation(domain.Location{Base: "/proj", Path: "c.proto"}).
		Load(context.Background())
	if !domain.IsKind(err, domain.KindReadFailure) {
		t.Fatalf("expected read failure, got %v", err)
	}
}

func TestProfileLoader_OpenRootFailure(t *testing.T) {
	opener := newFakeOpener()
	opener.root("good", map[string]string{"android.wire": "g"})
	opener.openErr["bad.zip"] = errBoom

	_, err := NewProfileLoader("android", opener, &fakeParser{}).
		AddLocation(domain.Location{Base: "good", Path: "a.proto"}).
		AddLocation(domain.Location{Base: "bad.zip", Path: "b.proto"}).
		Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsKind(err, domain.KindReadFailure) {
		t.Fatalf("expected read failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad.zip") {
		t.Fatalf("expected root in error, got %v", err)
	}
	if opener.closeCount("good") != 1 {
		t.Fatalf("expected earlier root released")
	}
}

func TestProfileLoader_ParseErrorPropagatesUnchanged(t *testing.T) {
	opener := newFakeOpener()
	opener.root("/proj", map[string]string{
		"a/android.wire": "reject",
		"android.wire":   "ok",
	})

	parser := &fakeParser{}
	_, err := NewProfileLoader("android", opener, parser).
		AddLocation(domain.Location{Base: "/proj", Path: "a/c.proto"}).
		Load(context.Background())

	var pe *domain.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T %v", err, err)
	}
	if _, wrapped := err.(*domain.ParseError); !wrapped {
		t.Fatalf("expected parse error not to be wrapped, got %T", err)
	}
	if len(parser.calls) != 1 {
		t.Fatalf("expected loading to stop at the first parse failure")
	}
	if opener.closeCount("/proj") != 1 {
		t.Fatalf("expected root released")
	}
}

func TestProfileLoader_ParserReceivesRootAndCandidatePath(t *testing.T) {
	opener := newFakeOpener()
	opener.root("/proj", map[string]string{"a/android.wire": "p"})
	parser := &fakeParser{}

	_, err := NewProfileLoader("android", opener, parser).
		AddLocation(domain.Location{Base: "/proj", Path: "a/c.proto", Line: 4}).
		Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []domain.Location{{Base: "/proj", Path: "a/android.wire"}}; !reflect.DeepEqual(parser.calls, want) {
		t.Fatalf("expected %v, got %v", want, parser.calls)
	}
}

func TestProfileLoader_CloseFailureFailsLoad(t *testing.T) {
	opener := newFakeOpener()
	r := opener.root("protos.zip", map[string]string{"android.wire": "p"})
	r.closeErr = errBoom

	profile, err := NewProfileLoader("android", opener, &fakeParser{}).
		AddLocation(domain.Location{Base: "protos.zip", Path: "a.proto"}).
		Load(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected close error, got %v", err)
	}
	var oe *domain.OpError
	if !errors.As(err, &oe) || oe.Op != "profile.close" || oe.Root != "protos.zip" {
		t.Fatalf("expected profile.close error naming the root, got %#v", err)
	}
	if !profile.Empty() {
		t.Fatalf("expected no result when release fails")
	}
}

func TestProfileLoader_ContextCancelled(t *testing.T) {
	opener := newFakeOpener()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProfileLoader("android", opener, &fakeParser{}).
		AddLocation(domain.Location{Base: "protos.zip", Path: "a.proto"}).
		Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if opener.closeCount("protos.zip") != 1 {
		t.Fatalf("expected root released after cancellation")
	}
}

func TestProfileLoader_SameRelativePathUnderTwoRoots(t *testing.T) {
	opener := newFakeOpener()
	opener.root("a", map[string]string{"android.wire": "from-a"})
	opener.root("b", map[string]string{"android.wire": "from-b"})

	profile, err := NewProfileLoader("android", opener, &fakeParser{}).
		AddLocation(domain.Location{Base: "a", Path: "x.proto"}).
		AddLocation(domain.Location{Base: "b", Path: "x.proto"}).
		Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Len() != 2 {
		t.Fatalf("expected both files kept, got %d", profile.Len())
	}
	if profile.Files[0].PackageName != "from-a" || profile.Files[1].PackageName != "from-b" {
		t.Fatalf("unexpected order %v", pathsOf(profile))
	}
}
