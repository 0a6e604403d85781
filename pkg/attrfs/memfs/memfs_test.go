package memfs_test

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/attrfs/pkg/attrfs/attr"
	"github.com/arthur-debert/attrfs/pkg/attrfs/core"
	"github.com/arthur-debert/attrfs/pkg/attrfs/identity"
	"github.com/arthur-debert/attrfs/pkg/attrfs/memfs"
	"github.com/arthur-debert/attrfs/pkg/attrfs/node"
	"github.com/arthur-debert/attrfs/pkg/attrfs/perms"
)

var testTime = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func newTestFS(t *testing.T, opts ...memfs.Option) *memfs.FS {
	t.Helper()
	registry, err := attr.NewRegistry(zerolog.Nop(),
		attr.NewBasicProvider(func() time.Time { return testTime }),
		attr.NewOwnerProvider(),
		attr.NewPosixProvider(),
		attr.NewDosProvider(),
	)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	opts = append([]memfs.Option{memfs.WithClock(func() time.Time { return testTime })}, opts...)
	fsys, err := memfs.New(registry, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return fsys
}

func TestCreateSeedsDefaults(t *testing.T) {
	fsys := newTestFS(t)

	if err := fsys.Create("file.txt", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v, ok, err := fsys.GetAttribute("file.txt", "posix:group")
	if err != nil || !ok {
		t.Fatalf("GetAttribute failed: %v (present=%v)", err, ok)
	}
	if v != identity.Group("group") {
		t.Errorf("expected default group, got %v", v)
	}

	snapshot, err := fsys.ReadAttributes("file.txt", "basic")
	if err != nil {
		t.Fatalf("ReadAttributes failed: %v", err)
	}
	basic := snapshot.(*attr.BasicAttributes)
	if !basic.IsRegular() || basic.IsDir() {
		t.Error("expected a regular file")
	}
	if !basic.CreationTime().Equal(testTime) {
		t.Errorf("expected creation time %v, got %v", testTime, basic.CreationTime())
	}
}

func TestCreateWithAttributes(t *testing.T) {
	fsys := newTestFS(t)

	t.Run("permissions allowed", func(t *testing.T) {
		err := fsys.Create("tool", map[string]any{"posix:permissions": "rwxr-xr-x"})
		if err != nil {
			t.Fatalf("Create with permissions failed: %v", err)
		}
		v, _, _ := fsys.GetAttribute("tool", "posix:permissions")
		if got := v.(perms.Set).String(); got != "rwxr-xr-x" {
			t.Errorf("expected rwxr-xr-x, got %s", got)
		}
	})

	t.Run("group rejected", func(t *testing.T) {
		err := fsys.Create("bad", map[string]any{"posix:group": "admins"})
		var restricted *core.CreateRestrictedError
		if !errors.As(err, &restricted) {
			t.Fatalf("expected CreateRestrictedError, got %v", err)
		}
		// The failed create must not leave the file behind.
		if _, _, err := fsys.GetAttribute("bad", "posix:group"); err == nil {
			t.Error("file from failed create still resolvable")
		}
	})

	t.Run("dos flag rejected", func(t *testing.T) {
		err := fsys.Create("bad2", map[string]any{"dos:hidden": true})
		var restricted *core.CreateRestrictedError
		if !errors.As(err, &restricted) {
			t.Fatalf("expected CreateRestrictedError, got %v", err)
		}
	})
}

func TestFilesystemDefaults(t *testing.T) {
	fsys := newTestFS(t, memfs.WithDefaults(map[string]any{
		"posix:group":       "admins",
		"posix:permissions": "rwxr-x---",
	}))

	if err := fsys.Create("file.txt", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v, _, _ := fsys.GetAttribute("file.txt", "posix:group")
	if v != identity.Group("admins") {
		t.Errorf("expected overridden group, got %v", v)
	}
}

func TestMkdirAndNesting(t *testing.T) {
	fsys := newTestFS(t)

	if err := fsys.Mkdir("a", nil); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := fsys.Mkdir("a/b", nil); err != nil {
		t.Fatalf("nested Mkdir failed: %v", err)
	}
	if err := fsys.Create("a/b/c.txt", nil); err != nil {
		t.Fatalf("Create in nested dir failed: %v", err)
	}

	snapshot, err := fsys.ReadAttributes("a/b", "basic")
	if err != nil {
		t.Fatalf("ReadAttributes failed: %v", err)
	}
	if !snapshot.(*attr.BasicAttributes).IsDir() {
		t.Error("expected directory")
	}

	if err := fsys.Create("missing/file", nil); err == nil {
		t.Error("expected error creating under missing directory")
	}
	if err := fsys.Create("a/b", nil); !errors.Is(err, fs.ErrExist) {
		t.Errorf("expected ErrExist, got %v", err)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	fsys := newTestFS(t)

	if err := fsys.Create("notes.txt", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := fsys.WriteFile("notes.txt", []byte("hello attrfs")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fsys.ReadFile("notes.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello attrfs" {
		t.Errorf("unexpected content: %q", data)
	}

	snapshot, _ := fsys.ReadAttributes("notes.txt", "basic")
	if size := snapshot.(*attr.BasicAttributes).Size(); size != 12 {
		t.Errorf("expected size 12, got %d", size)
	}
}

func TestViewSurvivesRename(t *testing.T) {
	fsys := newTestFS(t)

	if err := fsys.Mkdir("dir", nil); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := fsys.Create("file.txt", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v, err := fsys.View("file.txt", "dos")
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	view := v.(*attr.DosView)

	if err := fsys.Rename("file.txt", "dir/renamed.txt"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	// The view was built before the rename; it must address the
	// relocated node.
	if err := view.SetHidden(true); err != nil {
		t.Fatalf("SetHidden after rename failed: %v", err)
	}
	value, ok, err := fsys.GetAttribute("dir/renamed.txt", "dos:hidden")
	if err != nil || !ok {
		t.Fatalf("GetAttribute failed: %v", err)
	}
	if value != true {
		t.Error("write through pre-rename view did not reach the relocated node")
	}
}

func TestViewFailsAfterRemove(t *testing.T) {
	fsys := newTestFS(t)

	if err := fsys.Create("doomed.txt", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	v, err := fsys.View("doomed.txt", "posix")
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	view := v.(*attr.PosixView)

	if err := fsys.Remove("doomed.txt"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := view.ReadAttributes(); !errors.Is(err, node.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	fsys := newTestFS(t)

	t.Run("non-empty directory", func(t *testing.T) {
		if err := fsys.Mkdir("full", nil); err != nil {
			t.Fatalf("Mkdir failed: %v", err)
		}
		if err := fsys.Create("full/child", nil); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := fsys.Remove("full"); err == nil {
			t.Error("expected error removing non-empty directory")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := fsys.Remove("nope"); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected ErrNotExist, got %v", err)
		}
	})
}

func TestSetAttributePath(t *testing.T) {
	fsys := newTestFS(t)

	if err := fsys.Create("file.txt", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Post-creation, creation-restricted attributes are settable.
	if err := fsys.SetAttribute("file.txt", "posix:group", "staff"); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	v, _, _ := fsys.GetAttribute("file.txt", "posix:group")
	if v != identity.Group("staff") {
		t.Errorf("expected staff group, got %v", v)
	}

	// Unknown attribute: silent no-op at every layer.
	if err := fsys.SetAttribute("file.txt", "nonexistent", "x"); err != nil {
		t.Errorf("unknown attribute should be a no-op, got %v", err)
	}
}
