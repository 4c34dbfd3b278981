package planio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hubastard/blueprint/editor"
	"github.com/hubastard/blueprint/editor/scene"
)

func TestBindRoundTrip(t *testing.T) {
	ctx := editor.NewContext()
	Bind(ctx)

	ctx.Scene.Add(scene.NewWall(0, 0, 100, 0))
	blob := ctx.EncodeState()
	if blob == nil {
		t.Fatal("encode returned nil")
	}

	ctx.Scene.Clear()
	if err := ctx.RestoreState(blob); err != nil {
		t.Fatal(err)
	}
	if ctx.Scene.Len() != 1 {
		t.Fatalf("scene len = %d", ctx.Scene.Len())
	}

	if err := ctx.RestoreState([]byte("not json")); err == nil {
		t.Error("garbage snapshot restored without error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	src := populated()
	src.View.Zoom = 2
	if err := Save(src, path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	dst := editor.NewContext()
	Bind(dst)
	dst.History.Push([]byte("stale"))
	dst.Scene.Add(scene.NewWall(0, 0, 1, 1))
	dst.Scene.SetSelection(dst.Scene.Objects()[0].ObjectID())

	if err := Load(dst, path); err != nil {
		t.Fatal(err)
	}
	if dst.Scene.Len() != src.Scene.Len() {
		t.Errorf("scene len = %d", dst.Scene.Len())
	}
	if dst.View.Zoom != 2 {
		t.Errorf("view zoom = %v", dst.View.Zoom)
	}
	if len(dst.Scene.Selection()) != 0 {
		t.Error("selection survived load")
	}
	if dst.History.CanUndo() {
		t.Error("history survived load")
	}
}

func TestLoadFailureLeavesStateUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := editor.NewContext()
	ctx.Scene.Add(scene.NewWall(0, 0, 100, 0))
	if err := Load(ctx, path); err == nil {
		t.Fatal("broken file loaded")
	}
	if ctx.Scene.Len() != 1 {
		t.Error("failed load clobbered the scene")
	}

	if err := Load(ctx, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := Save(populated(), path); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != FormatVersion || len(doc.Objects) != 5 || doc.View == nil {
		t.Errorf("doc = version %d, %d objects, view %v", doc.Version, len(doc.Objects), doc.View)
	}
}

func TestAutosaverDebounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.json")
	a := NewAutosaver(path, 30*time.Millisecond)

	a.Schedule([]byte("first"))
	a.Schedule([]byte("second")) // replaces the pending blob

	deadline := time.Now().Add(2 * time.Second)
	for {
		if b, err := os.ReadFile(path); err == nil {
			if string(b) != "second" {
				t.Fatalf("wrote %q", b)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("autosave never written")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAutosaverFlushAndStop(t *testing.T) {
	dir := t.TempDir()

	flushed := filepath.Join(dir, "flushed.json")
	a := NewAutosaver(flushed, time.Hour)
	a.Schedule([]byte("pending"))
	a.Flush()
	if b, err := os.ReadFile(flushed); err != nil || string(b) != "pending" {
		t.Errorf("flush wrote %q, %v", b, err)
	}
	// flushing again with nothing pending is a no-op
	a.Flush()

	stopped := filepath.Join(dir, "stopped.json")
	b := NewAutosaver(stopped, 10*time.Millisecond)
	b.Schedule([]byte("doomed"))
	b.Stop()
	time.Sleep(50 * time.Millisecond)
	if _, err := os.Stat(stopped); !os.IsNotExist(err) {
		t.Error("stop did not drop the pending write")
	}
}

func TestAutosaverIgnoresNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.json")
	a := NewAutosaver(path, 10*time.Millisecond)
	a.Schedule(nil)
	time.Sleep(50 * time.Millisecond)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("nil blob written")
	}
}
