package planio

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/hubastard/blueprint/editor"
)

// Bind installs this package's JSON codec as the context's undo codec.
func Bind(ctx *editor.Context) {
	ctx.EncodeState = func() []byte {
		b, err := json.Marshal(Capture(ctx))
		if err != nil {
			slog.Error("encoding snapshot", "err", err)
			return nil
		}
		return b
	}
	ctx.RestoreState = func(b []byte) error {
		var doc Document
		if err := json.Unmarshal(b, &doc); err != nil {
			return fmt.Errorf("decoding snapshot: %w", err)
		}
		Apply(ctx, doc)
		return nil
	}
}

// Save writes the full plan, view included, to path.
func Save(ctx *editor.Context, path string) error {
	b, err := json.MarshalIndent(CaptureFull(ctx), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := writeFileAtomic(path, b); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Info("plan saved", "path", path, "objects", ctx.Scene.Len())
	return nil
}

// Load reads a plan file and replaces the current state. A file that fails
// to parse leaves the editor untouched.
func Load(ctx *editor.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	Apply(ctx, doc)
	ApplyView(ctx, doc)
	ctx.Scene.ClearSelection()
	ctx.History.Reset()
	slog.Info("plan loaded", "path", path, "objects", ctx.Scene.Len())
	return nil
}

// EncodeFull serializes the full plan, view included, for the autosaver.
func EncodeFull(ctx *editor.Context) []byte {
	b, err := json.Marshal(CaptureFull(ctx))
	if err != nil {
		slog.Error("encoding autosave", "err", err)
		return nil
	}
	return b
}

// ReadDocument parses a plan file without applying it, for restore prompts.
func ReadDocument(path string) (Document, error) {
	var doc Document
	b, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// writeFileAtomic writes via a sibling temp file and rename, so a crash
// mid-write never clobbers the previous save.
func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
