package export

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"DrawTreeOrnament/internal/state"
)

func TestWritePDF(t *testing.T) {
	ornaments := []state.Ornament{
		{ID: "a", Slot: 0, Author: "alice", Image: solidPNG(t, color.NRGBA{B: 0xFF, A: 0xFF}, 8, 8)},
		{ID: "b", Slot: 1, Author: "bob", Image: []byte("broken")},
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, "Test", ornaments); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(buf.Len(), 8)])
	}
}

func TestExportPDFWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.pdf")
	if err := ExportPDF(path, "", nil); err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty pdf")
	}
}
