package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Write encodes the graph as indented JSON to w.
func Write(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding scene graph: %w", err)
	}
	return nil
}

// WriteCompressed encodes the graph as zstd-compressed JSON to w.
func WriteCompressed(w io.Writer, g *Graph) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := Write(zw, g); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flushing zstd stream: %w", err)
	}
	return nil
}

// Export writes the graph to path. A ".zst" suffix selects zstd compression;
// anything else gets plain JSON.
func Export(path string, g *Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating scene file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		return WriteCompressed(f, g)
	}
	return Write(f, g)
}

// Load reads a scene graph exported by Export, transparently decompressing
// ".zst" files.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decoding scene graph: %w", err)
	}
	return &g, nil
}
