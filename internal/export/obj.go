// Package export writes generated fields to interchange formats for
// inspection in external tools.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/meadow/internal/grass"
)

// WriteOBJ writes the mesh as Wavefront OBJ. Vertex colors follow the
// common "v x y z r g b" extension. normals may be nil; when present it must
// hold three floats per vertex.
func WriteOBJ(w io.Writer, name string, mesh *grass.Mesh, normals []float32) error {
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}
	if normals != nil && len(normals) != len(mesh.Positions) {
		return fmt.Errorf("normals length %d, want %d", len(normals), len(mesh.Positions))
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d blades, %d vertices, %d triangles\n", mesh.BladeCount(), mesh.VertexCount(), mesh.TriangleCount())
	fmt.Fprintf(bw, "o %s\n", name)

	for i := range mesh.VertexCount() {
		p := mesh.Positions[i*3 : i*3+3]
		c := mesh.Colors[i*3 : i*3+3]
		fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", p[0], p[1], p[2], c[0], c[1], c[2])
	}
	for i := range mesh.VertexCount() {
		fmt.Fprintf(bw, "vt %g %g\n", mesh.UVs[i*2], mesh.UVs[i*2+1])
	}
	for i := 0; i < len(normals); i += 3 {
		fmt.Fprintf(bw, "vn %g %g %g\n", normals[i], normals[i+1], normals[i+2])
	}

	// OBJ indices are 1-based.
	for t := 0; t < len(mesh.Indices); t += 3 {
		a, b, c := mesh.Indices[t]+1, mesh.Indices[t+1]+1, mesh.Indices[t+2]+1
		if normals != nil {
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		} else {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		}
	}
	return bw.Flush()
}

// SaveOBJ writes the mesh to path, creating parent directories.
func SaveOBJ(path string, mesh *grass.Mesh, normals []float32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	if err := WriteOBJ(f, name, mesh, normals); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
