package models

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/tuikart/pkg/math3d"
)

// OBJFace is a single polygon face from a Wavefront file, carrying one
// index per corner into the mesh's positions, and optionally into its
// texture coordinates and normals. TexCoordIndices and NormalIndices are
// nil when the face's vertex/vertex tokens omitted them.
type OBJFace struct {
	VertexIndices   []int
	TexCoordIndices []int
	NormalIndices   []int
}

// OBJMesh is the raw, index-based representation produced by LoadOBJ: the
// three attribute sequences as they appeared in the file, plus the faces
// that reference them. It mirrors the file format directly rather than
// the flattened per-corner Mesh used for rendering; call ToMesh to get a
// renderable triangle mesh out of it.
type OBJMesh struct {
	Positions []math3d.Vec3
	TexCoords []math3d.Vec2
	Normals   []math3d.Vec3
	Faces     []OBJFace
}

// LoadOBJ loads a minimal subset of the Wavefront OBJ format: "v", "vt",
// "vn" and "f" lines. Any other line (comments, "o", "g", "mtllib", ...)
// is ignored. Face tokens may be "v", "v/vt" or "v/vt/vn"; 1-based file
// indices are rebased to 0-based. If the file cannot be opened, LoadOBJ
// returns an empty OBJMesh and a nil error, matching the original parser's
// contract of silently yielding nothing on a missing asset.
func LoadOBJ(path string) (*OBJMesh, error) {
	mesh := &OBJMesh{}

	f, err := os.Open(path)
	if err != nil {
		return mesh, nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			mesh.Positions = append(mesh.Positions, parseVec3(fields[1:]))
		case "vt":
			mesh.TexCoords = append(mesh.TexCoords, parseVec2(fields[1:]))
		case "vn":
			mesh.Normals = append(mesh.Normals, parseVec3(fields[1:]))
		case "f":
			mesh.Faces = append(mesh.Faces, parseFace(fields[1:]))
		}
	}

	return mesh, scanner.Err()
}

// parseVec3 mirrors the cascading-failure behavior of chained
// istream::operator>> extraction: once one token fails to parse, the
// remaining fields on the line are left at their zero value rather than
// parsed independently.
func parseVec3(fields []string) math3d.Vec3 {
	var v math3d.Vec3
	var err error
	if len(fields) > 0 {
		if v.X, err = strconv.ParseFloat(fields[0], 64); err != nil {
			return math3d.Vec3{}
		}
	}
	if len(fields) > 1 {
		if v.Y, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return math3d.Vec3{X: v.X}
		}
	}
	if len(fields) > 2 {
		if v.Z, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return math3d.Vec3{X: v.X, Y: v.Y}
		}
	}
	return v
}

// parseVec2 mirrors the same cascading-failure behavior as parseVec3.
func parseVec2(fields []string) math3d.Vec2 {
	var v math3d.Vec2
	var err error
	if len(fields) > 0 {
		if v.X, err = strconv.ParseFloat(fields[0], 64); err != nil {
			return math3d.Vec2{}
		}
	}
	if len(fields) > 1 {
		if v.Y, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return math3d.Vec2{X: v.X}
		}
	}
	return v
}

// parseFace parses the corner tokens of an "f" line, each of the form
// "v", "v/vt" or "v/vt/vn", rebasing OBJ's 1-based indices to 0-based.
func parseFace(tokens []string) OBJFace {
	var face OBJFace
	for _, tok := range tokens {
		parts := strings.Split(tok, "/")

		vIdx, _ := strconv.Atoi(parts[0])
		face.VertexIndices = append(face.VertexIndices, vIdx-1)

		if len(parts) > 1 && parts[1] != "" {
			vtIdx, _ := strconv.Atoi(parts[1])
			face.TexCoordIndices = append(face.TexCoordIndices, vtIdx-1)
		}
		if len(parts) > 2 && parts[2] != "" {
			vnIdx, _ := strconv.Atoi(parts[2])
			face.NormalIndices = append(face.NormalIndices, vnIdx-1)
		}
	}
	return face
}

// ToMesh flattens the raw OBJMesh into a per-corner Mesh suitable for the
// rasterizer pipeline, triangulating any face with more than three
// corners as a fan around its first vertex. Faces are assigned no
// material (-1); normals default to zero when the file carried none,
// letting the caller fall back to CalculateNormals/CalculateSmoothNormals.
func (o *OBJMesh) ToMesh(name string) *Mesh {
	mesh := NewMesh(name)

	corner := func(face OBJFace, i int) MeshVertex {
		var mv MeshVertex
		if vi := face.VertexIndices[i]; vi >= 0 && vi < len(o.Positions) {
			mv.Position = o.Positions[vi]
		}
		if i < len(face.TexCoordIndices) {
			if ti := face.TexCoordIndices[i]; ti >= 0 && ti < len(o.TexCoords) {
				mv.UV = o.TexCoords[ti]
			}
		}
		if i < len(face.NormalIndices) {
			if ni := face.NormalIndices[i]; ni >= 0 && ni < len(o.Normals) {
				mv.Normal = o.Normals[ni]
			}
		}
		return mv
	}

	for _, face := range o.Faces {
		if len(face.VertexIndices) < 3 {
			continue
		}
		base := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, corner(face, 0))
		for i := 1; i+1 < len(face.VertexIndices); i++ {
			mesh.Vertices = append(mesh.Vertices, corner(face, i), corner(face, i+1))
			idx := len(mesh.Vertices)
			mesh.Faces = append(mesh.Faces, Face{
				V:        [3]int{base, idx - 2, idx - 1},
				Material: -1,
			})
		}
	}

	mesh.CalculateBounds()
	return mesh
}
