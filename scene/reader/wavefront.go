package reader

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/log"
	"github.com/achilleasa/prism/types"
)

// Parses triangle geometry out of wavefront obj files. Only vertex
// positions and faces are used; normals, texture coordinates and materials
// are skipped since every mesh gets a single surface color.
type wavefrontMeshReader struct {
	logger log.Logger

	vertexList []types.Vec3
	triangles  [][3]types.Vec3

	// An error stack that provides additional error information when
	// obj files include other files.
	errStack []string
}

func newWavefrontReader() *wavefrontMeshReader {
	return &wavefrontMeshReader{
		logger: log.New("wavefront reader"),
	}
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontMeshReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n"))
	}

	return errors.New(strings.Trim(errMsg, "\n"))
}

// Push a frame to the error stack.
func (r *wavefrontMeshReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontMeshReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse wavefront object format.
func (r *wavefrontMeshReader) parse(res *asset.Resource) error {
	var lineNum int

	// Included files use 1-based indices relative to their own vertex
	// list, so track where it starts.
	relVertexOffset := len(r.vertexList)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "call"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [call]", res.Path(), lineNum))
			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "f":
			tris, err := r.parseFace(lineTokens, relVertexOffset)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.triangles = append(r.triangles, tris...)
		case "vn", "vt", "g", "o", "s", "mtllib", "usemtl":
		default:
			r.logger.Debugf("[%s: %d] skipping unsupported command %q", res.Path(), lineNum, lineTokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, "%s", err.Error())
	}
	return nil
}

// Parse face definition. Each face argument is a slash-separated index
// tuple whose first element is the vertex index:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate an offset off the end
// of the vertex list. Faces with more than 3 vertices are triangulated as a
// fan around the first vertex.
func (r *wavefrontMeshReader) parseFace(lineTokens []string, relVertexOffset int) ([][3]types.Vec3, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	vertices := make([]types.Vec3, len(lineTokens)-1)
	for arg := range vertices {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[vOffset]
	}

	tris := make([][3]types.Vec3, 0, len(vertices)-2)
	for idx := 1; idx < len(vertices)-1; idx++ {
		tris = append(tris, [3]types.Vec3{vertices[0], vertices[idx], vertices[idx+1]})
	}
	return tris, nil
}

// Given an index for a face coord calculate the proper offset into the coord
// list. Positive indices are relative to relOffset; negative indices
// reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
