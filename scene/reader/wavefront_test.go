package reader

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/types"
)

func mockResource(name, payload string) *asset.Resource {
	return asset.NewResourceFromStream(name, strings.NewReader(payload))
}

func TestVec3Parser(t *testing.T) {
	expError := "unsupported syntax for 'v'; expected 3 arguments; got 0"
	_, err := parseVec3([]string{"v"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseVec3([]string{"v", "not-a-float", "2", "3"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseVec3([]string{"v", "3.14", "0", "0.4"})
	if err != nil {
		t.Fatal(err)
	}

	expVal := types.Vec3{3.14, 0, 0.4}
	if !reflect.DeepEqual(v, expVal) {
		t.Fatalf("expected parsed value to be %v; got %v", expVal, v)
	}
}

func TestSelectFaceCoordIndex(t *testing.T) {
	type spec struct {
		token     string
		listLen   int
		relOffset int
		expIndex  int
		expError  bool
	}
	specs := []spec{
		{"1", 3, 0, 0, false},
		{"3", 3, 0, 2, false},
		{"-1", 3, 0, 2, false},
		{"-3", 3, 0, 0, false},
		{"1", 5, 2, 2, false},
		{"4", 3, 0, -1, true},
		{"0", 3, 0, -1, true},
		{"-4", 3, 0, -1, true},
		{"foo", 3, 0, -1, true},
	}

	for index, s := range specs {
		got, err := selectFaceCoordIndex(s.token, s.listLen, s.relOffset)
		if s.expError {
			if err == nil {
				t.Fatalf("[spec %d] expected an error", index)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if got != s.expIndex {
			t.Fatalf("[spec %d] expected index %d; got %d", index, s.expIndex, got)
		}
	}
}

func TestParseFaces(t *testing.T) {
	payload := `
# a unit quad and a triangle using negative indices
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
usemtl ignored
f 1/1/1 2/1/1 3/1/1 4/1/1
f -3//1 -2//1 -1//1
`
	r := newWavefrontReader()
	if err := r.parse(mockResource("quad.obj", payload)); err != nil {
		t.Fatal(err)
	}

	expTris := [][3]types.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
		{{0, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	}
	if !reflect.DeepEqual(r.triangles, expTris) {
		t.Fatalf("expected triangles %v; got %v", expTris, r.triangles)
	}
}

func TestParseFaceErrors(t *testing.T) {
	specs := []struct {
		payload  string
		expError string
	}{
		{
			"v 0 0 0\nf 1 2\n",
			`[mesh.obj: 2] error: unsupported syntax for "f"; expected at least 3 arguments; got 2`,
		},
		{
			"v 0 0 0\nv 1 0 0\nf 1 2 3\n",
			"[mesh.obj: 3] error: could not parse vertex coord for face argument 2: index out of bounds",
		},
		{
			"v 0 0 0\nf /1 1 1\n",
			"[mesh.obj: 2] error: face argument 0 does not include a vertex index",
		},
		{
			"v 0 0\n",
			"[mesh.obj: 1] error: unsupported syntax for 'v'; expected 3 arguments; got 2",
		},
	}

	for index, s := range specs {
		err := newWavefrontReader().parse(mockResource("mesh.obj", s.payload))
		if err == nil || err.Error() != s.expError {
			t.Fatalf("[spec %d] expected error:\n%s\ngot:\n%v", index, s.expError, err)
		}
	}
}

func TestParseInclude(t *testing.T) {
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/meshes/main.obj":
			w.Write([]byte("v 9 9 9\ncall parts/tri.obj\nf 1 2 3\n"))
		case "/meshes/parts/tri.obj":
			w.Write([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
		case "/meshes/broken.obj":
			w.Write([]byte("call parts/missing.obj\n"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	res, err := asset.NewResource(server.URL+"/meshes/main.obj", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	r := newWavefrontReader()
	if err = r.parse(res); err != nil {
		t.Fatal(err)
	}

	// The included file indexes its own vertices; the trailing face in the
	// parent indexes from the parent's first vertex.
	expTris := [][3]types.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{9, 9, 9}, {0, 0, 0}, {1, 0, 0}},
	}
	if !reflect.DeepEqual(r.triangles, expTris) {
		t.Fatalf("expected triangles %v; got %v", expTris, r.triangles)
	}

	res, err = asset.NewResource(server.URL+"/meshes/broken.obj", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	err = newWavefrontReader().parse(res)
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected a 404 error; got %v", err)
	}
}
