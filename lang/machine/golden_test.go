package machine_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loxvm/lox/internal/filetest"
	"github.com/loxvm/lox/lang/heap"
	"github.com/loxvm/lox/lang/machine"
)

var updateGolden = flag.Bool("test.update-golden-tests", false, "update lang/machine's testdata/*.want golden files")

// TestGoldenPrograms runs every testdata/*.lox fixture to completion and
// diffs its combined stdout+stderr against the matching testdata/*.lox.want
// golden file, the same fixture/golden-file convention the teacher's own
// tests use via internal/filetest.
func TestGoldenPrograms(t *testing.T) {
	for _, fi := range filetest.SourceFiles(t, "testdata", ".lox") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata", fi.Name()))
			require.NoError(t, err)

			h := heap.New()
			vm := machine.New(h)
			defer vm.Close()
			var out bytes.Buffer
			vm.Stdout = &out
			vm.Stderr = &out
			vm.Interpret(src)

			filetest.DiffOutput(t, fi, out.String(), "testdata", updateGolden)
		})
	}
}
