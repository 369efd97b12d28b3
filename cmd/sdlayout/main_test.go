package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/sdfont/layout"
	"github.com/gogpu/sdfont/uniform"
	"github.com/gogpu/sdfont/vertex"
)

func TestPrintRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := printRecords(&buf, []layout.Record{vertex.Record, uniform.SceneRecord}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"VertexInPositionUV", "stride 32", "UniformPerScene", "stride 160", "num_lights", "@144", "(reserved)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintFunctions(t *testing.T) {
	var buf bytes.Buffer
	printFunctions(&buf)
	if !strings.Contains(buf.String(), "2 SMOOTH_STEP") || !strings.Contains(buf.String(), "6 HALO") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
