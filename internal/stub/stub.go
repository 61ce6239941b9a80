// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stub emits the fixed placeholder sources that the tracing build
// rules reference when L0/OCL tracing is compiled out.
package stub

import (
	"fmt"
	"os"
	"strings"

	"github.com/qiniu/x/log"
)

// Generator produces one fixed file.
type Generator struct {
	// Name is the command name the generator is exposed under.
	Name string
	// Short describes the generated file.
	Short string

	render func() []byte
}

// Content returns the bytes the generator writes.
func (g Generator) Content() []byte {
	return g.render()
}

// TracingIDs are the API_TRACING_ID enumerators, in declaration order.
var TracingIDs = []string{
	"UnknownTracingId",
	"DummyTracingId",
	"XptiTracingId",
	"IttTracingId",
}

const commonHeaderGuard = "PTI_TOOLS_COMMON_H_"

var (
	// TracingCallbacks stands in for the generated tracing callback source.
	TracingCallbacks = Generator{
		Name:   "gen-tracing-callbacks",
		Short:  "Generate the tracing callbacks stub",
		render: renderCallbacks,
	}

	// TracingCommonHeader declares API_TRACING_ID with only the IDs that
	// survive without L0/OCL.
	TracingCommonHeader = Generator{
		Name:   "gen-tracing-common-header",
		Short:  "Generate the tracing common header stub",
		render: renderCommonHeader,
	}
)

func renderCallbacks() []byte {
	return []byte("//\n" +
		"// GENERATED FILE - DO NOT EDIT\n" +
		"// L0/OCL functionality removed.\n" +
		"//\n\n")
}

func renderCommonHeader() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "#ifndef %s\n", commonHeaderGuard)
	fmt.Fprintf(&b, "#define %s\n\n", commonHeaderGuard)
	b.WriteString("typedef enum {\n")
	for _, id := range TracingIDs {
		fmt.Fprintf(&b, "  %s,\n", id)
	}
	b.WriteString("} API_TRACING_ID;\n")
	fmt.Fprintf(&b, "\n#endif //%s\n", commonHeaderGuard)
	return []byte(b.String())
}

// Write replaces the file at path with the output of g.
func Write(path string, g Generator) error {
	if err := os.WriteFile(path, g.Content(), 0644); err != nil {
		return fmt.Errorf("%s: %w", g.Name, err)
	}
	log.Debugf("generated %s", path)
	return nil
}
