// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import (
	"fmt"
	"strings"
)

// TreePrinter renders a Node or Expression subtree as the box-drawing
// "tree-string" every operator's String() composes, and that §7 requires
// errors to carry for diagnostics.
type TreePrinter struct {
	line     string
	children []*TreePrinter
}

// NewTreePrinter creates an empty printer; call WriteNode once to set the
// current node's line, then WriteChildren to attach already-rendered
// child printers.
func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// WriteNode sets this printer's own line, formatted like fmt.Sprintf.
func (p *TreePrinter) WriteNode(format string, args ...interface{}) {
	p.line = fmt.Sprintf(format, args...)
}

// WriteChildren attaches one child printer per line given.
func (p *TreePrinter) WriteChildren(lines ...string) {
	for _, l := range lines {
		p.children = append(p.children, &TreePrinter{line: l})
	}
}

// String renders the full tree using the same glyphs as the teacher's
// printer: "├─ " / "└─ " for children, " │  " / "    " for continuation.
func (p *TreePrinter) String() string {
	var sb strings.Builder
	sb.WriteString(p.line)
	sb.WriteByte('\n')
	writeChildren(&sb, p.children, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, children []*TreePrinter, prefix string) {
	for i, c := range children {
		last := i == len(children)-1
		branch := "├─ "
		cont := " │  "
		if last {
			branch = "└─ "
			cont = "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(c.line)
		sb.WriteByte('\n')
		writeChildren(sb, c.children, prefix+cont)
	}
}
