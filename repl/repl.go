// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"caspiler/internal/errors"
	"caspiler/internal/irtext"
	"caspiler/internal/render"
)

const PROMPT = ">> "

// Start reads IR contract blocks from in, line by line, and prints the
// transpiled CasperLabs module for each complete `contract { ... }` block.
// A block is complete once its braces balance.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	var buf strings.Builder
	depth := 0

	for {
		if buf.Len() == 0 {
			fmt.Fprint(out, PROMPT)
		}
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteString("\n")
		depth += strings.Count(line, "{") - strings.Count(line, "}")

		if depth > 0 || strings.TrimSpace(buf.String()) == "" {
			continue
		}

		source := buf.String()
		buf.Reset()
		depth = 0
		transpile(out, source)
	}
}

func transpile(out io.Writer, source string) {
	file, err := irtext.ParseString("repl", source)
	if err != nil {
		color.Red("Parse failed: %s", err)
		return
	}

	contracts, err := irtext.Build(file)
	if err != nil {
		color.Red("Bad IR: %s", err)
		return
	}

	for _, contract := range contracts {
		diags := &errors.Diagnostics{}
		rendered, err := render.Module(contract, diags)
		if err != nil {
			color.Red("Transpile failed: %s", err)
			continue
		}
		fmt.Fprintln(out, rendered)
		for _, d := range diags.Items() {
			color.Yellow("warning: %s: %s", d.Code, d.Message)
		}
	}
}
