// Package irtext parses the textual IR dump format consumed by the
// caspiler driver: one `contract { ... }` block per contract, with
// prefix-call terms mirroring the IR variant names. Parsing produces a
// syntax tree (grammar.go); build.go interprets it into internal/ir
// structures.
package irtext

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"caspiler/internal/ir"
)

func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	file, err := ParseString(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		return nil, err
	}
	return file, nil
}

func ParseString(name, source string) (*File, error) {
	parser, err := participle.Build[File](
		participle.Lexer(IRLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return parser.ParseString(name, source)
}

// Load parses an IR dump from disk and interprets it into contracts.
func Load(path string) ([]*ir.Contract, error) {
	file, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Build(file)
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("❌ Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}
