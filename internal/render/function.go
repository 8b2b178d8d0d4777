package render

import (
	"fmt"
	"strings"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
	"caspiler/internal/types"
)

// Function renders one function's signature, entry-point annotation, and
// body. Callers are expected to have already filtered out blacklisted
// signatures (ModuleFunctions does this for the module emitter); Function
// itself does not re-check the blacklist so that it stays usable
// standalone against a function the caller has already decided to render.
func Function(fn *ir.FunctionDecl, contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	if fn.CFG == nil {
		return "", errors.MalformedCFG(fmt.Sprintf("function %s has no CFG", fn.Name))
	}

	body, err := FunctionCFG(fn.CFG, contract, diags)
	if err != nil {
		return "", err
	}

	name := fn.Name
	if fn.IsConstructor {
		name = "constructor"
	}

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, types.Render(p.Type, diags))
	}

	var out strings.Builder
	if annotation := entryPointAnnotation(fn); annotation != "" {
		out.WriteString(annotation)
		out.WriteString("\n")
	}
	fmt.Fprintf(&out, "fn %s(%s) { %s\n}", name, strings.Join(params, ", "), body)
	return out.String(), nil
}

// entryPointAnnotation maps (IsConstructor, IsPublic): constructors get
// the constructor macro, other public functions get the method macro,
// private helpers get no annotation.
func entryPointAnnotation(fn *ir.FunctionDecl) string {
	switch {
	case fn.IsConstructor && fn.IsPublic:
		return "#[casperlabs_constructor]"
	case !fn.IsConstructor && fn.IsPublic:
		return "#[casperlabs_method]"
	default:
		return ""
	}
}
