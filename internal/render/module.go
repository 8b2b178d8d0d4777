package render

import (
	"strings"

	"caspiler/internal/errors"
	"caspiler/internal/ir"
)

// Printer accumulates the rendered target-source module text.
// It is a strings.Builder plus small write/writeLine helpers rather than
// a templating engine: the fixed boilerplate sections (imports, runtime
// helpers) are a handful of multi-line literals, not data-driven enough
// to need one.
type Printer struct {
	out strings.Builder
}

func (p *Printer) writeLine(s string) {
	p.out.WriteString(s)
	p.out.WriteString("\n")
}

func (p *Printer) write(s string) {
	p.out.WriteString(s)
}

// Module renders a whole contract into a self-contained CasperLabs source
// module: header (pragmas, imports, module opening), every non-blacklisted
// function, and the footer runtime helpers. Diagnostics accumulates
// non-fatal notes (unknown types/expressions); a non-nil error means a
// fatal condition was hit and the returned string is incomplete and
// must not be used.
func Module(contract *ir.Contract, diags *errors.Diagnostics) (string, error) {
	p := &Printer{}
	p.renderHeader(contract.Name)

	for _, fn := range ModuleFunctions(contract) {
		text, err := Function(fn, contract, diags)
		if err != nil {
			return "", err
		}
		p.writeLine(text)
		p.writeLine("")
	}

	p.renderFooter()
	return p.out.String(), nil
}

// ModuleFunctions returns the functions of a contract that are not
// shadowing a host-native intrinsic, in declared order.
func ModuleFunctions(contract *ir.Contract) []*ir.FunctionDecl {
	var fns []*ir.FunctionDecl
	for _, fn := range contract.Functions {
		if ir.IsBlacklisted(fn.Signature) {
			continue
		}
		fns = append(fns, fn)
	}
	return fns
}

func (p *Printer) renderHeader(contractName string) {
	p.writeLine("#![no_main]")
	p.writeLine("#![allow(unused_imports)]")
	p.writeLine("#![allow(unused_parens)]")
	p.writeLine("#![allow(non_snake_case)]")
	p.writeLine("")
	p.writeLine("extern crate alloc;")
	p.writeLine("")
	p.writeLine("use core::convert::TryInto;")
	p.writeLine("use alloc::{collections::{BTreeSet, BTreeMap}, string::String};")
	p.writeLine("")
	p.writeLine("use casperlabs_contract_macro::{casperlabs_constructor, casperlabs_contract, casperlabs_method};")
	p.writeLine("use casperlabs_contract::{")
	p.writeLine("    contract_api::{runtime, storage},")
	p.writeLine("    unwrap_or_revert::UnwrapOrRevert,")
	p.writeLine("};")
	p.writeLine("use casperlabs_types::{")
	p.writeLine("    runtime_args, CLValue, CLTyped, CLType, Group, Parameter, RuntimeArgs, URef, U256, ApiError,")
	p.writeLine("    bytesrepr::{ToBytes, FromBytes}, account::AccountHash,")
	p.writeLine("    contracts::{EntryPoint, EntryPointAccess, EntryPointType, EntryPoints},")
	p.writeLine("};")
	p.writeLine("")
	p.write("#[casperlabs_contract]\nmod ")
	p.write(contractName)
	p.writeLine(" {")
}

func (p *Printer) renderFooter() {
	p.writeLine("}")
	p.writeLine("")
	p.writeLine("fn get_key<T: FromBytes + CLTyped + Default>(name: &str) -> T {")
	p.writeLine("    match runtime::get_key(name) {")
	p.writeLine("        None => Default::default(),")
	p.writeLine("        Some(value) => {")
	p.writeLine("            let key = value.try_into().unwrap_or_revert();")
	p.writeLine("            storage::read(key).unwrap_or_revert().unwrap_or_revert()")
	p.writeLine("        }")
	p.writeLine("    }")
	p.writeLine("}")
	p.writeLine("")
	p.writeLine("fn set_key<T: ToBytes + CLTyped>(name: &str, value: T) {")
	p.writeLine("    match runtime::get_key(name) {")
	p.writeLine("        Some(key) => {")
	p.writeLine("            let key_ref = key.try_into().unwrap_or_revert();")
	p.writeLine("            storage::write(key_ref, value);")
	p.writeLine("        }")
	p.writeLine("        None => {")
	p.writeLine("            let key = storage::new_uref(value).into();")
	p.writeLine("            runtime::put_key(name, key);")
	p.writeLine("        }")
	p.writeLine("    }")
	p.writeLine("}")
	p.writeLine("")
	p.writeLine(`fn new_key(a: &str, b: AccountHash) -> String {`)
	p.writeLine(`    format!("{}_{}", a, b)`)
	p.writeLine("}")
	p.writeLine("")
	p.writeLine("fn assert(condition: bool) {")
	p.writeLine("    if !condition {")
	p.writeLine("        runtime::revert(ApiError::User(1u16));")
	p.writeLine("    }")
	p.writeLine("}")
	p.writeLine("")
	p.writeLine("fn revert() {")
	p.writeLine("    assert(false);")
	p.writeLine("}")
	p.writeLine("")
	p.writeLine("fn require(condition: bool) {")
	p.writeLine("    assert(condition);")
	p.writeLine("}")
	p.writeLine("")
	p.writeLine("fn ret<T: CLTyped + ToBytes>(value: T) {")
	p.writeLine("    runtime::ret(CLValue::from_t(value).unwrap_or_revert())")
	p.writeLine("}")
}
