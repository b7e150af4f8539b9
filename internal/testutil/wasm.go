package testutil

// WasmModule returns a minimal WebAssembly binary exporting one no-op
// function () -> () per name.
func WasmModule(exports ...string) []byte {
	out := wasmHeader()
	if len(exports) == 0 {
		return out
	}
	n := uint32(len(exports))

	out = appendSection(out, 0x01, []byte{0x01, 0x60, 0x00, 0x00})

	funcs := appendULEB(nil, n)
	for range exports {
		funcs = append(funcs, 0x00)
	}
	out = appendSection(out, 0x03, funcs)

	exps := appendULEB(nil, n)
	for i, name := range exports {
		exps = appendULEB(exps, uint32(len(name)))
		exps = append(exps, name...)
		exps = append(exps, 0x00)
		exps = appendULEB(exps, uint32(i))
	}
	out = appendSection(out, 0x07, exps)

	code := appendULEB(nil, n)
	for range exports {
		code = append(code, 0x02, 0x00, 0x0b)
	}
	return appendSection(out, 0x0a, code)
}

// WasmModuleImporting returns a WebAssembly binary that imports the function
// module.field and defines nothing else. It compiles but cannot be
// instantiated unless the import is provided.
func WasmModuleImporting(module, field string) []byte {
	out := wasmHeader()
	out = appendSection(out, 0x01, []byte{0x01, 0x60, 0x00, 0x00})

	imp := appendULEB(nil, 1)
	imp = appendULEB(imp, uint32(len(module)))
	imp = append(imp, module...)
	imp = appendULEB(imp, uint32(len(field)))
	imp = append(imp, field...)
	imp = append(imp, 0x00, 0x00)
	return appendSection(out, 0x02, imp)
}

func wasmHeader() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

func appendSection(out []byte, id byte, payload []byte) []byte {
	out = append(out, id)
	out = appendULEB(out, uint32(len(payload)))
	return append(out, payload...)
}

func appendULEB(out []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}
