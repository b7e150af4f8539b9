// Package wazero loads WebAssembly builds of the serialbox engine through the
// wazero runtime.
//
// A wasm build is resolved like a shared object (a SerialboxC.wasm file on the
// search path) and satisfies the same ports.Library contract: exported
// functions play the role of symbols, and Bind hands out api.Function values.
//
//	loader := wazero.NewLoader()
//	lib, err := loader.Open(ctx, "/opt/serialbox/SerialboxC.wasm")
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	var create api.Function
//	if err := lib.Bind(&create, "serialboxSerializerCreate"); err != nil {
//	    return err
//	}
package wazero
