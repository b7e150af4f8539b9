// Package binding locates the serialbox C library and hands out opaque
// handles to it.
//
// A Resolver turns a configuration (library name, search directories,
// backend) into a Handle. Handles are registered in a
// registry.Registry so other bindings in the process can reuse them:
//
//	reg := registry.NewRegistry()
//	defer reg.Close()
//
//	h, err := binding.ResolveAndRegister(ctx, reg, binding.WithSearchPaths("/opt/serialbox/lib"))
//	if err != nil {
//	    return err
//	}
//
//	var create func(dir, prefix string, mode int32) uintptr
//	if err := h.Bind(&create, "serialboxSerializerCreate"); err != nil {
//	    return err
//	}
//
// Native libraries are loaded with the platform dynamic loader; files with a
// .wasm extension are loaded into a private wazero runtime.
package binding
