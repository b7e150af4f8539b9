// Package serialbox locates the serialbox engine library and keeps loaded
// handles in a process-wide registry.
//
// GetLibrary resolves the library from the environment and RegisterLibrary
// makes a handle discoverable by other bindings:
//
//	h, err := serialbox.GetLibrary(ctx)
//	if err != nil {
//		return err
//	}
//	if err := serialbox.RegisterLibrary(h); err != nil {
//		return err
//	}
//	defer serialbox.Shutdown()
//
// Code that needs an isolated registry uses the binding and binding/registry
// packages directly.
package serialbox
