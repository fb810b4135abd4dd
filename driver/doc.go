// Package driver defines the external collaborators of the frame graph:
// the allocator that creates and destroys concrete GPU resources, and the
// opaque backend handle that pass execute closures use to issue commands.
//
// # Key Principle
//
// The frame graph never creates a GPU device or allocates memory itself.
// It is handed a [ResourceAllocator] when it is constructed and a
// [DriverApi] at execute time, and calls into them at well-defined points
// during execute: once per
// virtual resource's first referencing pass (create), once at its last
// referencing pass (destroy), and never for imported resources. This
// mirrors the DeviceHandle-injection pattern used elsewhere in the gogpu
// ecosystem: the library receives GPU resources, it does not own their
// lifetime.
//
// # Core Interfaces
//
//   - ResourceAllocator: creates/destroys textures and render targets.
//   - DriverApi: opaque handle passed to pass execute closures.
//
// Everything else in this package is plain data: descriptors, handles and
// bitmasks that flow between the frame graph and these two collaborators.
package driver
