// Package metainfo implements the serialbox meta-information map: a set of
// string keys mapped to typed scalar values, with the JSON representation
// used by serialbox archives,
//
//	{"key": {"type_id": 2, "value": 42}}
//
// The map is not safe for concurrent mutation.
package metainfo
