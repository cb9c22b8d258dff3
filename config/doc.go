// Package config provides a hierarchical, path-addressable configuration tree
// that keeps explicit null entries distinct from absent keys.
//
// Every key of a Section is in exactly one of four states: absent, holding a
// value, explicitly null, or holding a child section. Set(path, nil) stores an
// explicit null that survives serialization; only Unset removes a key.
//
// # Paths
//
// Paths are keys joined by the separator configured on the tree root
// (default '.'):
//
//	"server.port"               -> root["server"]["port"]
//	"server.whitelist.enabled"  -> root["server"]["whitelist"]["enabled"]
//
// Writes create missing intermediate sections; reads never mutate the tree.
// Empty segments produced by doubled, leading or trailing separators are
// ordinary empty-string keys.
//
// # Serialization
//
// The package does not read or write text itself. A Parser turns bytes into a
// MapSlice and an Emitter renders one back; see config/parser/yaml,
// config/parser/yamlv3 and config/parser/jsonc. A DataFetcher and a DataWriter
// move the bytes, see config/fetcher/file.
//
// # Example
//
//	cfg := config.New()
//	_ = cfg.Set("server.port", 25565)
//	_ = cfg.Set("server.motd", nil)
//	data, err := cfg.Marshal(yamlparser.NewParser())
//
// A Configuration is not safe for concurrent use; see the store package for a
// guarded, file-bound variant.
package config
