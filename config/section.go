package config

import (
	"iter"
	"maps"
	"reflect"
	"slices"
	"strings"

	orderedmap "github.com/pb33f/ordered-map/v2"
)

// Kind is the state of a key slot within a section.
type Kind int

const (
	// KindAbsent means the key is not present.
	KindAbsent Kind = iota
	// KindValue means the key holds a scalar or sequence value.
	KindValue
	// KindNull means the key is present and explicitly null.
	KindNull
	// KindSection means the key holds a child section.
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindValue:
		return "value"
	case KindNull:
		return "null"
	case KindSection:
		return "section"
	default:
		return "unknown"
	}
}

// NullValue is the type of Null.
type NullValue struct{}

// Null is yielded by Section.All for keys explicitly set to null.
//
//nolint:gochecknoglobals // marker value.
var Null = NullValue{}

type entry struct {
	kind    Kind
	value   any
	section *Section
}

// Section is one node of the configuration tree. It owns an insertion-ordered
// mapping from local key to a value, an explicit null or a child section.
//
// Every method accepting a path interprets it relative to the receiver using
// the separator configured on the tree root.
type Section struct {
	key     string
	parent  *Section
	root    *Configuration
	entries *orderedmap.OrderedMap[string, entry]
}

func (s *Section) init(root *Configuration, parent *Section, key string) {
	s.key = key
	s.parent = parent
	s.root = root
	s.entries = orderedmap.New[string, entry]()
}

// Key returns the local key of the section within its parent, "" for the root.
func (s *Section) Key() string {
	return s.key
}

// Parent returns the enclosing section, or nil for the root.
func (s *Section) Parent() *Section {
	return s.parent
}

// Root returns the configuration owning the tree.
func (s *Section) Root() *Configuration {
	return s.root
}

// PathSeparator returns the separator configured on the tree root.
func (s *Section) PathSeparator() rune {
	return s.root.separator
}

// Path returns the full path of the section from the root.
func (s *Section) Path() string {
	if s.parent == nil {
		return ""
	}

	var keys []string
	for cur := s; cur.parent != nil; cur = cur.parent {
		keys = append(keys, cur.key)
	}

	slices.Reverse(keys)

	return strings.Join(keys, string(s.PathSeparator()))
}

// Len returns the number of local keys.
func (s *Section) Len() int {
	return s.entries.Len()
}

// Keys returns the local keys in insertion order.
func (s *Section) Keys() []string {
	return slices.Collect(s.entries.KeysFromOldest())
}

// All iterates over the local entries in insertion order. Explicit nulls are
// yielded as Null and child sections as *Section.
func (s *Section) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for key, e := range s.entries.FromOldest() {
			if !yield(key, e.external()) {
				return
			}
		}
	}
}

// Local looks up key in this section only; the separator is not interpreted.
// The returned value is the stored value for KindValue, the child *Section
// for KindSection and nil otherwise.
func (s *Section) Local(key string) (any, Kind) {
	e, present := s.entries.Get(key)
	if !present {
		return nil, KindAbsent
	}

	switch e.kind {
	case KindSection:
		return e.section, KindSection
	case KindValue:
		return e.value, KindValue
	default:
		return nil, e.kind
	}
}

// Raw exports the section as an ordered raw tree, nulls as nil values.
func (s *Section) Raw() MapSlice {
	out := make(MapSlice, 0, s.entries.Len())

	for key, e := range s.entries.FromOldest() {
		item := MapItem{Key: key, Value: nil}

		switch e.kind {
		case KindSection:
			item.Value = e.section.Raw()
		case KindValue:
			item.Value = e.value
		}

		out = append(out, item)
	}

	return out
}

func (e entry) external() any {
	switch e.kind {
	case KindSection:
		return e.section
	case KindNull:
		return Null
	default:
		return e.value
	}
}

func (s *Section) child(key string) (*Section, bool) {
	e, present := s.entries.Get(key)
	if !present || e.kind != KindSection {
		return nil, false
	}

	return e.section, true
}

// putLocal stores value under key. nil, including typed nil pointers, maps
// and slices, stores an explicit null; mappings, sections and configurations
// are copied into a new child section.
func (s *Section) putLocal(key string, value any) {
	switch v := value.(type) {
	case nil, NullValue:
		s.entries.Set(key, entry{kind: KindNull})
	case *Section:
		if v == nil {
			s.entries.Set(key, entry{kind: KindNull})

			return
		}

		raw := v.Raw()
		s.newChild(key).fill(raw)
	case *Configuration:
		if v == nil {
			s.entries.Set(key, entry{kind: KindNull})

			return
		}

		raw := v.Raw()
		s.newChild(key).fill(raw)
	case MapSlice:
		s.newChild(key).fill(v)
	case map[string]any:
		if v == nil {
			s.entries.Set(key, entry{kind: KindNull})

			return
		}

		s.newChild(key).fill(sortedMapSlice(v))
	default:
		if isNil(value) {
			s.entries.Set(key, entry{kind: KindNull})

			return
		}

		s.entries.Set(key, entry{kind: KindValue, value: value})
	}
}

// isNil reports a typed nil, which every emitter writes as null.
func isNil(value any) bool {
	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func (s *Section) removeLocal(key string) {
	s.entries.Delete(key)
}

// newChild creates a child section under key, replacing any previous entry.
func (s *Section) newChild(key string) *Section {
	child := &Section{}
	child.init(s.root, s, key)

	s.entries.Set(key, entry{kind: KindSection, section: child})

	return child
}

func (s *Section) fill(tree MapSlice) {
	for _, item := range tree {
		s.putLocal(item.Key, item.Value)
	}
}

func sortedMapSlice(m map[string]any) MapSlice {
	out := make(MapSlice, 0, len(m))

	for _, key := range slices.Sorted(maps.Keys(m)) {
		out = append(out, MapItem{Key: key, Value: m[key]})
	}

	return out
}
