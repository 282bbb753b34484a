package atomic

import (
	"sort"
	"sync"
)

type Value[T any] struct {
	mu    sync.RWMutex
	value T
}

func NewValue[T any](val T) Value[T] {
	return Value[T]{value: val}
}

func (v *Value[T]) Load() (val T) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

func (v *Value[T]) Store(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = val
}

// Map is a map guarded by a RWMutex. The zero value is ready to use.
type Map[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
}

func (m *Map[K, V]) Load(key K) (val V, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok = m.values[key]
	return val, ok
}

// StoreNew stores val under key unless the key is already present. It
// reports whether val was stored.
func (m *Map[K, V]) StoreNew(key K, val V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		return false
	}
	if m.values == nil {
		m.values = make(map[K]V)
	}
	m.values[key] = val
	return true
}

func (m *Map[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Keys returns the stored keys ordered by less.
func (m *Map[K, V]) Keys(less func(a, b K) bool) []K {
	m.mu.RLock()
	keys := make([]K, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	m.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}
