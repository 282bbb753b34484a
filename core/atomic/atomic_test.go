package atomic_test

import (
	"Inskape/expectfail/core/atomic"
	"fmt"
	"sync"
	"testing"
)

func TestValue(t *testing.T) {
	v := atomic.NewValue("initial")
	if got := v.Load(); got != "initial" {
		t.Fatalf("Load() = %q, want initial", got)
	}
	v.Store("updated")
	if got := v.Load(); got != "updated" {
		t.Fatalf("Load() = %q, want updated", got)
	}
}

func TestMapStoreNew(t *testing.T) {
	var m atomic.Map[string, int]
	if !m.StoreNew("a", 1) {
		t.Fatal("first store should succeed")
	}
	if m.StoreNew("a", 2) {
		t.Fatal("second store should be rejected")
	}
	if v, ok := m.Load("a"); !ok || v != 1 {
		t.Fatalf("Load(a) = %d, %v", v, ok)
	}
	m.Delete("a")
	if _, ok := m.Load("a"); ok {
		t.Fatal("a should be deleted")
	}
}

func TestMapConcurrentStoreNew(t *testing.T) {
	var (
		m      atomic.Map[string, int]
		wg     sync.WaitGroup
		mu     sync.Mutex
		stored int
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if m.StoreNew(fmt.Sprintf("key-%d", i%8), i) {
				mu.Lock()
				stored++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if stored != 8 || m.Len() != 8 {
		t.Fatalf("stored %d keys, map has %d, want 8", stored, m.Len())
	}
	keys := m.Keys(func(a, b string) bool { return a < b })
	if keys[0] != "key-0" || keys[7] != "key-7" {
		t.Fatalf("Keys() = %v", keys)
	}
}
