package cache

import (
	"sync"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[int, string](4)

	if _, ok := c.Get(1); ok {
		t.Fatal("Get() on empty cache returned ok")
	}
	c.Set(1, "one")
	got, ok := c.Get(1)
	if !ok || got != "one" {
		t.Errorf("Get(1) = %q, %v; want \"one\", true", got, ok)
	}
	c.Set(1, "uno")
	if got, _ := c.Get(1); got != "uno" {
		t.Errorf("Get(1) after overwrite = %q, want \"uno\"", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1) // 2 is now the oldest
	c.Set(3, 3)

	if _, ok := c.Get(2); ok {
		t.Error("key 2 should have been evicted")
	}
	for _, k := range []int{1, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d should still be cached", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestCache_Unlimited(t *testing.T) {
	c := New[int, int](0)
	for i := range 1000 {
		c.Set(i, i)
	}
	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", c.Len())
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[int, []int](8)
	calls := 0
	create := func() []int {
		calls++
		return []int{42}
	}

	a := c.GetOrCreate(7, create)
	b := c.GetOrCreate(7, create)
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if &a[0] != &b[0] {
		t.Error("GetOrCreate returned different values for the same key")
	}
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("Stats hits/misses = %d/%d, want 1/1", s.Hits, s.Misses)
	}
	if s.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", s.HitRate)
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	c.Set("c", 3)
	if got, ok := c.Get("c"); !ok || got != 3 {
		t.Errorf("Get(c) after Clear = %d, %v", got, ok)
	}
}

func TestCache_ConcurrentGetOrCreate(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := map[int]int{}

	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range 16 {
				c.GetOrCreate(k, func() int {
					mu.Lock()
					created[k]++
					mu.Unlock()
					return k * g
				})
			}
		}()
	}
	wg.Wait()

	for k, n := range created {
		if n != 1 {
			t.Errorf("key %d created %d times, want 1", k, n)
		}
	}
}
