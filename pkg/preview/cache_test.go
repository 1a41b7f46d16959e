package preview

import (
	"reflect"
	"sync"
	"testing"
)

func TestCache_FirstWriteWins(t *testing.T) {
	c := NewCache()

	if !c.Put("a.html", Overview{HTML: "<p>first</p>", Found: true}) {
		t.Fatal("first Put should store")
	}
	if c.Put("a.html", Overview{HTML: "<p>second</p>", Found: true}) {
		t.Error("second Put for the same ref should be ignored")
	}

	ov, ok := c.Get("a.html")
	if !ok || ov.HTML != "<p>first</p>" {
		t.Errorf("Get = %+v, %v; want first overview", ov, ok)
	}
	if _, ok := c.Get("b.html"); ok {
		t.Error("unknown ref should miss")
	}
}

func TestCache_NotFoundIsCached(t *testing.T) {
	c := NewCache()
	c.Put("empty.html", Overview{})

	ov, ok := c.Get("empty.html")
	if !ok {
		t.Fatal("a not-found overview should still be cached")
	}
	if ov.Found {
		t.Error("cached entry should keep Found=false")
	}
}

func TestCache_RefsSorted(t *testing.T) {
	c := NewCache()
	for _, ref := range []string{"c.html", "a.html", "b.html", "a.html"} {
		c.Put(ref, Overview{})
	}

	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
	want := []string{"a.html", "b.html", "c.html"}
	if got := c.Refs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Refs = %v, want %v", got, want)
	}
}

func TestCache_ConcurrentPut(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	stored := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored <- c.Put("same.html", Overview{HTML: "<p>x</p>", Found: true})
		}()
	}
	wg.Wait()
	close(stored)

	n := 0
	for ok := range stored {
		if ok {
			n++
		}
	}
	if n != 1 {
		t.Errorf("expected exactly one stored write, got %d", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}
