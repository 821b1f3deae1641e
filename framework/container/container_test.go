package container_test

import (
	"sync"
	"testing"

	"github.com/km-arc/go-tourism/framework/container"
)

type registry struct{ id int }

// ── Bind / Singleton / Instance ──────────────────────────────────────────────

func TestBind_NewInstanceEachMake(t *testing.T) {
	c := container.New()
	n := 0
	c.Bind("form", func(c *container.Container) any {
		n++
		return &registry{id: n}
	})

	a := container.Resolve[*registry](c, "form")
	b := container.Resolve[*registry](c, "form")
	if a == b || n != 2 {
		t.Error("Bind should build a new instance on every Make")
	}
}

func TestSingleton_CachedAfterFirstMake(t *testing.T) {
	c := container.New()
	calls := 0
	c.Singleton("forms", func(c *container.Container) any {
		calls++
		return &registry{id: calls}
	})

	if calls != 0 {
		t.Error("singleton should not be built before first Make")
	}
	a := container.Resolve[*registry](c, "forms")
	b := container.Resolve[*registry](c, "forms")
	if a != b || calls != 1 {
		t.Errorf("singleton built %d times", calls)
	}
}

func TestSingleton_RebindDropsCachedInstance(t *testing.T) {
	c := container.New()
	c.Singleton("theme", func(c *container.Container) any { return "light" })
	_ = c.Make("theme")

	c.Singleton("theme", func(c *container.Container) any { return "dark" })
	if got := container.Resolve[string](c, "theme"); got != "dark" {
		t.Errorf("theme: got %q want dark", got)
	}
}

func TestSingleton_ConcurrentMake(t *testing.T) {
	c := container.New()
	c.Singleton("forms", func(c *container.Container) any { return &registry{} })

	results := make([]*registry, 16)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = container.Resolve[*registry](c, "forms")
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		if r != results[0] {
			t.Fatal("concurrent Make returned different singleton instances")
		}
	}
}

func TestInstance(t *testing.T) {
	c := container.New()
	reg := &registry{id: 7}
	c.Instance("forms", reg)

	if got := container.Resolve[*registry](c, "forms"); got != reg {
		t.Error("Instance should return the registered value")
	}
	if container.Resolve[*container.Container](c, "container") != c {
		t.Error("container should be bound to itself")
	}
}

// ── Alias ───────────────────────────────────────────────────────────────────

func TestAlias(t *testing.T) {
	c := container.New()
	c.Instance("config", "cfg")
	c.Alias("config", "configuration")

	if got := container.Resolve[string](c, "configuration"); got != "cfg" {
		t.Errorf("alias: got %q", got)
	}
}

func TestAlias_SelfPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("aliasing an abstract to itself should panic")
		}
	}()
	container.New().Alias("config", "config")
}

// ── Resolve failures ─────────────────────────────────────────────────────────

func TestMake_UnboundPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Make of an unbound abstract should panic")
		}
	}()
	container.New().Make("missing")
}

func TestResolve_WrongTypePanics(t *testing.T) {
	c := container.New()
	c.Instance("theme", "light")

	defer func() {
		if recover() == nil {
			t.Error("Resolve with the wrong type should panic")
		}
	}()
	_ = container.Resolve[int](c, "theme")
}
