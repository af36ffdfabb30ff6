package reactive

import "testing"

func TestCellSubscribeInvokesImmediately(t *testing.T) {
	c := New(42)

	var got []int
	c.Subscribe(func(v int) {
		got = append(got, v)
	})

	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("expected immediate invocation with 42, got %v", got)
	}
}

func TestCellSetNotifies(t *testing.T) {
	c := New("a")

	var got []string
	c.Subscribe(func(v string) {
		got = append(got, v)
	})

	c.Set("b")
	c.Set("c")

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCellSetSkipsEqualValue(t *testing.T) {
	c := New(1)

	notifications := 0
	c.Subscribe(func(int) {
		notifications++
	})

	c.Set(1)
	c.Set(1)

	if notifications != 1 {
		t.Errorf("expected only the immediate invocation, got %d notifications", notifications)
	}
}

func TestCellUnsubscribe(t *testing.T) {
	c := New(0)

	notifications := 0
	unsubscribe := c.Subscribe(func(int) {
		notifications++
	})

	c.Set(1)
	unsubscribe()
	c.Set(2)

	if notifications != 2 {
		t.Errorf("expected 2 notifications (immediate + one set), got %d", notifications)
	}
	if c.Get() != 2 {
		t.Errorf("expected value 2, got %d", c.Get())
	}
}

func TestCellFuncAlwaysNotifies(t *testing.T) {
	c := NewFunc([]int{1}, nil)

	notifications := 0
	c.Subscribe(func([]int) {
		notifications++
	})

	c.Set([]int{1})
	c.Set([]int{1})

	if notifications != 3 {
		t.Errorf("expected 3 notifications with nil equality, got %d", notifications)
	}
}

func TestMapRecomputesSynchronously(t *testing.T) {
	src := New(2)
	doubled := Map(src, func(v int) int { return v * 2 })

	if doubled.Get() != 4 {
		t.Fatalf("expected initial derived value 4, got %d", doubled.Get())
	}

	var got []int
	doubled.Subscribe(func(v int) {
		got = append(got, v)
	})

	src.Set(5)

	if doubled.Get() != 10 {
		t.Errorf("expected derived value 10, got %d", doubled.Get())
	}
	if len(got) != 2 || got[1] != 10 {
		t.Errorf("expected notifications [4 10], got %v", got)
	}
}

func TestMapSkipsUnchangedDerivedValue(t *testing.T) {
	src := New(1)
	sign := Map(src, func(v int) bool { return v > 0 })

	notifications := 0
	sign.Subscribe(func(bool) {
		notifications++
	})

	src.Set(2)
	src.Set(3)

	if notifications != 1 {
		t.Errorf("expected derived value to stay true without re-notifying, got %d notifications", notifications)
	}
}

func TestMap2CombinesBothSources(t *testing.T) {
	a := New(1)
	b := New(10)
	sum := Map2(a, b, func(x, y int) int { return x + y })

	if sum.Get() != 11 {
		t.Fatalf("expected 11, got %d", sum.Get())
	}

	a.Set(2)
	if sum.Get() != 12 {
		t.Errorf("expected 12 after first source change, got %d", sum.Get())
	}

	b.Set(20)
	if sum.Get() != 22 {
		t.Errorf("expected 22 after second source change, got %d", sum.Get())
	}
}

func TestDerivedChains(t *testing.T) {
	src := New(1)
	doubled := Map(src, func(v int) int { return v * 2 })
	quadrupled := Map(doubled, func(v int) int { return v * 2 })

	src.Set(3)

	if quadrupled.Get() != 12 {
		t.Errorf("expected chained derived value 12, got %d", quadrupled.Get())
	}
}
