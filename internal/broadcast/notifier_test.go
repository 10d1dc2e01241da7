package broadcast

import "testing"

func TestNotifier_DeliversInRegistrationOrder(t *testing.T) {
	n := New[int]()

	var order []string
	n.Add(func(v int) { order = append(order, "a") })
	n.Add(func(v int) { order = append(order, "b") })
	n.Add(func(v int) { order = append(order, "c") })

	n.Notify(1)

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("delivery order = %v, want [a b c]", order)
	}
}

func TestNotifier_DisposerRemovesOnlyItsRegistration(t *testing.T) {
	n := New[string]()

	var got []string
	dispose := n.Add(func(v string) { got = append(got, "first:"+v) })
	n.Add(func(v string) { got = append(got, "second:"+v) })

	dispose()
	n.Notify("x")

	if len(got) != 1 || got[0] != "second:x" {
		t.Errorf("after dispose got %v, want [second:x]", got)
	}
}

func TestNotifier_DisposerIdempotent(t *testing.T) {
	n := New[int]()

	d1 := n.Add(func(int) {})
	n.Add(func(int) {})

	d1()
	d1() // second call must not remove anything else

	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1", n.Len())
	}
}

func TestNotifier_SameFuncRegisteredTwice(t *testing.T) {
	n := New[int]()

	count := 0
	fn := func(int) { count++ }
	d1 := n.Add(fn)
	n.Add(fn)

	d1()
	n.Notify(0)

	if count != 1 {
		t.Errorf("count = %d, want 1 (one registration left)", count)
	}
}

func TestNotifier_UnsubscribeDuringBroadcast(t *testing.T) {
	n := New[int]()

	var dispose func()
	calls := []string{}
	dispose = n.Add(func(int) {
		calls = append(calls, "self")
		dispose() // removing yourself mid-broadcast must not disturb delivery
	})
	n.Add(func(int) { calls = append(calls, "other") })

	n.Notify(0)

	if len(calls) != 2 || calls[0] != "self" || calls[1] != "other" {
		t.Errorf("calls = %v, want [self other]", calls)
	}

	calls = nil
	n.Notify(0)
	if len(calls) != 1 || calls[0] != "other" {
		t.Errorf("second broadcast calls = %v, want [other]", calls)
	}
}

func TestNotifier_AddDuringBroadcastTakesEffectNextTime(t *testing.T) {
	n := New[int]()

	count := 0
	n.Add(func(int) {
		if count == 0 {
			n.Add(func(int) { count += 10 })
		}
		count++
	})

	n.Notify(0)
	if count != 1 {
		t.Errorf("count after first broadcast = %d, want 1", count)
	}

	n.Notify(0)
	if count != 12 {
		t.Errorf("count after second broadcast = %d, want 12", count)
	}
}
