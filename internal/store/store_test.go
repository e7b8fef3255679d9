package store

import (
	"reflect"
	"testing"

	"github.com/teamdraft/teamdraft/internal/errors"
)

func newTestStore() *Store {
	return New(NewState(), Reduce)
}

func TestDispatch_AddMember(t *testing.T) {
	s := newTestStore()

	if err := s.Dispatch(AddMember("Ann")); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	got := s.GetState()
	if !reflect.DeepEqual(got.Members, []string{"Ann"}) {
		t.Errorf("Members = %v, want [Ann]", got.Members)
	}
}

func TestDispatch_NotifiesInRegistrationOrder(t *testing.T) {
	s := newTestStore()

	var order []int
	s.Subscribe(func(State) { order = append(order, 1) })
	s.Subscribe(func(State) { order = append(order, 2) })
	s.Subscribe(func(State) { order = append(order, 3) })

	if err := s.Dispatch(SetTotal(4)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Errorf("notification order = %v, want [1 2 3]", order)
	}
}

func TestDispatch_SubscriberReceivesNewState(t *testing.T) {
	s := newTestStore()

	var seen State
	s.Subscribe(func(st State) { seen = st })

	if err := s.Dispatch(SetTotal(7)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if seen.TotalMembers != 7 {
		t.Errorf("subscriber saw TotalMembers = %d, want 7", seen.TotalMembers)
	}
}

func TestSubscribe_CountInvariant(t *testing.T) {
	s := newTestStore()

	const n = 5
	const k = 2

	unsubs := make([]func(), 0, n)
	notified := 0
	for range n {
		unsubs = append(unsubs, s.Subscribe(func(State) { notified++ }))
	}
	for i := range k {
		unsubs[i]()
	}

	if err := s.Dispatch(SetTotal(3)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if notified != n-k {
		t.Errorf("notified %d listeners, want %d", notified, n-k)
	}
	if s.ListenerCount() != n-k {
		t.Errorf("ListenerCount = %d, want %d", s.ListenerCount(), n-k)
	}
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	s := newTestStore()

	calls := 0
	unsub := s.Subscribe(func(State) { calls++ })
	other := 0
	s.Subscribe(func(State) { other++ })

	unsub()
	unsub() // second call is a no-op and must not remove anyone else

	if err := s.Dispatch(SetTotal(3)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if calls != 0 {
		t.Error("unsubscribed listener was notified")
	}
	if other != 1 {
		t.Errorf("remaining listener notified %d times, want 1", other)
	}
}

func TestUnsubscribe_MidNotification(t *testing.T) {
	s := newTestStore()

	var unsubSecond func()
	firstCalls, secondCalls := 0, 0

	s.Subscribe(func(State) {
		firstCalls++
		unsubSecond()
	})
	unsubSecond = s.Subscribe(func(State) { secondCalls++ })

	// In-flight pass was snapshotted before the unsubscribe.
	if err := s.Dispatch(SetTotal(1)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if secondCalls != 1 {
		t.Errorf("in-flight pass should still deliver, got %d", secondCalls)
	}

	if err := s.Dispatch(SetTotal(2)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if secondCalls != 1 {
		t.Errorf("future dispatches must skip the removed listener, got %d", secondCalls)
	}
	if firstCalls != 2 {
		t.Errorf("remaining listener notified %d times, want 2", firstCalls)
	}
}

func TestDispatch_ReentrancyFromSubscriber(t *testing.T) {
	s := newTestStore()

	var reentrantErr error
	s.Subscribe(func(State) {
		reentrantErr = s.Dispatch(SetTotal(99))
	})

	if err := s.Dispatch(SetTotal(1)); err != nil {
		t.Fatalf("outer Dispatch failed: %v", err)
	}

	if reentrantErr == nil {
		t.Fatal("reentrant dispatch should fail")
	}
	var rErr *errors.ReentrancyError
	if !errors.As(reentrantErr, &rErr) {
		t.Fatalf("expected ReentrancyError, got %T: %v", reentrantErr, reentrantErr)
	}

	if got := s.GetState().TotalMembers; got != 1 {
		t.Errorf("TotalMembers = %d, want 1 (reentrant dispatch must not mutate)", got)
	}
}

func TestDispatch_ReentrancyFromReducer(t *testing.T) {
	var s *Store
	reducer := func(st State, a Action) State {
		if a.Type == ActionSetTotal {
			if err := s.Dispatch(Reset()); err == nil {
				t.Error("dispatch from a reducer should fail")
			}
		}
		return Reduce(st, a)
	}
	s = New(NewState(), reducer)

	if err := s.Dispatch(SetTotal(5)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if got := s.GetState().TotalMembers; got != 5 {
		t.Errorf("TotalMembers = %d, want 5", got)
	}
}

func TestDispatch_ReducerPanicLeavesStateIntact(t *testing.T) {
	boom := func(State, Action) State { panic("reducer exploded") }
	s := New(State{TotalMembers: 9, EditingIndex: -1}, boom)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("reducer panic should propagate to the Dispatch caller")
			}
		}()
		_ = s.Dispatch(SetTotal(1))
	}()

	if got := s.GetState().TotalMembers; got != 9 {
		t.Errorf("TotalMembers = %d, want 9 (pre-dispatch value)", got)
	}

	// The store must not be stuck in the dispatching state.
	if err := s.Dispatch(Reset()); err != nil {
		t.Errorf("store rejected a later dispatch after a reducer panic: %v", err)
	}
}

func TestGetState_ReturnsCopy(t *testing.T) {
	s := newTestStore()
	if err := s.Dispatch(AddMember("Ann")); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	st := s.GetState()
	st.Members[0] = "mutated"

	if got := s.GetState().Members[0]; got != "Ann" {
		t.Errorf("stored state was mutated through GetState: %q", got)
	}
}

func TestDispatch_NoChangeStillNotifies(t *testing.T) {
	s := newTestStore()

	calls := 0
	s.Subscribe(func(State) { calls++ })

	// Confirming an unset total is a rejected transition: same state.
	if err := s.Dispatch(ConfirmTotal()); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("subscribers notified %d times, want 1 (every dispatch notifies)", calls)
	}
}

func TestOnChange_Adapter(t *testing.T) {
	s := newTestStore()

	calls := 0
	unsub := s.OnChange(func() { calls++ })

	_ = s.Dispatch(SetTotal(2))
	unsub()
	_ = s.Dispatch(SetTotal(3))

	if calls != 1 {
		t.Errorf("OnChange callback ran %d times, want 1", calls)
	}
}
