package roster

import (
	"strings"
	"testing"

	"github.com/teamdraft/teamdraft/internal/event"
	"github.com/teamdraft/teamdraft/internal/gate"
)

func newTestController() (*Model, *Controller) {
	m := NewModel(nil)
	c := NewController(m, nil, gate.Immediate())
	c.Start()
	return m, c
}

func TestController_SubmitRendersFrame(t *testing.T) {
	_, c := newTestController()
	defer c.Stop()

	if !c.SubmitName("Ann") {
		t.Fatal("SubmitName failed")
	}
	if out := c.Output(); !strings.Contains(out, "Ann") {
		t.Errorf("Output missing Ann:\n%s", out)
	}
}

func TestController_RejectedSubmitKeepsFrame(t *testing.T) {
	_, c := newTestController()
	defer c.Stop()

	c.SubmitName("Ann")
	before := c.Output()

	if c.SubmitName("   ") {
		t.Error("blank submit succeeded")
	}
	if c.Output() != before {
		t.Error("frame changed after a rejected submit")
	}
}

func TestController_CompositionDefersSubmit(t *testing.T) {
	m, c := newTestController()
	defer c.Stop()

	c.BeginComposition()
	if c.SubmitName("Kim") {
		t.Error("submit passed through during a composition")
	}
	if m.Len() != 0 {
		t.Fatal("model mutated during a composition")
	}

	c.EndComposition()
	if m.Len() != 1 {
		t.Fatal("deferred submit did not fire on composition end")
	}
	if got := m.Members()[0]; got != "Kim" {
		t.Errorf("Members[0] = %q, want Kim", got)
	}
}

func TestController_CompositionKeepsLatestIntent(t *testing.T) {
	m, c := newTestController()
	defer c.Stop()

	c.BeginComposition()
	c.SubmitName("Kim")
	c.SubmitName("Ann")
	c.EndComposition()

	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (intents collapse)", m.Len())
	}
	if got := m.Members()[0]; got != "Ann" {
		t.Errorf("Members[0] = %q, want the latest intent", got)
	}
}

func TestController_CompositionWithoutIntent(t *testing.T) {
	m, c := newTestController()
	defer c.Stop()

	c.BeginComposition()
	c.EndComposition()
	if m.Len() != 0 {
		t.Error("composition end without an intent mutated the model")
	}
}

func TestController_EditFlow(t *testing.T) {
	m, c := newTestController()
	defer c.Stop()

	c.SubmitName("Ann")
	c.SubmitName("Bob")
	c.SubmitName("Bob") // Bob-1, Bob-2

	if !c.BeginEdit(2) {
		t.Fatal("BeginEdit failed")
	}
	if out := c.Output(); !strings.Contains(out, "✎") {
		t.Errorf("editing marker missing:\n%s", out)
	}

	if !c.CommitEdit(2, "9") {
		t.Fatal("CommitEdit failed")
	}
	if got := m.Members()[2]; got != "Bob-9" {
		t.Errorf("Members[2] = %q, want Bob-9", got)
	}
	if m.EditingIndex() != -1 {
		t.Error("edit mode survived a commit")
	}
}

func TestController_CancelEdit(t *testing.T) {
	m, c := newTestController()
	defer c.Stop()

	c.SubmitName("Ann")
	c.BeginEdit(0)
	c.CancelEdit()
	if m.EditingIndex() != -1 {
		t.Error("CancelEdit left edit mode active")
	}
}

func TestController_Delete(t *testing.T) {
	m, c := newTestController()
	defer c.Stop()

	c.SubmitName("Ann")
	c.SubmitName("Bob")
	if !c.Delete(0) {
		t.Fatal("Delete failed")
	}
	if got := m.Members(); len(got) != 1 || got[0] != "Bob" {
		t.Errorf("Members = %v, want [Bob]", got)
	}
	if out := c.Output(); strings.Contains(out, "Ann") {
		t.Errorf("deleted member still rendered:\n%s", out)
	}
}

func TestController_SaveEventUpdatesStatus(t *testing.T) {
	bus := event.NewBus()
	m := NewModel(bus)
	c := NewController(m, bus, gate.Immediate())
	c.Start()
	defer c.Stop()

	bus.Publish(event.NewSaveCompletedEvent(true, "2 teams"))
	if out := c.Output(); !strings.Contains(out, "saved: 2 teams") {
		t.Errorf("status missing after save event:\n%s", out)
	}

	bus.Publish(event.NewSaveCompletedEvent(false, "endpoint unreachable"))
	if out := c.Output(); !strings.Contains(out, "save failed") {
		t.Errorf("failure status missing:\n%s", out)
	}
}

func TestController_StopDetaches(t *testing.T) {
	bus := event.NewBus()
	m := NewModel(bus)
	c := NewController(m, bus, gate.Immediate())
	c.Start()
	c.Stop()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount = %d after Stop, want 0", bus.SubscriptionCount())
	}

	before := c.Output()
	m.AddMember("Ann")
	if c.Output() != before {
		t.Error("frame changed after Stop")
	}
}

func TestController_ViewCallbacksWired(t *testing.T) {
	m, c := newTestController()
	defer c.Stop()

	v := c.View()
	v.OnSubmit("Ann")
	if m.Len() != 1 {
		t.Error("OnSubmit not wired to the model")
	}
	v.OnEdit(0)
	if m.EditingIndex() != 0 {
		t.Error("OnEdit not wired to the model")
	}
	v.OnDelete(0)
	if m.Len() != 0 {
		t.Error("OnDelete not wired to the model")
	}
}
