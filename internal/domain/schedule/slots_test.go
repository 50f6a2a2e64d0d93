package schedule

import (
	"testing"
	"time"
)

func day(hh, mm int) time.Time {
	return time.Date(2026, 3, 2, hh, mm, 0, 0, time.UTC)
}

func TestBuildSlotsBasic(t *testing.T) {
	slots := BuildSlots(day(9, 0), day(12, 0), time.Hour, time.Hour, nil)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	for i, s := range slots {
		if !s.Available {
			t.Errorf("slot %d must be available", i)
		}
	}
	if !slots[0].Start.Equal(day(9, 0)) || !slots[2].Start.Equal(day(11, 0)) {
		t.Fatalf("unexpected slot starts: %v, %v", slots[0].Start, slots[2].Start)
	}
}

func TestBuildSlotsAscendingOrder(t *testing.T) {
	slots := BuildSlots(day(9, 0), day(18, 0), 30*time.Minute, 15*time.Minute, nil)
	for i := 1; i < len(slots); i++ {
		if !slots[i-1].Start.Before(slots[i].Start) {
			t.Fatalf("slots out of order at %d", i)
		}
	}
}

func TestBuildSlotsNoPartialSlot(t *testing.T) {
	// окно 09:00–10:30, услуга 60 минут: последний кандидат — 09:30
	slots := BuildSlots(day(9, 0), day(10, 30), time.Hour, 30*time.Minute, nil)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	last := slots[len(slots)-1]
	if last.End.After(day(10, 30)) {
		t.Fatalf("slot window must not cross window end, got %v", last.End)
	}
}

func TestBuildSlotsServiceLongerThanWindow(t *testing.T) {
	if slots := BuildSlots(day(9, 0), day(9, 30), time.Hour, time.Hour, nil); len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestBuildSlotsMarksBusy(t *testing.T) {
	busy := []Interval{{Start: day(10, 0), End: day(11, 0)}}
	slots := BuildSlots(day(9, 0), day(12, 0), time.Hour, time.Hour, busy)
	if len(slots) != 3 {
		t.Fatalf("busy slots must not disappear, got %d", len(slots))
	}
	if !slots[0].Available || slots[1].Available || !slots[2].Available {
		t.Fatalf("expected availability [true false true], got [%v %v %v]",
			slots[0].Available, slots[1].Available, slots[2].Available)
	}
}

func TestBuildSlotsFullyBookedDay(t *testing.T) {
	busy := []Interval{{Start: day(9, 0), End: day(18, 0)}}
	slots := BuildSlots(day(9, 0), day(18, 0), time.Hour, time.Hour, busy)
	if len(slots) != 9 {
		t.Fatalf("fully booked day keeps all slots, got %d", len(slots))
	}
	for i, s := range slots {
		if s.Available {
			t.Errorf("slot %d must be unavailable", i)
		}
	}
}

func TestBuildSlotsEdgeTouchIsNotOverlap(t *testing.T) {
	// запись 10:00–11:00 не задевает слоты 09:00–10:00 и 11:00–12:00
	busy := []Interval{{Start: day(10, 0), End: day(11, 0)}}
	slots := BuildSlots(day(9, 0), day(12, 0), time.Hour, time.Hour, busy)
	if !slots[0].Available || !slots[2].Available {
		t.Fatal("touching windows must not count as overlap")
	}
}

func TestBuildSlotsDegenerateInput(t *testing.T) {
	if BuildSlots(day(10, 0), day(9, 0), time.Hour, time.Hour, nil) != nil {
		t.Fatal("inverted window must yield nothing")
	}
	if BuildSlots(day(9, 0), day(10, 0), 0, time.Hour, nil) != nil {
		t.Fatal("zero duration must yield nothing")
	}
	if BuildSlots(day(9, 0), day(10, 0), time.Hour, 0, nil) != nil {
		t.Fatal("zero step must yield nothing")
	}
}
