package domain

import "testing"

func TestAssignmentTracksLoadAndStations(t *testing.T) {
	v := &Vehicle{ID: 1, CapacityKg: 1000}
	a := NewAssignment(v, false)

	a.Add(&Cargo{ID: 10, StationID: 5, WeightKg: 300})
	a.Add(&Cargo{ID: 11, StationID: 7, WeightKg: 400})
	a.Add(&Cargo{ID: 12, StationID: 5, WeightKg: 100})

	if a.CurrentLoad != 800 {
		t.Fatalf("load = %d, want 800", a.CurrentLoad)
	}
	if a.RemainingCapacity() != 200 {
		t.Fatalf("remaining = %d, want 200", a.RemainingCapacity())
	}

	ids := a.StationIDs()
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 7 {
		t.Fatalf("station ids = %v, want [5 7]", ids)
	}
	if a.LastStationID() != 7 {
		t.Fatalf("last station = %d, want 7", a.LastStationID())
	}

	if a.Fits(&Cargo{WeightKg: 201}) {
		t.Error("201 kg should not fit in 200 kg of slack")
	}
	if !a.Fits(&Cargo{WeightKg: 200}) {
		t.Error("200 kg should fit exactly")
	}
}

func TestAssignmentEmptyLastStation(t *testing.T) {
	a := NewAssignment(&Vehicle{ID: 1, CapacityKg: 100}, true)
	if got := a.LastStationID(); got != 0 {
		t.Fatalf("empty assignment last station = %d, want 0", got)
	}
}
