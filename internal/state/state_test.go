package state

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestStateJSONForms(t *testing.T) {
	cases := []struct {
		st   State
		want string
	}{
		{Idle(), `{"tag":"Idle"}`},
		{Valid(), `{"tag":"Valid"}`},
		{Error("disk full"), `{"tag":"Error","message":"disk full"}`},
	}
	for _, c := range cases {
		data, err := json.Marshal(c.st)
		if err != nil {
			t.Fatalf("marshal %v: %v", c.st, err)
		}
		if string(data) != c.want {
			t.Errorf("marshal %v = %s, want %s", c.st, data, c.want)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	for _, st := range []State{Idle(), Valid(), Error("backend unreachable")} {
		data, err := json.Marshal(st)
		if err != nil {
			t.Fatalf("marshal %v: %v", st, err)
		}
		var got State
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != st {
			t.Errorf("round trip %v = %v", st, got)
		}
	}
}

func TestStateUnknownTagRejected(t *testing.T) {
	var st State
	err := json.Unmarshal([]byte(`{"tag":"Degraded"}`), &st)
	if err == nil {
		t.Fatal("expected error for unknown tag")
	}
	if !strings.Contains(err.Error(), "Degraded") {
		t.Errorf("error should name the tag: %v", err)
	}
}

func TestStateIsError(t *testing.T) {
	if Idle().IsError() || Valid().IsError() {
		t.Error("Idle/Valid must not be errors")
	}
	if !Error("boom").IsError() {
		t.Error("Error must report IsError")
	}
}

func TestStateEquality(t *testing.T) {
	if Error("a") == Error("b") {
		t.Error("errors with different messages must differ")
	}
	if Error("a") != Error("a") {
		t.Error("identical errors must be equal")
	}
	if Idle() == Valid() {
		t.Error("Idle and Valid must differ")
	}
}

func TestZeroStateIsIdle(t *testing.T) {
	var st State
	if st.Tag() != TagIdle {
		t.Fatalf("zero state tag = %q, want Idle", st.Tag())
	}
}

func TestTrackedDataRoundTrip(t *testing.T) {
	ts := time.Date(2025, 4, 12, 9, 30, 0, 123456789, time.UTC)
	td := New("ingest-worker", Error("disk full"), ts)
	data, err := json.Marshal(td)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got TrackedData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != td.ID || got.State != td.State || !got.Timestamp.Equal(td.Timestamp) {
		t.Errorf("round trip mismatch: %+v != %+v", got, td)
	}
}
