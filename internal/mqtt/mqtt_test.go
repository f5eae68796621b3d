package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

var ts = time.Date(2026, 1, 1, 8, 15, 0, 0, time.UTC)

func TestFormatPayload(t *testing.T) {
	payload, err := FormatPayload(Event{
		Timestamp: ts,
		Type:      EventAlarmFired,
		Detail:    "08:15",
	})
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var p Payload
	if err := json.Unmarshal(payload, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Controller.Event != "ALARM_FIRED" {
		t.Errorf("event: got %q, want ALARM_FIRED", p.Controller.Event)
	}
	if p.Controller.Detail != "08:15" {
		t.Errorf("detail: got %q, want 08:15", p.Controller.Detail)
	}
	if p.Controller.Timestamp != "2026-01-01T08:15:00Z" {
		t.Errorf("timestamp: got %q", p.Controller.Timestamp)
	}
}

func TestFormatPayloadOmitsEmptyDetail(t *testing.T) {
	payload, err := FormatPayload(Event{Timestamp: ts, Type: EventTimerFinished})
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := raw["controller"]["detail"]; present {
		t.Error("expected detail to be omitted when empty")
	}
}

func TestFormatSystemPayload(t *testing.T) {
	payload, err := FormatSystemPayload(SystemEvent{
		Timestamp: ts,
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var p SystemPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.System.Event != "SHUTDOWN" || p.System.Reason != "SIGTERM" {
		t.Errorf("got %+v", p.System)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"custom":true}`)
	payload, err := FormatSystemPayload(SystemEvent{Timestamp: ts, Event: "STARTUP", RawPayload: raw})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("expected raw payload passthrough, got %s", payload)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	f.Publish(Event{Timestamp: ts, Type: EventTimerStarted, Detail: "0h 0m 2s"})
	f.Publish(Event{Timestamp: ts, Type: EventTimerFinished})

	types := f.EventTypes()
	if len(types) != 2 || types[0] != EventTimerStarted || types[1] != EventTimerFinished {
		t.Errorf("types: got %v", types)
	}
	if len(f.Payloads) != 2 {
		t.Errorf("payloads: got %d, want 2", len(f.Payloads))
	}
}

func TestFakePublisherError(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("simulated error")

	if err := f.Publish(Event{Timestamp: ts, Type: EventBuzzerOff}); err == nil {
		t.Error("expected error to be returned")
	}
	if len(f.Events) != 0 {
		t.Error("failed publish must not be recorded")
	}
}

func TestRingBufferFIFO(t *testing.T) {
	r := newRingBuffer(3)
	r.push(bufferedMsg{topic: "a"})
	r.push(bufferedMsg{topic: "b"})

	msgs := r.drainAll()
	if len(msgs) != 2 || msgs[0].topic != "a" || msgs[1].topic != "b" {
		t.Errorf("drain: got %v", msgs)
	}
	if r.len() != 0 {
		t.Errorf("len after drain: got %d, want 0", r.len())
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	r := newRingBuffer(3)
	for _, topic := range []string{"a", "b", "c", "d", "e"} {
		r.push(bufferedMsg{topic: topic})
	}

	msgs := r.drainAll()
	if len(msgs) != 3 {
		t.Fatalf("len: got %d, want 3", len(msgs))
	}
	want := []string{"c", "d", "e"}
	for i, m := range msgs {
		if m.topic != want[i] {
			t.Errorf("msg %d: got %q, want %q", i, m.topic, want[i])
		}
	}
}

func TestRingBufferDrainEmpty(t *testing.T) {
	r := newRingBuffer(2)
	if msgs := r.drainAll(); msgs != nil {
		t.Errorf("expected nil from empty drain, got %v", msgs)
	}
}

func TestRingBufferReusableAfterDrain(t *testing.T) {
	r := newRingBuffer(2)
	r.push(bufferedMsg{topic: "a"})
	r.push(bufferedMsg{topic: "b"})
	r.push(bufferedMsg{topic: "c"}) // overflow
	r.drainAll()

	r.push(bufferedMsg{topic: "d"})
	msgs := r.drainAll()
	if len(msgs) != 1 || msgs[0].topic != "d" {
		t.Errorf("after reuse: got %v", msgs)
	}
}
