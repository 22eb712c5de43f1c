package codec

import (
	"encoding/json"
	"testing"

	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
)

func TestDecodeIntent(t *testing.T) {
	raw := []byte(`{"type":"act","action":"RAISE","clientSeq":4}`)
	in, err := DecodeIntent(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.Type != IntentAct || in.Action != casino.ActionRaise || in.ClientSeq != 4 {
		t.Fatalf("decoded intent: %+v", in)
	}

	if _, err := DecodeIntent([]byte(`{"action":"RAISE"}`)); err == nil {
		t.Fatal("intent without a type must be rejected")
	}
	if _, err := DecodeIntent([]byte(`{"type":"act","action":"JUMP"}`)); err == nil {
		t.Fatal("unknown action must be rejected")
	}
	if _, err := DecodeIntent([]byte(`not json`)); err == nil {
		t.Fatal("malformed payload must be rejected")
	}
}

func TestSnapshotEnvelopeRoundTrip(t *testing.T) {
	snap := casino.Snapshot{Phase: casino.PhaseBetting, Message: "Place your bet."}
	env := WrapSnapshot(7, snap)

	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != EnvelopeSnapshot || decoded["serverSeq"] != float64(7) {
		t.Fatalf("envelope fields: %v", decoded)
	}
	inner := decoded["snapshot"].(map[string]any)
	if inner["phase"] != "BETTING" {
		t.Fatalf("phase must travel as its display string, got %v", inner["phase"])
	}
}

func TestParseTarget(t *testing.T) {
	mt, err := ParseTarget(&Target{Kind: "foundation", Index: 2})
	if err != nil || mt.Kind != casino.PileFoundation || mt.Index != 2 {
		t.Fatalf("target: %+v err=%v", mt, err)
	}
	if _, err := ParseTarget(&Target{Kind: "pocket"}); err == nil {
		t.Fatal("unknown pile kind must be rejected")
	}
	if _, err := ParseTarget(nil); err == nil {
		t.Fatal("nil target must be rejected")
	}
}

func TestParseDrawSource(t *testing.T) {
	if src, err := ParseDrawSource("stock"); err != nil || src != casino.DrawFromStock {
		t.Fatalf("stock: %v %v", src, err)
	}
	if src, err := ParseDrawSource("discard"); err != nil || src != casino.DrawFromDiscard {
		t.Fatalf("discard: %v %v", src, err)
	}
	if _, err := ParseDrawSource("sleeve"); err == nil {
		t.Fatal("unknown source must be rejected")
	}
}
