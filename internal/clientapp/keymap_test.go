package clientapp

import (
	"testing"

	"github.com/mazenet/mazenet/internal/ui/fake"
)

func TestCaptureInputLatchesUntilOpposingKey(t *testing.T) {
	screen := fake.New()
	var held heldKeys

	screen.PushKey("w")
	input := captureInput(screen, &held)
	if !input.Forward || input.Backward {
		t.Fatalf("after w: %+v", input)
	}

	// No new key this tick: forward should stay latched.
	input = captureInput(screen, &held)
	if !input.Forward {
		t.Fatalf("forward should stay latched with no new key: %+v", input)
	}

	screen.PushKey("s")
	input = captureInput(screen, &held)
	if input.Forward || !input.Backward {
		t.Fatalf("after s: %+v", input)
	}

	screen.PushKey("x")
	input = captureInput(screen, &held)
	if input.Forward || input.Backward || input.Left || input.Right {
		t.Fatalf("after stop key: %+v", input)
	}
}

func TestCaptureInputFireStampsFreshNonceEachPress(t *testing.T) {
	screen := fake.New()
	var held heldKeys

	screen.PushKey("f")
	first := captureInput(screen, &held)
	if !first.Fire || first.FireNonce == nil {
		t.Fatalf("expected a fired input with a nonce: %+v", first)
	}

	idle := captureInput(screen, &held)
	if idle.Fire || idle.FireNonce != nil {
		t.Fatalf("fire should not latch across ticks: %+v", idle)
	}

	screen.PushKey("f")
	second := captureInput(screen, &held)
	if !second.Fire || second.FireNonce == nil || *second.FireNonce == *first.FireNonce {
		t.Fatalf("second fire should carry a distinct nonce: first=%+v second=%+v", first, second)
	}
}

func TestCaptureInputTogglesZoom(t *testing.T) {
	screen := fake.New()
	var held heldKeys

	screen.PushKey("z")
	if !captureInput(screen, &held).IsZoomed {
		t.Fatal("expected zoom toggled on")
	}
	screen.PushKey("z")
	if captureInput(screen, &held).IsZoomed {
		t.Fatal("expected zoom toggled back off")
	}
}
