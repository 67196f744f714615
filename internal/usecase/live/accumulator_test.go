package live

import (
	"bytes"
	"testing"
)

func fragment(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func TestAccumulatorBatchBoundary(t *testing.T) {
	acc := NewAccumulator(10, 1024)

	for i := 0; i < 9; i++ {
		if seg := acc.Submit(fragment('a', 200)); seg != nil {
			t.Fatalf("fragment %d produced a segment before the batch boundary", i+1)
		}
	}

	seg := acc.Submit(fragment('a', 200))
	if seg == nil {
		t.Fatal("10th fragment did not produce a segment")
	}
	if len(seg) != 2000 {
		t.Errorf("segment length = %d, want 2000", len(seg))
	}
	if acc.Pending() != 0 {
		t.Errorf("pending = %d after assembly, want 0", acc.Pending())
	}
}

func TestAccumulatorHeaderPrependedFromSecondBatch(t *testing.T) {
	acc := NewAccumulator(10, 1024)
	header := fragment('h', 300)

	acc.Submit(header)
	for i := 0; i < 9; i++ {
		acc.Submit(fragment('a', 200))
	}

	for i := 0; i < 9; i++ {
		if seg := acc.Submit(fragment('b', 200)); seg != nil {
			t.Fatalf("unexpected segment at fragment %d of second batch", i+1)
		}
	}
	second := acc.Submit(fragment('b', 200))
	if second == nil {
		t.Fatal("second batch did not produce a segment")
	}
	if !bytes.HasPrefix(second, header) {
		t.Error("second segment does not start with the retained header")
	}
	if len(second) != len(header)+2000 {
		t.Errorf("second segment length = %d, want %d", len(second), len(header)+2000)
	}
}

func TestAccumulatorHeaderIsFirstNonEmptyFragment(t *testing.T) {
	acc := NewAccumulator(10, 1024)

	acc.Submit(nil)
	acc.Submit([]byte{})
	header := fragment('h', 500)
	acc.Submit(header)
	for i := 0; i < 7; i++ {
		acc.Submit(fragment('a', 200))
	}

	for i := 0; i < 9; i++ {
		acc.Submit(fragment('b', 200))
	}
	seg := acc.Submit(fragment('b', 200))
	if seg == nil {
		t.Fatal("second batch did not produce a segment")
	}
	if !bytes.HasPrefix(seg, header) {
		t.Error("header was not taken from the first non-empty fragment")
	}
}

func TestAccumulatorDiscardsTinySegments(t *testing.T) {
	acc := NewAccumulator(10, 1024)

	for i := 0; i < 10; i++ {
		if seg := acc.Submit(fragment('a', 50)); seg != nil {
			t.Fatalf("500-byte batch was not discarded as noise: %d bytes", len(seg))
		}
	}
	if acc.Pending() != 0 {
		t.Errorf("pending = %d after discard, want 0", acc.Pending())
	}

	// The next accepted batch is still treated as the first: no header
	// duplication after a discarded opener.
	for i := 0; i < 10; i++ {
		acc.Submit(fragment('c', 200))
	}
}

func TestAccumulatorFlush(t *testing.T) {
	acc := NewAccumulator(10, 1024)

	if seg := acc.Flush(); seg != nil {
		t.Error("flush on an empty accumulator returned a segment")
	}

	for i := 0; i < 3; i++ {
		acc.Submit(fragment('a', 600))
	}
	seg := acc.Flush()
	if seg == nil {
		t.Fatal("flush with pending fragments returned nil")
	}
	if len(seg) != 1800 {
		t.Errorf("flushed segment length = %d, want 1800", len(seg))
	}
	if acc.Pending() != 0 {
		t.Errorf("pending = %d after flush, want 0", acc.Pending())
	}

	// A flushed remainder below the noise floor is dropped too.
	acc.Submit(fragment('b', 100))
	if seg := acc.Flush(); seg != nil {
		t.Errorf("tiny flushed remainder was not discarded: %d bytes", len(seg))
	}
}
