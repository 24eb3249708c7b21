package solve

import (
	"testing"
	"time"
)

func TestDisplayPlus2OverMinute(t *testing.T) {
	st := New(124*time.Second+10*time.Millisecond, PenaltyPlus2)
	if got := st.String(); got != "2:06.01+" {
		t.Fatalf("expected 2:06.01+, got %q", got)
	}
}

func TestDisplayTruncatesCentiseconds(t *testing.T) {
	st := New(1239*time.Millisecond, PenaltyNone)
	if got := st.String(); got != "1.23" {
		t.Fatalf("expected 1.23, got %q", got)
	}
}

func TestDisplayFormats(t *testing.T) {
	cases := []struct {
		st   SolveTime
		want string
	}{
		{New(0, PenaltyNone), "0.00"},
		{New(9*time.Second+990*time.Millisecond, PenaltyNone), "9.99"},
		{New(59*time.Second+999*time.Millisecond, PenaltyNone), "59.99"},
		{New(60*time.Second, PenaltyNone), "1:00.00"},
		{New(58*time.Second+500*time.Millisecond, PenaltyPlus2), "1:00.50+"},
		{New(12*time.Second, PenaltyDNF), "DNF"},
		{New(10*time.Minute+5*time.Second+70*time.Millisecond, PenaltyNone), "10:05.07"},
	}
	for _, tc := range cases {
		if got := tc.st.String(); got != tc.want {
			t.Fatalf("display %+v: expected %q, got %q", tc.st, tc.want, got)
		}
	}
}

func TestRecordedTime(t *testing.T) {
	if d, ok := New(time.Second, PenaltyNone).RecordedTime(); !ok || d != time.Second {
		t.Fatalf("unexpected recorded time %v %v", d, ok)
	}
	if d, ok := New(time.Second, PenaltyPlus2).RecordedTime(); !ok || d != 3*time.Second {
		t.Fatalf("unexpected plus2 recorded time %v %v", d, ok)
	}
	if _, ok := New(time.Second, PenaltyDNF).RecordedTime(); ok {
		t.Fatalf("expected DNF to have no recorded time")
	}
}

func TestCompareOrdering(t *testing.T) {
	fast := New(9*time.Second, PenaltyNone)
	slow := New(10*time.Second, PenaltyNone)
	plus := New(8*time.Second+500*time.Millisecond, PenaltyPlus2)
	dnfFast := New(time.Second, PenaltyDNF)
	dnfSlow := New(time.Hour, PenaltyDNF)

	if Compare(fast, slow) >= 0 || Compare(slow, fast) <= 0 {
		t.Fatalf("expected faster time to sort first")
	}
	if Compare(plus, slow) <= 0 {
		t.Fatalf("expected 10.50+ to be slower than 10.00")
	}
	if Compare(slow, dnfFast) >= 0 {
		t.Fatalf("expected any ranked time to beat DNF")
	}
	if Compare(dnfFast, fast) <= 0 {
		t.Fatalf("expected DNF to be worse regardless of elapsed")
	}
	if Compare(dnfFast, dnfSlow) != 0 {
		t.Fatalf("expected DNFs to compare equal")
	}
	if !fast.Less(slow) || slow.Less(fast) {
		t.Fatalf("unexpected Less result")
	}
}

func TestMeanPropagatesDNF(t *testing.T) {
	times := []SolveTime{
		New(10*time.Second, PenaltyNone),
		New(12*time.Second, PenaltyNone),
		New(11*time.Second, PenaltyPlus2),
	}
	if got := Mean(times); got.IsDNF() || got.Elapsed != 35*time.Second/3 {
		t.Fatalf("unexpected mean %+v", got)
	}
	times[1] = New(12*time.Second, PenaltyDNF)
	if got := Mean(times); !got.IsDNF() {
		t.Fatalf("expected DNF mean, got %+v", got)
	}
}

func TestNewPanicsOnNegativeElapsed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for negative elapsed")
		}
	}()
	New(-time.Millisecond, PenaltyNone)
}

func TestParsePenalty(t *testing.T) {
	for _, p := range Penalties {
		parsed, err := ParsePenalty(p.String())
		if err != nil || parsed != p {
			t.Fatalf("round trip %v: got %v, %v", p, parsed, err)
		}
	}
	if _, err := ParsePenalty("+3"); err == nil {
		t.Fatalf("expected error for unknown penalty")
	}
}
