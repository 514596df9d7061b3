package scpi

import (
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func assertStrings(t testing.TB, got, want string) {
	t.Helper()

	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestParseOnOff(t *testing.T) {
	cases := map[string]bool{
		"ON":   true,
		"OFF":  false,
		"on":   false,
		"ON ":  false,
		"":     false,
		"1":    false,
		"\x00": false,
	}
	for reply, want := range cases {
		if got := ParseOnOff(reply); got != want {
			t.Errorf("ParseOnOff(%q) = %v want %v", reply, got, want)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	n, err := ParseInt(" 42\r")
	if err != nil || n != 42 {
		t.Errorf("ParseInt got %d, %v", n, err)
	}

	v, err := ParseFloat("9.91E+37")
	if err != nil || v != 9.91e37 {
		t.Errorf("ParseFloat got %v, %v", v, err)
	}

	_, err = ParseInt("N,5")
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("ParseInt on junk: got %v want a *strconv.NumError cause", err)
	}
}

func TestParseFloats(t *testing.T) {
	got, err := ParseFloats("1.5, -2e-3,3\n")
	if err != nil {
		t.Fatalf("ParseFloats returned err: %v", err)
	}
	want := []float64{1.5, -0.002, 3}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d len(want) = %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("for index [%d] got: %v want: %v", i, got[i], want[i])
		}
	}

	empty, err := ParseFloats("")
	if err != nil || len(empty) != 0 {
		t.Errorf("empty reply: got %v, %v", empty, err)
	}

	if _, err := ParseFloats("1,x,3"); err == nil {
		t.Error("expected error for non-numeric element")
	}
}

func TestQueryHelpers(t *testing.T) {
	mc := NewMockChannel()
	mc.Replies[":NUM?"] = "7"
	mc.Replies[":BAD?"] = "seven"
	mc.Replies[":STATE?"] = "ON"

	n, err := QueryInt(mc, ":NUM?")
	if err != nil || n != 7 {
		t.Errorf("QueryInt got %d, %v", n, err)
	}

	_, err = QueryFloat(mc, ":BAD?")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if got := err.Error(); got != `:BAD?: parsing numeric reply "seven": strconv.ParseFloat: parsing "seven": invalid syntax` {
		t.Errorf("unexpected message %q", got)
	}

	on, err := QueryOnOff(mc, ":STATE?")
	if err != nil || !on {
		t.Errorf("QueryOnOff got %v, %v", on, err)
	}

	transport := errors.New("link down")
	mc.QueryErr = transport
	if _, err := QueryInt(mc, ":NUM?"); err != transport {
		t.Errorf("transport error should pass through unchanged, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	assertStrings(t, FormatFloat(4.2), "4.2")
	assertStrings(t, FormatFloat(1), "1")
	assertStrings(t, FormatFloat(0.5), "0.5")
	assertStrings(t, FormatFloat(100000), "100000")
	assertStrings(t, FormatSeconds(5*time.Second), "5")
	assertStrings(t, FormatSeconds(0), "0")
	assertStrings(t, FormatSeconds(500*time.Nanosecond), "5e-07")
	assertStrings(t, FormatSeconds(1500*time.Millisecond), "1.5")
	assertStrings(t, OnOff(true), "ON")
	assertStrings(t, OnOff(false), "OFF")
}
