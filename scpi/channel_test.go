package scpi

import "testing"

func TestCommonCommands(t *testing.T) {
	mc := NewMockChannel()
	mc.Replies["*idn?"] = "KEITHLEY INSTRUMENTS,MODEL DMM6500"
	c := NewCommon(mc)

	c.Clear()
	c.Reset()
	c.Init()
	c.Wait()
	idn, err := c.QueryID()
	if err != nil {
		t.Fatalf("QueryID returned err: %v", err)
	}
	assertStrings(t, idn, "KEITHLEY INSTRUMENTS,MODEL DMM6500")

	want := []string{"*cls", "*rst", "INIT", "*WAI", "*idn?"}
	if len(mc.Sent) != len(want) {
		t.Fatalf("sent %q want %q", mc.Sent, want)
	}
	for i := range want {
		assertStrings(t, mc.Sent[i], want[i])
	}
}

func TestCommonZeroValueIsClosed(t *testing.T) {
	var c Common

	if err := c.Reset(); err != ErrClosed {
		t.Errorf("Reset: got %v want ErrClosed", err)
	}
	if _, err := c.QueryID(); err != ErrClosed {
		t.Errorf("QueryID: got %v want ErrClosed", err)
	}
}

func TestMockChannelClose(t *testing.T) {
	mc := NewMockChannel()

	if err := mc.Close(); err != nil {
		t.Fatalf("Close returned err: %v", err)
	}
	if !mc.IsClosed() {
		t.Error("IsClosed should report true")
	}
	if err := mc.Write("*cls"); err != ErrClosed {
		t.Errorf("Write after close: got %v want ErrClosed", err)
	}
	if len(mc.Sent) != 0 {
		t.Errorf("nothing should be recorded after close, got %q", mc.Sent)
	}
}
