package units

import "testing"

func TestVoltConvert(t *testing.T) {
	cases := []struct {
		unit  VoltUnit
		value float64
		want  string
	}{
		{Volt, 3.2, "03.200000000"},
		{Volt, 0, "00.000000000"},
		{Volt, 12.5, "12.500000000"},
		{Volt, -3.2, "-3.200000000"},
		{MilliVolt, 3.2, "3200.0000"},
		{MilliVolt, 0.0125, "012.5000"},
		{MicroVolt, 0.0000032, "003.2000"},
		{MicroVolt, 0.5, "500000.0000"},
	}

	for _, tc := range cases {
		if got := tc.unit.Convert(tc.value); got != tc.want {
			t.Errorf("%s.Convert(%v) got %q want %q", tc.unit, tc.value, got, tc.want)
		}
	}
}

func TestCurrentConvert(t *testing.T) {
	if got, want := Amp.Convert(1.5), "01.500000000"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got, want := MilliAmp.Convert(0.001), "001.0000"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got, want := MicroAmp.Convert(0.000010), "010.0000"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestUnitSuffix(t *testing.T) {
	for unit, want := range map[VoltUnit]string{Volt: "V", MilliVolt: "mV", MicroVolt: "µV"} {
		if got := unit.Unit(); got != want {
			t.Errorf("got %s want %s", got, want)
		}
	}
	for unit, want := range map[CurrentUnit]string{Amp: "A", MilliAmp: "mA", MicroAmp: "µA"} {
		if got := unit.Unit(); got != want {
			t.Errorf("got %s want %s", got, want)
		}
	}
}
