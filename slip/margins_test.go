package slip

import "testing"

func TestFindMarginsBlankPage(t *testing.T) {
	buf := buildPage(t,
		[]byte{0x00, 0x00},
		[]byte{0x00, 0x00},
		[]byte{0x00, 0x00},
	)

	m := FindMargins(buf)
	if !m.Blank {
		t.Errorf("all-zero page not reported blank: %+v", m)
	}
}

func TestFindMarginsSinglePixel(t *testing.T) {
	lines := make([][]byte, 8)
	for i := range lines {
		lines[i] = []byte{0x00}
	}
	lines[5] = []byte{0x01}
	buf := buildPage(t, lines...)

	m := FindMargins(buf)
	if m.Blank {
		t.Fatal("page with ink reported blank")
	}
	if m.Top != 5 || m.End != 6 {
		t.Errorf("printable range = [%d,%d), want [5,6)", m.Top, m.End)
	}
}

func TestFindMarginsFullPage(t *testing.T) {
	buf := buildPage(t,
		[]byte{0x01},
		[]byte{0x00},
		[]byte{0x80},
	)

	m := FindMargins(buf)
	if m.Blank || m.Top != 0 || m.End != 3 {
		t.Errorf("got %+v, want Top=0 End=3", m)
	}
}

func TestFindMarginsInteriorBlankKept(t *testing.T) {
	buf := buildPage(t,
		[]byte{0x00},
		[]byte{0x10},
		[]byte{0x00},
		[]byte{0x10},
		[]byte{0x00},
	)

	m := FindMargins(buf)
	if m.Top != 1 || m.End != 4 {
		t.Errorf("printable range = [%d,%d), want [1,4)", m.Top, m.End)
	}
}
