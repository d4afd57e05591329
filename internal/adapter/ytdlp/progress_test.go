package ytdlp

import (
	"reflect"
	"testing"
)

func TestProgressParser(t *testing.T) {
	var got []int
	p := newProgressParser(func(pct int) { got = append(got, pct) })

	p.Write([]byte("[youtube] abc: Downloading webpage\n"))
	p.Write([]byte("[download] Destination: downfiles-x.mp4\n"))
	p.Write([]byte("[download]   0.0% of 10.00MiB at Unknown speed\r"))
	p.Write([]byte("[download]  42.3% of 10.00MiB at 1.20MiB/s\n"))
	p.Write([]byte("[download] 100% of 10.00MiB in 00:08\n"))

	want := []int{0, 42, 100}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("percentages = %v, want %v", got, want)
	}
}

func TestProgressParser_SplitChunks(t *testing.T) {
	var got []int
	p := newProgressParser(func(pct int) { got = append(got, pct) })

	// One progress line arriving in arbitrary slices.
	p.Write([]byte("[down"))
	p.Write([]byte("load]  55"))
	p.Write([]byte(".5% of 1.00MiB"))
	if len(got) != 0 {
		t.Fatalf("reported %v before the line ended", got)
	}
	p.Write([]byte(" at 1.00MiB/s\n"))

	want := []int{55}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("percentages = %v, want %v", got, want)
	}
}

func TestProgressParser_NilCallback(t *testing.T) {
	p := newProgressParser(nil)
	// Must not panic.
	p.Write([]byte("[download]  10.0% of 1.00MiB\n"))
}

func TestTailBuffer(t *testing.T) {
	tb := newTailBuffer(8)
	tb.Write([]byte("abc"))
	if got := tb.String(); got != "abc" {
		t.Errorf("String() = %q, want %q", got, "abc")
	}

	tb.Write([]byte("defghijk"))
	if got := tb.String(); got != "defghijk" {
		t.Errorf("String() = %q, want last 8 bytes %q", got, "defghijk")
	}

	tb.Write([]byte("LM"))
	if got := tb.String(); got != "fghijkLM" {
		t.Errorf("String() = %q, want %q", got, "fghijkLM")
	}
}
