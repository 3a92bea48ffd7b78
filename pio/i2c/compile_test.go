package i2c

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompileEmpty(t *testing.T) {
	if msgs := Compile(0x20, nil); len(msgs) != 0 {
		t.Errorf("Empty transaction compiled to %v", msgs)
	}
	if msgs := Compile(0x20, []Operation{}); len(msgs) != 0 {
		t.Errorf("Empty transaction compiled to %v", msgs)
	}
}

func TestCompileExamples(t *testing.T) {
	reg := []byte{0x12}
	buf4 := make([]byte, 4)
	buf2 := make([]byte, 2)
	buf3 := make([]byte, 3)
	data := []byte{1, 2, 3}

	tests := []struct {
		name string
		ops  []Operation
		want []Message
	}{
		{
			"read",
			[]Operation{ReadOp(buf4)},
			[]Message{{Addr: 0x20, Dir: DirRead, Buf: buf4}},
		},
		{
			"write",
			[]Operation{WriteOp(data)},
			[]Message{{Addr: 0x20, Dir: DirWrite, Buf: data}},
		},
		{
			"write then read",
			[]Operation{WriteOp(reg), ReadOp(buf4)},
			[]Message{
				{Addr: 0x20, Dir: DirWrite, Buf: reg, NoStop: true},
				{Addr: 0x20, Dir: DirRead, Buf: buf4},
			},
		},
		{
			"two reads",
			[]Operation{ReadOp(buf2), ReadOp(buf3)},
			[]Message{
				{Addr: 0x20, Dir: DirRead, Buf: buf2, NoStop: true},
				{Addr: 0x20, Dir: DirRead, Buf: buf3, NoStart: true},
			},
		},
		{
			"mixed",
			[]Operation{WriteOp(reg), WriteOp(data), ReadOp(buf2), ReadOp(buf3), WriteOp(reg)},
			[]Message{
				{Addr: 0x20, Dir: DirWrite, Buf: reg, NoStop: true},
				{Addr: 0x20, Dir: DirWrite, Buf: data, NoStart: true, NoStop: true},
				{Addr: 0x20, Dir: DirRead, Buf: buf2, NoStop: true},
				{Addr: 0x20, Dir: DirRead, Buf: buf3, NoStart: true, NoStop: true},
				{Addr: 0x20, Dir: DirWrite, Buf: reg},
			},
		},
	}

	for _, test := range tests {
		got := Compile(0x20, test.ops)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestCompileKeepsBuffers(t *testing.T) {
	a := make([]byte, 2)
	b := make([]byte, 2)
	msgs := Compile(0x50, []Operation{ReadOp(a), ReadOp(b)})

	msgs[0].Buf[0] = 0xAA
	msgs[1].Buf[1] = 0xBB
	if a[0] != 0xAA || b[1] != 0xBB {
		t.Error("Messages do not reference the caller buffers")
	}
}

func TestCompileProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for iter := 0; iter < 500; iter++ {
		ops := make([]Operation, 1+rnd.Intn(8))
		for i := range ops {
			buf := make([]byte, rnd.Intn(5))
			if rnd.Intn(2) == 0 {
				ops[i] = ReadOp(buf)
			} else {
				ops[i] = WriteOp(buf)
			}
		}

		msgs := Compile(0x3C, ops)
		if len(msgs) != len(ops) {
			t.Fatalf("%d operations compiled to %d messages", len(ops), len(msgs))
		}

		if msgs[0].NoStart {
			t.Errorf("First message suppresses start: %v", msgs)
		}
		if msgs[len(msgs)-1].NoStop {
			t.Errorf("Last message suppresses stop: %v", msgs)
		}

		for i, m := range msgs {
			if m.Addr != 0x3C || m.Dir != ops[i].Dir || len(m.Buf) != len(ops[i].Buf) {
				t.Errorf("Message %d does not match its operation: %v", i, m)
			}
			if i < len(msgs)-1 && !m.NoStop {
				t.Errorf("Message %d of %d allows stop: %v", i, len(msgs), msgs)
			}
			if i > 0 {
				same := ops[i-1].Dir == ops[i].Dir
				if m.NoStart != same {
					t.Errorf("Message %d NoStart=%v after direction %s->%s", i, m.NoStart, ops[i-1].Dir, ops[i].Dir)
				}
			}
		}
	}
}

func TestMessageWire(t *testing.T) {
	tests := []struct {
		msg   Message
		flags uint16
		str   string
	}{
		{Message{Addr: 0x20, Dir: DirWrite, Buf: []byte{0x12}, NoStop: true}, FlagNoStop, "S20W[1]-"},
		{Message{Addr: 0x20, Dir: DirRead, Buf: make([]byte, 4)}, FlagRead, "S20R[4]P"},
		{Message{Addr: 0x20, Dir: DirRead, NoStart: true, NoStop: true}, FlagRead | FlagNoStart | FlagNoStop, "-20R[0]-"},
	}

	for _, test := range tests {
		if f := test.msg.Flags(); f != test.flags {
			t.Errorf("%v: flags %#x, expected %#x", test.msg, f, test.flags)
		}
		if s := test.msg.String(); s != test.str {
			t.Errorf("String is %q, expected %q", s, test.str)
		}
		if a := test.msg.WireAddr(); a != 0x40 {
			t.Errorf("Wire address %#x, expected 0x40", a)
		}
	}
}
