package i2c

// Compile turns the operations of one transaction into wire messages, one
// per operation. A message suppresses its start condition only when the
// previous operation had the same direction; a direction change always gets a
// repeated start. Every message except the last suppresses the stop
// condition. Buffers are referenced, never copied or merged.
func Compile(addr uint16, ops []Operation) []Message {
	if len(ops) == 0 {
		return nil
	}

	msgs := make([]Message, len(ops))
	for i, op := range ops {
		msgs[i] = Message{
			Addr:    addr,
			Dir:     op.Dir,
			Buf:     op.Buf,
			NoStart: i > 0 && ops[i-1].Dir == op.Dir,
			NoStop:  i < len(ops)-1,
		}
	}

	return msgs
}
