package mpu6050

// --- MOCK HARDWARE FOR TESTING ---

// mockBus stands in for the I2C bus. It holds a 256-byte register file for a single
// device: reads copy out from the selected register, writes copy in.
type mockBus struct {
	mem    [256]byte
	writes [][]byte
	addr   uint16
	reads  int
	txs    int

	// err is returned from the failFrom'th transaction on (1-based; 0 fails every one).
	err      error
	failFrom int
}

func (m *mockBus) Tx(addr uint16, w, r []byte) error {
	m.txs++
	m.addr = addr
	if m.err != nil && m.txs >= m.failFrom {
		return m.err
	}
	if len(w) == 0 {
		return nil
	}
	reg := int(w[0])
	if len(r) == 0 {
		m.writes = append(m.writes, append([]byte(nil), w...))
		copy(m.mem[reg:], w[1:])
		return nil
	}
	m.reads++
	copy(r, m.mem[reg:])
	return nil
}

// setWords stores big-endian 16-bit values starting at reg.
func (m *mockBus) setWords(reg uint8, words ...int16) {
	for i, v := range words {
		m.mem[int(reg)+2*i] = byte(uint16(v) >> 8)
		m.mem[int(reg)+2*i+1] = byte(v)
	}
}

// failNext makes every transaction from the next one on return err.
func (m *mockBus) failNext(err error) {
	m.err = err
	m.failFrom = m.txs + 1
}

func (m *mockBus) recover() {
	m.err = nil
}
