package calc

// MemoryAdd adds the current value to memory. A pending expression is
// evaluated first; if that fails the entry shows ErrorText and memory is
// unchanged.
func MemoryAdd(s State, unit AngleUnit) (State, error) {
	return memoryAccumulate(s, unit, 1)
}

// MemorySubtract subtracts the current value from memory.
func MemorySubtract(s State, unit AngleUnit) (State, error) {
	return memoryAccumulate(s, unit, -1)
}

func memoryAccumulate(s State, unit AngleUnit, sign float64) (State, error) {
	if s.IsError() {
		return s, nil
	}
	x, err := operand(s, unit)
	if err != nil {
		return s.withError(), err
	}
	s.Memory = Round(s.Memory+sign*x, Precision)
	s.HasMemory = true
	return s.withValue(x), nil
}

// MemoryRecall enters the stored value. Without a stored value it is a
// no-op.
func MemoryRecall(s State) State {
	if !s.HasMemory {
		return s
	}
	return insertOperand(s, FormatNumber(s.Memory))
}

// MemoryClear empties the memory cell.
func MemoryClear(s State) State {
	s.Memory = 0
	s.HasMemory = false
	return s
}
