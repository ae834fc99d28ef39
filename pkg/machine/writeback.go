package machine

// writebackCycle implements the Write-Back stage (spec §4.9): every
// occupied Post-* slot drains unconditionally this cycle, writing its
// result into the pending register file and releasing the register's
// reservation. An ALU/ALU-B drain also retires that unit's scoreboard
// entry, promoting its shadow reservation (if any) into the active slot
// for next cycle.
func (m *Machine) writebackCycle() error {
	if e, ok := m.postALU.Committed(); ok {
		if err := m.drain(e); err != nil {
			return err
		}
		m.scoreboard.Retire(FUALU)
	}
	if e, ok := m.postALUB.Committed(); ok {
		if err := m.drain(e); err != nil {
			return err
		}
		m.scoreboard.Retire(FUALUB)
	}
	if e, ok := m.postMEM.Committed(); ok {
		if err := m.drain(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) drain(e Entry) error {
	dest, has := e.Inst.WriteReg()
	if !has {
		return nil
	}
	if err := m.regsPending.Write(dest, e.Result); err != nil {
		return err
	}
	return m.regsPending.Clear(dest)
}
