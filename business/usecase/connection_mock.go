package usecase

// MockConnection in-memory entity.Connection holding one request and recording the reply
type MockConnection struct {
	Request    []byte
	Reply      []byte
	ReceiveErr error
	SendErr    error
	Closed     bool
	sends      int
}

func (m *MockConnection) Send(data []byte) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.sends++
	m.Reply = append(m.Reply, data...)
	return nil
}

func (m *MockConnection) Receive() ([]byte, error) {
	return m.Request, m.ReceiveErr
}

func (m *MockConnection) Close() error {
	m.Closed = true
	return nil
}

// Sends returns the number of successful Send calls
func (m *MockConnection) Sends() int {
	return m.sends
}
