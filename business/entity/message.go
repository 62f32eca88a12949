package entity

import (
	"github.com/forest33/bitguard/pkg/bits"
)

const (
	WireDelimiter       = ","
	WireFieldCount      = 3
	VerdictAccepted     = "Message was received correctly. Message is "
	VerdictRejected     = "Message receiving failed. Messaged received is "
	DefaultSegmentWidth = 8
)

// Request wire message sent by the sender: encoded frame, scheme name and scheme option.
type Request struct {
	Frame  bits.String
	Scheme Scheme
}

// Verdict receiver's classification of one exchange
type Verdict struct {
	Accepted bool
	Payload  bits.String
}

// Exchange everything the sender knows about one request/response round trip
type Exchange struct {
	ID       string
	Message  bits.String
	Segments []bits.String
	Encoded  []bits.String
	Scheme   Scheme
	Verdict  *Verdict
}

// Connection point-to-point byte stream carrying exactly one request and one reply
type Connection interface {
	Send(data []byte) error
	Receive() ([]byte, error)
	Close() error
}

func (v Verdict) String() string {
	if v.Accepted {
		return VerdictAccepted + string(v.Payload)
	}
	return VerdictRejected + string(v.Payload)
}

func (e *Exchange) Frame() bits.String {
	return bits.Join(e.Encoded)
}
