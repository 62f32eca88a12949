// Package wire marshals the request record and the verdict reply exchanged by sender and receiver.
package wire

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
)

const (
	fieldIndexFrame = iota
	fieldIndexScheme
	fieldIndexOption
)

// MarshalRequest encodes req as "<frame>,<scheme>,<option>".
func MarshalRequest(req *entity.Request) ([]byte, error) {
	if req.Scheme == nil {
		return nil, errors.Wrap(entity.ErrUnknownScheme, "empty scheme")
	}
	if _, err := bits.Parse(string(req.Frame)); err != nil {
		return nil, errors.Wrap(entity.ErrWrongPayload, err.Error())
	}

	fields := []string{string(req.Frame), req.Scheme.Name(), req.Scheme.Option()}
	for _, f := range fields[fieldIndexScheme:] {
		if strings.Contains(f, entity.WireDelimiter) {
			return nil, errors.Wrapf(entity.ErrDelimiterInField, "%q", f)
		}
	}

	return []byte(strings.Join(fields, entity.WireDelimiter)), nil
}

// UnmarshalRequest decodes a request record. Scheme and option go through entity.ParseScheme.
func UnmarshalRequest(data []byte) (*entity.Request, error) {
	if len(data) == 0 {
		return nil, entity.ErrEmptyFrame
	}

	fields := strings.Split(strings.TrimRight(string(data), "\r\n"), entity.WireDelimiter)
	if len(fields) != entity.WireFieldCount {
		return nil, errors.Wrapf(entity.ErrWrongFieldCount, "got %d, expected %d", len(fields), entity.WireFieldCount)
	}

	frame, err := bits.Parse(fields[fieldIndexFrame])
	if err != nil {
		return nil, errors.Wrap(entity.ErrWrongPayload, err.Error())
	}

	scheme, err := entity.ParseScheme(fields[fieldIndexScheme], fields[fieldIndexOption])
	if err != nil {
		return nil, err
	}

	return &entity.Request{
		Frame:  frame,
		Scheme: scheme,
	}, nil
}

func MarshalVerdict(v *entity.Verdict) []byte {
	return []byte(v.String())
}

// UnmarshalVerdict parses the single line reply of the receiver.
func UnmarshalVerdict(data []byte) (*entity.Verdict, error) {
	reply := strings.TrimRight(string(data), "\r\n")

	var v entity.Verdict
	switch {
	case strings.HasPrefix(reply, entity.VerdictAccepted):
		v.Accepted = true
		reply = strings.TrimPrefix(reply, entity.VerdictAccepted)
	case strings.HasPrefix(reply, entity.VerdictRejected):
		reply = strings.TrimPrefix(reply, entity.VerdictRejected)
	default:
		return nil, errors.Wrapf(entity.ErrWrongReply, "%q", reply)
	}

	payload, err := bits.Parse(reply)
	if err != nil {
		return nil, errors.Wrapf(entity.ErrWrongReply, "payload %q: %v", reply, err)
	}
	v.Payload = payload

	return &v, nil
}
