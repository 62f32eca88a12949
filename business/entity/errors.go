package entity

import (
	"errors"
	"io"
	"net"
	"os"
)

var (
	ErrUnknownScheme     = errors.New("unknown error detection scheme")
	ErrWrongParity       = errors.New("wrong parity option")
	ErrWrongPolynomial   = errors.New("wrong CRC polynomial")
	ErrWrongSegmentWidth = errors.New("wrong segment width")
	ErrWrongMessageBits  = errors.New("wrong number of message bits")
	ErrDelimiterInField  = errors.New("wire field contains delimiter")
	ErrWrongFieldCount   = errors.New("wrong wire record field count")
	ErrWrongPayload      = errors.New("wrong wire record payload")
	ErrWrongFrameLength  = errors.New("wrong encoded frame length")
	ErrWrongReply        = errors.New("wrong verdict reply")
	ErrFrameTooLarge     = errors.New("maximum frame size exceeded")
	ErrEmptyFrame        = errors.New("empty frame")
	ErrHandlerNotSet     = errors.New("exchange handler is not set")
)

var configurationErrors = []error{
	ErrUnknownScheme,
	ErrWrongParity,
	ErrWrongPolynomial,
	ErrWrongSegmentWidth,
	ErrWrongMessageBits,
	ErrDelimiterInField,
}

// IsConfigurationError reports whether err was caused by an invalid scheme, option or message setting
func IsConfigurationError(err error) bool {
	for _, e := range configurationErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// IsMalformedRecord reports whether err was caused by a wire record that could not be decoded
func IsMalformedRecord(err error) bool {
	return errors.Is(err, ErrWrongFieldCount) ||
		errors.Is(err, ErrWrongPayload) ||
		errors.Is(err, ErrWrongFrameLength) ||
		errors.Is(err, ErrFrameTooLarge) ||
		errors.Is(err, ErrEmptyFrame) ||
		IsConfigurationError(err)
}

func IsErrorInterruptingNetwork(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Timeout() || errors.Is(opErr, net.ErrClosed)
	}
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrDeadlineExceeded)
}
