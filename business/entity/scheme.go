package entity

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/forest33/bitguard/pkg/bits"
)

const (
	SchemeNameParity1D = "parity1d"
	SchemeNameParity2D = "parity2d"
	SchemeNameCRC      = "crc"
	SchemeNameChecksum = "checksum"

	ParityEven Parity = "even"
	ParityOdd  Parity = "odd"

	minPolynomialLength = 2
)

// SchemeNames lists the supported error detection schemes
var SchemeNames = []string{SchemeNameParity1D, SchemeNameParity2D, SchemeNameCRC, SchemeNameChecksum}

// Scheme is one of Parity1D, Parity2D, CRC or Checksum together with its option.
type Scheme interface {
	Name() string
	Option() string
	isScheme()
}

// Parity even or odd parity rule
type Parity string

// Parity1D one parity bit per segment
type Parity1D struct {
	Parity Parity
}

// Parity2D row parity per segment plus one column parity segment
type Parity2D struct {
	Parity Parity
}

// CRC cyclic redundancy check over the whole message
type CRC struct {
	Polynomial bits.String
}

// Checksum one's complement sum of all segments
type Checksum struct {
	// Param is carried on the wire but has no effect
	Param string
}

func (p Parity1D) Name() string   { return SchemeNameParity1D }
func (p Parity1D) Option() string { return string(p.Parity) }
func (p Parity1D) isScheme()      {}

func (p Parity2D) Name() string   { return SchemeNameParity2D }
func (p Parity2D) Option() string { return string(p.Parity) }
func (p Parity2D) isScheme()      {}

func (c CRC) Name() string   { return SchemeNameCRC }
func (c CRC) Option() string { return string(c.Polynomial) }
func (c CRC) isScheme()      {}

func (c Checksum) Name() string   { return SchemeNameChecksum }
func (c Checksum) Option() string { return c.Param }
func (c Checksum) isScheme()      {}

// Bit returns the parity bit for a bit count: even parity sets the bit when the count is odd.
func (p Parity) Bit(ones int) byte {
	odd := byte(ones & 1)
	if p == ParityOdd {
		return odd ^ 1
	}
	return odd
}

// ParseParity validates a parity option
func ParseParity(option string) (Parity, error) {
	switch p := Parity(strings.ToLower(option)); p {
	case ParityEven, ParityOdd:
		return p, nil
	default:
		return "", errors.Wrapf(ErrWrongParity, "%q, valid options: even, odd", option)
	}
}

// ParsePolynomial validates a CRC generator polynomial
func ParsePolynomial(option string) (bits.String, error) {
	poly, err := bits.Parse(option)
	if err != nil {
		return "", errors.Wrapf(ErrWrongPolynomial, "%q is not a binary string (e.g. 1011)", option)
	}
	if poly.Len() < minPolynomialLength {
		return "", errors.Wrapf(ErrWrongPolynomial, "%q is shorter than %d bits", option, minPolynomialLength)
	}
	if poly.Ones() == 0 {
		return "", errors.Wrapf(ErrWrongPolynomial, "%q has no set bits", option)
	}
	return poly, nil
}

// ParseScheme builds a Scheme from its wire name and option.
// Any failure is a configuration error.
func ParseScheme(name, option string) (Scheme, error) {
	switch strings.ToLower(name) {
	case SchemeNameParity1D:
		p, err := ParseParity(option)
		if err != nil {
			return nil, err
		}
		return Parity1D{Parity: p}, nil
	case SchemeNameParity2D:
		p, err := ParseParity(option)
		if err != nil {
			return nil, err
		}
		return Parity2D{Parity: p}, nil
	case SchemeNameCRC:
		poly, err := ParsePolynomial(option)
		if err != nil {
			return nil, err
		}
		return CRC{Polynomial: poly}, nil
	case SchemeNameChecksum:
		return Checksum{Param: option}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownScheme, "%q, valid schemes: %s", name, strings.Join(SchemeNames, ", "))
	}
}
