package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
)

// printExchange prints the message and the encoded frame grouped by width, then the verdict
func printExchange(w io.Writer, ex *entity.Exchange, width int) {
	message := ex.Message.Group(width)
	encoded := strings.Join(bits.Strings(ex.Encoded), " ")

	fmt.Fprintf(w, "\n%s %s\n", ex.Scheme.Name(), ex.Scheme.Option())
	fmt.Fprintf(w, "\nMessage\n%s\n%s\n", strings.Repeat("-", len(message)), message)
	fmt.Fprintf(w, "\nEncoded\n%s\n%s\n", strings.Repeat("-", len(encoded)), encoded)
	if ex.Verdict != nil {
		fmt.Fprintf(w, "\n%s\n", ex.Verdict)
	}
}
