package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question and reports whether the answer was yes.
// Anything other than "y" or "yes" declines, including end of input.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
