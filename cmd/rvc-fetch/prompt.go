package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptONNX asks whether to fetch the large ONNX dereverb model. Only an
// exact "y" (case-insensitive) enables it; any other input, or a closed
// stdin, silently skips the group without being treated as an error.
func promptONNX(in io.Reader, out io.Writer) bool {
	fmt.Fprintln(out, "Optional: MDX-Net Dereverb (ONNX) model")
	fmt.Fprintln(out, "This model is larger and provides stereo reverb removal.")
	fmt.Fprint(out, "Download ONNX dereverb model? (y/n): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}

	return strings.EqualFold(strings.TrimSpace(line), "y")
}
