package lsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"
)

// maxMessageSize bounds a single request body.
const maxMessageSize = 64 << 20

var (
	errNoContentLength = errors.New("missing Content-Length header")
	errMessageTooLarge = errors.New("message too large")
)

// readMessage reads one base-protocol frame. Header names are case
// insensitive; everything except Content-Length is ignored.
func readMessage(r *bufio.Reader) ([]byte, error) {
	size, err := readContentLength(r)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func readContentLength(r *bufio.Reader) (int, error) {
	size := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(name)) != "Content-Length" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid Content-Length %q", value)
		}
		size = n
	}
	switch {
	case size < 0:
		return 0, errNoContentLength
	case size > maxMessageSize:
		return 0, fmt.Errorf("%w: %d bytes", errMessageTooLarge, size)
	}
	return size, nil
}

func writeMessage(w io.Writer, payload []byte) error {
	header := "Content-Length: " + strconv.Itoa(len(payload)) + "\r\n\r\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
