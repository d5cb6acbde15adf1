package raster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var errBadPPM = errors.New("malformed PPM header")

// DecodePPM reads a portable pixmap in binary (P6) or ASCII (P3) form.
//
// Sample values are rescaled to 8 bits when the header's maxval is not 255.
// Maxvals above 255 use two big-endian bytes per sample in P6, as the format
// requires.
func DecodePPM(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read PPM magic: %w", err)
	}
	if magic != "P6" && magic != "P3" {
		return nil, fmt.Errorf("unsupported PPM magic %q", magic)
	}

	var header [3]int
	for i := range header {
		tok, err := readToken(br)
		if err != nil {
			return nil, fmt.Errorf("failed to read PPM header: %w", err)
		}
		header[i], err = strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadPPM, tok)
		}
	}
	width, height, maxval := header[0], header[1], header[2]
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: size %dx%d", errBadPPM, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: PPM size %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}
	if maxval < 1 || maxval > 65535 {
		return nil, fmt.Errorf("%w: maxval %d", errBadPPM, maxval)
	}

	m := New(width, height)
	scale := func(v int) uint8 {
		if maxval == 255 {
			return uint8(v)
		}
		return uint8(v * 255 / maxval)
	}

	if magic == "P3" {
		for i := range m.Pix {
			var ch [3]int
			for c := range ch {
				tok, err := readToken(br)
				if err != nil {
					return nil, fmt.Errorf("failed to read PPM sample %d: %w", i, err)
				}
				v, err := strconv.Atoi(tok)
				if err != nil || v < 0 || v > maxval {
					return nil, fmt.Errorf("invalid PPM sample %q", tok)
				}
				ch[c] = v
			}
			m.Pix[i] = RGB{R: scale(ch[0]), G: scale(ch[1]), B: scale(ch[2])}
		}
		return m, nil
	}

	bytesPerSample := 1
	if maxval > 255 {
		bytesPerSample = 2
	}
	buf := make([]byte, width*3*bytesPerSample)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("failed to read PPM row %d: %w", y, err)
		}
		row := m.Row(y)
		for x := range row {
			var ch [3]int
			for c := range ch {
				k := (x*3 + c) * bytesPerSample
				if bytesPerSample == 2 {
					ch[c] = int(buf[k])<<8 | int(buf[k+1])
				} else {
					ch[c] = int(buf[k])
				}
				if ch[c] > maxval {
					return nil, fmt.Errorf("invalid PPM sample %d above maxval %d", ch[c], maxval)
				}
			}
			row[x] = RGB{R: scale(ch[0]), G: scale(ch[1]), B: scale(ch[2])}
		}
	}
	return m, nil
}

// EncodePPM writes m as a binary (P6) pixmap with maxval 255.
func EncodePPM(w io.Writer, m *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", m.Width, m.Height); err != nil {
		return err
	}
	buf := make([]byte, m.Width*3)
	for y := 0; y < m.Height; y++ {
		for x, c := range m.Row(y) {
			buf[x*3] = c.R
			buf[x*3+1] = c.G
			buf[x*3+2] = c.B
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// readToken returns the next whitespace-delimited header token, skipping
// '#' comments. The single whitespace byte that ends the token is consumed.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", io.ErrUnexpectedEOF
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}
