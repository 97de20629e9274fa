//go:build unix

package sysx

import "golang.org/x/sys/unix"

// WriteAll writes all of buf to fd, retrying short writes. A write has
// somewhere to go; anything less than the full buffer is a failure.
func WriteAll(fd int, buf []byte) error {
	for len(buf) > 0 {
		n, err := unix.Write(fd, buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// ReadAll fills buf from fd unless end of file arrives first, returning the
// number of bytes read.
func ReadAll(fd int, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := unix.Read(fd, buf[total:])
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
		total += n
	}
	return total, nil
}

// CopyFD copies the remainder of in to out, returning the bytes transferred.
func CopyFD(in, out int) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := unix.Read(in, buf)
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		if err := WriteAll(out, buf[:n]); err != nil {
			return total, err
		}
		total += int64(n)
	}
}
