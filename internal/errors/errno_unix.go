//go:build unix

package errors

import "golang.org/x/sys/unix"

var (
	refusedErrnos = []error{unix.ECONNREFUSED}
	resetErrnos   = []error{unix.ECONNRESET, unix.EPIPE, unix.ECONNABORTED}
)
