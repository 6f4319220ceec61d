//go:build windows

package errors

import "golang.org/x/sys/windows"

var (
	refusedErrnos = []error{windows.WSAECONNREFUSED}
	resetErrnos   = []error{windows.WSAECONNRESET, windows.WSAECONNABORTED, windows.ERROR_BROKEN_PIPE}
)
