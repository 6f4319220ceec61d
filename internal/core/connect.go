package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"rsterm/config"
	rerrors "rsterm/internal/errors"
	"rsterm/internal/handshake"
	"rsterm/internal/metrics"
	"rsterm/internal/mux"
	"rsterm/internal/session"
	"rsterm/internal/teardown"
	"rsterm/internal/terminal"
	"rsterm/internal/transport"
	"rsterm/util"
)

// Messages printed to the user.
const (
	ConnectErrorMessage = "connect error!"
	greetingFormat      = "connected to %s, Please Enter %s to exit!\n"
)

// keyName spells out an exit key for the greeting.
func keyName(b byte) string {
	switch {
	case b < 0x20:
		return "Control+" + string(rune('@'+b))
	case b == 0x7f:
		return "Delete"
	}
	return fmt.Sprintf("%q", rune(b))
}

// ConnectMode dials the server and bridges the local terminal to it
// until the exit key, a signal, or a connection fault.
type ConnectMode struct {
	Dialer transport.Dialer
	Host   string
	Port   int

	Credential uint32
	Handshake  bool // send Credential on first contact

	Output       string // transcript path, empty for none
	PollInterval time.Duration
	ExitKey      byte

	Logger  *util.Logger
	Metrics *metrics.Collector

	// Stdin/Stdout default to os.Stdin/os.Stdout and Terminal to the
	// device behind os.Stdin.  Override in tests.
	Stdin    io.Reader
	Stdout   io.Writer
	Terminal terminal.Device
}

func (m *ConnectMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ConnectMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *ConnectMode) device() terminal.Device {
	if m.Terminal != nil {
		return m.Terminal
	}
	return terminal.NewFileDevice(os.Stdin)
}

// Run connects, switches the terminal to raw mode, and relays bytes
// until the session ends.  A refused connection is reported and
// returns nil without touching the terminal.  A session that ends on a
// fault returns an *errors.ExitError that has already been reported.
func (m *ConnectMode) Run(ctx context.Context) error {
	defer m.Dialer.Close()
	if m.Logger == nil {
		m.Logger = util.NewLogger(0)
	}
	out := m.stdout()
	addr := util.FormatAddr(m.Host, m.Port)

	m.Logger.Verbose("connecting to %s", addr)
	conn, err := transport.Connect(ctx, m.Dialer, m.Host, m.Port)
	if err != nil {
		fmt.Fprintln(out, ConnectErrorMessage) //nolint:errcheck
		m.Logger.Verbose("%v", err)
		if rerrors.IsRefused(err) {
			return nil
		}
		return rerrors.Exit(teardown.ExitFault, err)
	}
	exitKey := m.ExitKey
	if exitKey == 0 {
		exitKey = config.DefaultExitKey
	}
	fmt.Fprintf(out, greetingFormat, conn.PeerAddr(), keyName(exitKey)) //nolint:errcheck

	ctrl := terminal.NewController(m.device())
	sess := session.New(conn, ctrl, handshake.New(m.Credential, m.Handshake), out, m.Logger, m.Metrics)

	// Everything that can fail before raw mode is done here so the
	// terminal is never left switched on an early error.
	if m.Output != "" {
		if err := sess.OpenSink(m.Output); err != nil {
			conn.Close()
			return err
		}
	}
	if err := ctrl.Capture(); err != nil {
		closeAll(sess.Closers())
		return err
	}
	if err := ctrl.EnterRawMode(); err != nil {
		closeAll(sess.Closers())
		return err
	}

	logOut := m.Logger.Output()
	m.Logger.SetOutput(util.NewCRLFWriter(logOut))
	defer m.Logger.SetOutput(logOut)

	m.Logger.Verbose("raw mode on, handshake enabled=%v", sess.Handshake.Enabled())

	loop := &mux.Multiplexer{
		Conn:         conn,
		Keys:         m.stdin(),
		Display:      sess.Output(),
		Handshake:    sess.Handshake,
		ExitKey:      exitKey,
		PollInterval: m.PollInterval,
		OnTick:       sess.Flush,
		Logger:       m.Logger,
		Metrics:      m.Metrics,
	}
	outcome := loop.Run(ctx)

	coord := &teardown.Coordinator{
		Display:  util.NewCRLFWriter(out),
		Terminal: ctrl,
		Drain:    sess.Decoder(),
		Closers:  sess.Closers(),
		Logger:   m.Logger,
		Metrics:  m.Metrics,
	}
	return teardown.Err(outcome, coord.Teardown(outcome))
}

func closeAll(cs []io.Closer) {
	for _, c := range cs {
		c.Close() //nolint:errcheck
	}
}
