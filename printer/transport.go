package printer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	logInternal "github.com/AlexStarov/escpos-GoLang-slipfilter/log"
)

type Transport interface {
	Write([]byte) (int, error)
	Read([]byte) (int, error)
	Close() error
}

// WriteAll writes b completely, retrying only the unwritten remainder when
// the write is interrupted. Any other failure is returned as-is.
func WriteAll(t io.Writer, b []byte) error {
	sent := 0
	for sent < len(b) {
		n, err := t.Write(b[sent:])
		sent += n
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

// -------------------- RAW --------------------

type RawTransport struct {
	conn io.ReadWriteCloser
}

// NewRawTransport wraps any writer as a pass-through transport. Writers
// without Read or Close (stdout, bytes.Buffer) get no-op stand-ins.
func NewRawTransport(w io.Writer) *RawTransport {
	if rc, ok := w.(io.ReadWriteCloser); ok {
		return &RawTransport{conn: rc}
	}
	return &RawTransport{conn: nopCloser{w}}
}

func (r *RawTransport) Write(b []byte) (int, error) { return r.conn.Write(b) }
func (r *RawTransport) Read(b []byte) (int, error)  { return r.conn.Read(b) }
func (r *RawTransport) Close() error                { return r.conn.Close() }

// -------------------- LPD --------------------

// LPDTransport buffers the whole job and submits it as a single LPD print
// job (RFC 1179) when closed. Useful for printers hanging off a JetDirect
// style print server on port 515.
type LPDTransport struct {
	conn   net.Conn
	queue  string
	jobBuf bytes.Buffer
	closed bool
	mu     sync.Mutex
}

func NewLPDTransport(conn net.Conn, queue string) *LPDTransport {
	if queue == "" {
		queue = "lp"
	}
	return &LPDTransport{
		conn:  conn,
		queue: queue,
	}
}

func (l *LPDTransport) Write(data []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, io.ErrClosedPipe
	}
	return l.jobBuf.Write(data)
}

func (l *LPDTransport) Read(b []byte) (int, error) {
	return l.conn.Read(b)
}

func (l *LPDTransport) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	defer func() { l.closed = true }()

	if l.jobBuf.Len() == 0 {
		return l.conn.Close()
	}

	if err := l.flushJob(); err != nil {
		_ = l.conn.Close()
		return err
	}

	return l.conn.Close()
}

func (l *LPDTransport) flushJob() error {
	host, _ := os.Hostname()
	if host == "" {
		host = "localhost"
	}
	user := os.Getenv("USER")
	if user == "" {
		user = "GoLang"
	}

	jobID := int(time.Now().UnixNano() % 1000000)
	hostShort := host
	if i := strings.IndexByte(hostShort, '.'); i > 0 {
		hostShort = hostShort[:i]
	}
	jobName := fmt.Sprintf("slipjob-%d", jobID)
	cfName := fmt.Sprintf("cfA%03d%s", jobID%1000, hostShort)
	dfName := fmt.Sprintf("dfA%03d%s", jobID%1000, hostShort)

	// Минимально корректный control file
	// H - host, P - user, J - job name, N - original file name, U - data file to print
	control := fmt.Sprintf(
		"H%s\nP%s\nJ%s\nN%s\nU%s\n",
		host, user, jobName, dfName, dfName,
	)

	if err := requestPrintJob(l.conn, l.queue); err != nil {
		return fmt.Errorf("LPD: stage 1 failed: %w", err)
	}

	if err := sendControlFile(l.conn, l.queue, cfName, []byte(control)); err != nil {
		return fmt.Errorf("LPD: stage 2 failed: %w", err)
	}

	data := l.jobBuf.Bytes()
	logInternal.Debugf("LPD: sending data file (%d bytes)", len(data))
	if err := sendDataFile(l.conn, l.queue, dfName, data); err != nil {
		return fmt.Errorf("LPD: stage 3 failed: %w", err)
	}

	l.jobBuf.Reset()
	return nil
}

// -------------------- LPD helpers --------------------

func requestPrintJob(conn net.Conn, queue string) error {
	// \x02 + <queue>\n
	if err := WriteAll(conn, []byte{0x02}); err != nil {
		return err
	}
	if err := WriteAll(conn, []byte(queue+"\n")); err != nil {
		return err
	}
	return readAck(conn, "stage 1")
}

func sendControlFile(conn net.Conn, queue, cfName string, control []byte) error {
	// \x02 + "<size> <cfName>\n" + <control> + \x00
	if err := WriteAll(conn, []byte{0x02}); err != nil {
		return err
	}
	header := []byte(strconv.Itoa(len(control)) + " " + cfName + "\n")
	if err := WriteAll(conn, header); err != nil {
		return err
	}
	if err := WriteAll(conn, control); err != nil {
		return err
	}
	if err := WriteAll(conn, []byte{0x00}); err != nil {
		return err
	}
	return readAck(conn, "stage 2")
}

func sendDataFile(conn net.Conn, queue, dfName string, data []byte) error {
	// \x03 + "<size> <dfName>\n" + <data> + \x00
	if err := WriteAll(conn, []byte{0x03}); err != nil {
		return err
	}
	header := []byte(strconv.Itoa(len(data)) + " " + dfName + "\n")
	if err := WriteAll(conn, header); err != nil {
		return err
	}
	if err := WriteAll(conn, data); err != nil {
		return err
	}
	if err := WriteAll(conn, []byte{0x00}); err != nil {
		return err
	}
	return readAck(conn, "stage 3")
}

func readAck(conn net.Conn, stage string) error {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	defer conn.SetReadDeadline(time.Time{})

	ack := make([]byte, 1)
	n, err := conn.Read(ack)
	if err != nil {
		return fmt.Errorf("reading ACK on %s: %w", stage, err)
	}
	if n != 1 || ack[0] != 0x00 {
		return fmt.Errorf("LPD request not acknowledged on %s", stage)
	}
	return nil
}

// -------------------- helpers --------------------

type nopCloser struct {
	io.Writer
}

func (n nopCloser) Read(b []byte) (int, error) { return 0, io.EOF }
func (n nopCloser) Close() error               { return nil }
