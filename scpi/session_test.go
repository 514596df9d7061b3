package scpi

import (
	"bufio"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/text/encoding/charmap"

	"github.com/jonathangjertsen/benchscpi/internal/monitor"
)

// fakeInstrument answers newline terminated commands from replies and
// records everything it receives. Commands without a reply get none.
type fakeInstrument struct {
	mu       sync.Mutex
	received []string
	replies  map[string]string
}

func (fi *fakeInstrument) serve(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		fi.mu.Lock()
		fi.received = append(fi.received, line)
		reply, ok := fi.replies[line]
		fi.mu.Unlock()
		if ok {
			conn.Write([]byte(reply + "\n"))
		}
	}
}

func (fi *fakeInstrument) lines() []string {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	return append([]string(nil), fi.received...)
}

func newPipeSession(t *testing.T, name string, cfg Config, replies map[string]string) (*Session, *fakeInstrument) {
	t.Helper()

	client, server := net.Pipe()
	fi := &fakeInstrument{replies: replies}
	go fi.serve(server)
	s := NewSession(name, client, cfg, nil)
	t.Cleanup(func() { s.Close() })
	return s, fi
}

func TestSessionWriteAndQuery(t *testing.T) {
	s, fi := newPipeSession(t, "pipe-basic", Config{}, map[string]string{
		"*idn?": "KEITHLEY INSTRUMENTS,MODEL DMM6500,04450000,1.7.12b",
	})

	if err := s.Write("*rst"); err != nil {
		t.Fatalf("Write returned err: %v", err)
	}
	idn, err := s.Query("*idn?")
	if err != nil {
		t.Fatalf("Query returned err: %v", err)
	}
	assertStrings(t, idn, "KEITHLEY INSTRUMENTS,MODEL DMM6500,04450000,1.7.12b")

	got := fi.lines()
	if len(got) != 2 || got[0] != "*rst" || got[1] != "*idn?" {
		t.Errorf("instrument received %q", got)
	}
}

func TestSessionCustomTermination(t *testing.T) {
	client, server := net.Pipe()
	s := NewSession("pipe-crlf", client, Config{ReadTermination: "\r\n", WriteTermination: "\r\n"}, nil)
	defer s.Close()

	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		if string(buf[:n]) == ":INST:NSEL?\r\n" {
			server.Write([]byte("2\r\n"))
		}
	}()

	reply, err := s.Query(":INST:NSEL?")
	if err != nil {
		t.Fatalf("Query returned err: %v", err)
	}
	assertStrings(t, reply, "2")
}

func TestSessionLatin1(t *testing.T) {
	client, server := net.Pipe()
	s := NewSession("pipe-latin1", client, Config{Encoding: charmap.ISO8859_1}, nil)
	defer s.Close()

	received := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		received <- append([]byte(nil), buf[:n]...)
		server.Write([]byte{'1', '0', ' ', 0xb5, 'V', '\n'})
	}()

	reply, err := s.Query("DISP:USER1:TEXT \"µ\"")
	if err != nil {
		t.Fatalf("Query returned err: %v", err)
	}
	assertStrings(t, reply, "10 µV")

	sent := <-received
	if want := []byte("DISP:USER1:TEXT \"\xb5\"\n"); string(sent) != string(want) {
		t.Errorf("sent % x want % x", sent, want)
	}
}

func TestSessionTimeout(t *testing.T) {
	s, _ := newPipeSession(t, "pipe-timeout", Config{Timeout: 50 * time.Millisecond}, nil)

	start := time.Now()
	_, err := s.Query(":TRACe:ACTual? \"defbuffer1\"")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %s", elapsed)
	}
}

func TestSessionUseAfterClose(t *testing.T) {
	s, _ := newPipeSession(t, "pipe-closed", Config{}, nil)

	if err := s.Close(); err != nil {
		t.Fatalf("first Close returned err: %v", err)
	}
	if err := s.Close(); err != ErrClosed {
		t.Errorf("second Close: got %v want ErrClosed", err)
	}
	if err := s.Write("*cls"); err != ErrClosed {
		t.Errorf("Write: got %v want ErrClosed", err)
	}
	if _, err := s.Query("*idn?"); err != ErrClosed {
		t.Errorf("Query: got %v want ErrClosed", err)
	}
}

func TestSessionMetrics(t *testing.T) {
	s, _ := newPipeSession(t, "pipe-metrics", Config{Timeout: 20 * time.Millisecond}, map[string]string{
		"*idn?": "RIGOL TECHNOLOGIES,DP832,DP8XXXXXXXXXX,00.01.14",
	})

	s.Write("*cls")
	s.Query("*idn?")
	s.Query(":NO:REPLY?")

	if got := testutil.ToFloat64(monitor.CommandsTotal.WithLabelValues("pipe-metrics", "write")); got != 1 {
		t.Errorf("writes: got %v want 1", got)
	}
	if got := testutil.ToFloat64(monitor.CommandsTotal.WithLabelValues("pipe-metrics", "query")); got != 2 {
		t.Errorf("queries: got %v want 2", got)
	}
	if got := testutil.ToFloat64(monitor.CommandErrors.WithLabelValues("pipe-metrics", "query")); got != 1 {
		t.Errorf("query errors: got %v want 1", got)
	}
}

func TestResourceManagerOpenTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	fi := &fakeInstrument{replies: map[string]string{":INST:NSEL?": "3"}}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		fi.serve(conn)
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	name := "TCPIP::127.0.0.1::" + strconv.Itoa(port) + "::SOCKET"
	s, err := NewResourceManager(nil).Open(name, Config{Timeout: time.Second})
	if err != nil {
		t.Fatalf("Open returned err: %v", err)
	}
	defer s.Close()

	assertStrings(t, s.Resource(), name)
	n, err := QueryInt(s, ":INST:NSEL?")
	if err != nil || n != 3 {
		t.Errorf("QueryInt got %d, %v", n, err)
	}
}

func TestResourceManagerOpenFailures(t *testing.T) {
	rm := NewResourceManager(nil)

	_, err := rm.Open("GPIB0::6::INSTR", Config{})
	if !errors.Is(err, ErrUnknownResource) {
		t.Errorf("got %v want ErrUnknownResource", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = rm.Open("TCPIP::127.0.0.1::"+strconv.Itoa(port)+"::SOCKET", Config{Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !strings.Contains(err.Error(), "opening TCPIP::127.0.0.1::") {
		t.Errorf("error should name the resource: %v", err)
	}
}
