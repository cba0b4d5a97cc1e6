package cmd

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"testing"
)

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	err := Execute(context.Background(), []string{"--version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_Help verifies --help returns without error.
func TestExecute_Help(t *testing.T) {
	err := Execute(context.Background(), []string{"--help"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_ListEmpty verifies a bare invocation on a pipe lists the
// empty table and exits cleanly.  Test stdin is never a terminal, so
// this does not enter the interpreter.
func TestExecute_ListEmpty(t *testing.T) {
	err := Execute(context.Background(), []string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	err := Execute(context.Background(), []string{"--nonexistent-flag"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// TestExecute_Open connects to a local listener and exits 0.
func TestExecute_Open(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	err = Execute(context.Background(), []string{"-n", "127.0.0.1", strconv.Itoa(port)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_OpenResolutionFailure verifies an unresolvable host maps
// to a failure status.
func TestExecute_OpenResolutionFailure(t *testing.T) {
	err := Execute(context.Background(), []string{"-n", "nonexistent.invalid"})
	if err == nil {
		t.Fatal("expected resolution error")
	}
	if !strings.Contains(err.Error(), "host resolution failure") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestExecute_OpenConnectFailure verifies connect exhaustion is only a
// warning: the command still exits 0.
func TestExecute_OpenConnectFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	err = Execute(context.Background(), []string{"-n", "127.0.0.1", strconv.Itoa(port)})
	if err != nil {
		t.Fatalf("connect failure must not fail the command, got: %v", err)
	}
}

// TestExecute_BadPort verifies port validation.
func TestExecute_BadPort(t *testing.T) {
	for _, port := range []string{"0", "99999", "abc"} {
		t.Run(port, func(t *testing.T) {
			err := Execute(context.Background(), []string{"host.example.com", port})
			if err == nil {
				t.Fatal("expected port error")
			}
		})
	}
}

// TestExecute_CloseMissingFd verifies closing an unknown descriptor
// reports a not-found failure.  Each invocation owns a fresh table, so
// any descriptor is unknown here.
func TestExecute_CloseMissingFd(t *testing.T) {
	err := Execute(context.Background(), []string{"-c", "42"})
	if err == nil {
		t.Fatal("expected fd-not-found error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestExecute_CloseAllEmpty verifies draining an empty table succeeds.
func TestExecute_CloseAllEmpty(t *testing.T) {
	err := Execute(context.Background(), []string{"-c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_TooManyArgs covers both argument forms.
func TestExecute_TooManyArgs(t *testing.T) {
	for _, args := range [][]string{
		{"host", "23", "extra"},
		{"-c", "3", "4"},
	} {
		t.Run(fmt.Sprint(args), func(t *testing.T) {
			if err := Execute(context.Background(), args); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

// TestExecute_CloseBadFd verifies descriptor parsing.
func TestExecute_CloseBadFd(t *testing.T) {
	err := Execute(context.Background(), []string{"-c", "-1"})
	if err == nil {
		t.Fatal("expected invalid descriptor error")
	}
}
