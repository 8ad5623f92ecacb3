package serveapp

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestHelpAndVersion(t *testing.T) {
	var out, errb bytes.Buffer
	if code := Run([]string{"-h"}, &out, &errb); code != 0 || !strings.Contains(out.String(), "--max-conns") {
		t.Fatalf("help: exit %d\n%s", code, out.String())
	}
	out.Reset()
	if code := Run([]string{"--version"}, &out, &errb); code != 0 || !strings.HasPrefix(out.String(), "ligysis-serve version") {
		t.Fatalf("version: exit %d %q", code, out.String())
	}
	if code := Run([]string{"--rate", "-1"}, io.Discard, &errb); code != 2 {
		t.Fatalf("bad flag: want 2, got %d", code)
	}
}

func TestServeUntilCanceled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() { done <- runContext(ctx, []string{"-q"}, io.Discard, io.Discard, ln) }()

	body := `{"fingerprints": [{"id": "L1", "residues": [10, 11]}, {"id": "L2", "residues": [11, 12]}]}`
	resp, err := http.Post("http://"+ln.Addr().String()+"/v1/sites", "application/json", strings.NewReader(body))
	if err != nil {
		cancel()
		t.Fatalf("post: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), `"site_id"`) {
		cancel()
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}

	cancel()
	select {
	case code := <-done:
		if code != 0 {
			t.Fatalf("exit %d", code)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("service did not stop")
	}
}
