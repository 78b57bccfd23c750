package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
)

func frame(t *testing.T, buf *bytes.Buffer, msg map[string]any) {
	t.Helper()

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	fmt.Fprintf(buf, "Content-Length: %d\r\n\r\n%s", len(data), data)
}

type received struct {
	ID     any             `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *jsonrpcError   `json:"error"`
}

func readFrames(t *testing.T, out *bytes.Buffer) []received {
	t.Helper()

	var msgs []received
	r := bufio.NewReader(out)
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			return msgs
		}
		if err != nil {
			t.Fatalf("read header: %v", err)
		}
		var n int
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &n); err != nil {
			t.Fatalf("bad header %q", line)
		}
		if _, err := r.ReadString('\n'); err != nil {
			t.Fatalf("read blank line: %v", err)
		}
		body := make([]byte, n)
		if _, err := io.ReadFull(r, body); err != nil {
			t.Fatalf("read body: %v", err)
		}
		var msg received
		if err := json.Unmarshal(body, &msg); err != nil {
			t.Fatalf("unmarshal %q: %v", body, err)
		}
		msgs = append(msgs, msg)
	}
}

const testURI = "file:///tmp/main.ak"

const testSource = `var int x = 1;
{
  var string x = 'a';
  writeline(x);
}
writeline(x);
var bool flag = "no";
`

func session(t *testing.T, requests ...map[string]any) []received {
	t.Helper()

	var in, out bytes.Buffer
	frame(t, &in, map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]any{}})
	frame(t, &in, map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/didOpen",
		"params": map[string]any{
			"textDocument": map[string]any{"uri": testURI, "languageId": "akorn", "version": 1, "text": testSource},
		},
	})
	for _, req := range requests {
		frame(t, &in, req)
	}

	if err := NewServer(nil).Run(context.Background(), &in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return readFrames(t, &out)
}

func positionRequest(id int, method string, line, character int) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params": map[string]any{
			"textDocument": map[string]any{"uri": testURI},
			"position":     map[string]any{"line": line, "character": character},
		},
	}
}

func TestInitializeAndDiagnostics(t *testing.T) {
	msgs := session(t)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	var init InitializeResult
	if err := json.Unmarshal(msgs[0].Result, &init); err != nil {
		t.Fatalf("unmarshal initialize result: %v", err)
	}
	if init.ServerInfo.Name != "akorn-lsp" || !init.Capabilities.HoverProvider {
		t.Fatalf("unexpected initialize result %+v", init)
	}

	if msgs[1].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("expected diagnostics, got %q", msgs[1].Method)
	}
	var params PublishDiagnosticsParams
	if err := json.Unmarshal(msgs[1].Params, &params); err != nil {
		t.Fatalf("unmarshal diagnostics: %v", err)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(params.Diagnostics))
	}
	d := params.Diagnostics[0]
	if d.Source != "SemanticError" || d.Range.Start.Line != 6 || d.Range.Start.Character != 16 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func hoverValue(t *testing.T, msg received) string {
	t.Helper()

	var hover Hover
	if err := json.Unmarshal(msg.Result, &hover); err != nil {
		t.Fatalf("unmarshal hover: %v", err)
	}
	return hover.Contents.Value
}

func TestHover(t *testing.T) {
	msgs := session(t,
		positionRequest(2, "textDocument/hover", 3, 12),
		positionRequest(3, "textDocument/hover", 5, 10),
		positionRequest(4, "textDocument/hover", 5, 2),
	)
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}

	tests := []string{
		"```akorn\nvar string x\n```",
		"```akorn\nvar int x\n```",
		"```akorn\nwriteline(...any)\n```",
	}
	for i, want := range tests {
		if got := hoverValue(t, msgs[i+2]); got != want {
			t.Fatalf("hover %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestCompletion(t *testing.T) {
	msgs := session(t, positionRequest(2, "textDocument/completion", 3, 2))

	var list CompletionList
	if err := json.Unmarshal(msgs[2].Result, &list); err != nil {
		t.Fatalf("unmarshal completion: %v", err)
	}

	details := make(map[string]string)
	for _, item := range list.Items {
		if _, dup := details[item.Label]; !dup {
			details[item.Label] = item.Detail
		}
	}
	if details["x"] != "var string x" {
		t.Fatalf("expected the shadowing x first, got %q", details["x"])
	}
	if details["readBool"] != "readBool(string, string, string) -> bool" {
		t.Fatalf("unexpected readBool detail %q", details["readBool"])
	}
	if details["readInt"] != "readInt(string?) -> int" {
		t.Fatalf("unexpected readInt detail %q", details["readInt"])
	}
	if _, ok := details["elif"]; !ok {
		t.Fatalf("expected keywords in the completion list")
	}
}

func TestDefinition(t *testing.T) {
	msgs := session(t, positionRequest(2, "textDocument/definition", 3, 12))

	var loc Location
	if err := json.Unmarshal(msgs[2].Result, &loc); err != nil {
		t.Fatalf("unmarshal location: %v", err)
	}
	if loc.URI != testURI || loc.Range.Start.Line != 2 || loc.Range.Start.Character != 13 {
		t.Fatalf("unexpected location %+v", loc)
	}
}

func TestUnknownMethod(t *testing.T) {
	msgs := session(t, map[string]any{"jsonrpc": "2.0", "id": 9, "method": "workspace/symbol"})
	if msgs[2].Error == nil || msgs[2].Error.Code != -32601 {
		t.Fatalf("expected method not found, got %+v", msgs[2])
	}
	if !strings.Contains(msgs[2].Error.Message, "workspace/symbol") {
		t.Fatalf("unexpected message %q", msgs[2].Error.Message)
	}
}
