package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"localtofield/internal/refactor"
)

const widgetSource = `class Widget
{
    void M()
    {
        string label = "x";
    }
}
`

type session struct {
	t   *testing.T
	buf bytes.Buffer
	id  int
}

func (s *session) request(method string, params any) int {
	s.id++
	s.write(map[string]any{"jsonrpc": "2.0", "id": s.id, "method": method, "params": params})
	return s.id
}

func (s *session) notify(method string, params any) {
	s.write(map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

func (s *session) write(msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.t.Fatal(err)
	}
	if err := writeMessage(&s.buf, payload); err != nil {
		s.t.Fatal(err)
	}
}

// run feeds the session to a server and returns every message it sent.
func (s *session) run(opts ServerOptions) ([]rpcMessage, error) {
	var out, logs bytes.Buffer
	opts.Log = &logs
	server := NewServer(&s.buf, &out, opts)
	err := server.Run(context.Background())

	var msgs []rpcMessage
	r := bufio.NewReader(&out)
	for {
		payload, readErr := readMessage(r)
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			s.t.Fatal(readErr)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.t.Fatal(err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, err
}

func response(t *testing.T, msgs []rpcMessage, id int) rpcMessage {
	t.Helper()
	want, _ := json.Marshal(id)
	for _, m := range msgs {
		if m.Method == "" && bytes.Equal(m.ID, want) {
			return m
		}
	}
	t.Fatalf("no response for request %d", id)
	return rpcMessage{}
}

func openWidget(s *session, uri string) {
	s.notify("textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, LanguageID: "csharp", Version: 1, Text: widgetSource},
	})
}

func codeActionAt(uri string, line, char int) codeActionParams {
	return codeActionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Range:        lspRange{Start: position{line, char}, End: position{line, char}},
	}
}

func TestSessionOffersIntroduceField(t *testing.T) {
	uri := pathToURI("/work/Widget.cs")
	s := &session{t: t}
	initID := s.request("initialize", initializeParams{RootURI: pathToURI("/work")})
	s.notify("initialized", struct{}{})
	openWidget(s, uri)
	hit := s.request("textDocument/codeAction", codeActionAt(uri, 4, 16))
	miss := s.request("textDocument/codeAction", codeActionAt(uri, 2, 10))
	filtered := s.request("textDocument/codeAction", codeActionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Range:        lspRange{Start: position{4, 16}, End: position{4, 16}},
		Context:      codeActionContext{Only: []string{"quickfix"}},
	})
	shutdownID := s.request("shutdown", nil)
	s.notify("exit", nil)

	msgs, err := s.run(ServerOptions{Newline: refactor.NewlineLF})
	if !errors.Is(err, ErrExit) {
		t.Fatalf("Run() = %v, want ErrExit", err)
	}

	var init initializeResult
	if err := json.Unmarshal(response(t, msgs, initID).Result, &init); err != nil {
		t.Fatal(err)
	}
	if init.Capabilities.CodeActionProvider == nil || init.ServerInfo.Name != "localtofield" {
		t.Fatalf("capabilities: %+v", init)
	}

	var actions []codeAction
	if err := json.Unmarshal(response(t, msgs, hit).Result, &actions); err != nil {
		t.Fatal(err)
	}
	if len(actions) != 1 || actions[0].Title != refactor.ActionTitle || actions[0].Edit == nil {
		t.Fatalf("actions = %+v", actions)
	}
	change := actions[0].Edit.DocumentChanges[0]
	if change.TextDocument.URI != uri || change.TextDocument.Version == nil || *change.TextDocument.Version != 1 {
		t.Errorf("edit target = %+v", change.TextDocument)
	}
	edit := change.Edits[0]
	if edit.Range.Start != (position{}) || edit.Range.End != (position{Line: 7, Character: 0}) {
		t.Errorf("edit range = %+v", edit.Range)
	}
	if !strings.Contains(edit.NewText, "    private readonly string _label;\n") || strings.Contains(edit.NewText, `string label = "x";`) {
		t.Errorf("new text:\n%s", edit.NewText)
	}

	for _, id := range []int{miss, filtered} {
		if got := string(response(t, msgs, id).Result); got != "[]" {
			t.Errorf("request %d: got %s, want []", id, got)
		}
	}
	if got := string(response(t, msgs, shutdownID).Result); got != "null" {
		t.Errorf("shutdown result = %s", got)
	}
}

func TestSessionTracksIncrementalChanges(t *testing.T) {
	uri := pathToURI("/work/Widget.cs")
	s := &session{t: t}
	s.request("initialize", initializeParams{})
	openWidget(s, uri)
	// rename the local so the generated field follows the edit
	s.notify("textDocument/didChange", didChangeTextDocumentParams{
		TextDocument: versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{
			Range: &lspRange{Start: position{4, 15}, End: position{4, 20}},
			Text:  "title",
		}},
	})
	hit := s.request("textDocument/codeAction", codeActionAt(uri, 4, 16))

	msgs, err := s.run(ServerOptions{Newline: refactor.NewlineLF})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	var actions []codeAction
	if err := json.Unmarshal(response(t, msgs, hit).Result, &actions); err != nil {
		t.Fatal(err)
	}
	if len(actions) != 1 {
		t.Fatalf("actions = %+v", actions)
	}
	change := actions[0].Edit.DocumentChanges[0]
	if *change.TextDocument.Version != 2 || !strings.Contains(change.Edits[0].NewText, "_title = \"x\";") {
		t.Errorf("stale document used: %+v", change)
	}
}

func TestSessionPublishesSyntaxDiagnostics(t *testing.T) {
	uri := pathToURI("/work/Broken.cs")
	s := &session{t: t}
	s.notify("textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 3, Text: "class C { void M() { int n = 1 } }"},
	})
	s.notify("textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: uri}})

	msgs, err := s.run(ServerOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var published []publishDiagnosticsParams
	for _, m := range msgs {
		if m.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var p publishDiagnosticsParams
		if err := json.Unmarshal(m.Params, &p); err != nil {
			t.Fatal(err)
		}
		published = append(published, p)
	}
	if len(published) != 2 {
		t.Fatalf("published %d times", len(published))
	}
	if len(published[0].Diagnostics) == 0 || published[0].Version != 3 {
		t.Errorf("open: %+v", published[0])
	}
	if d := published[0].Diagnostics[0]; d.Severity != 1 || !strings.HasPrefix(d.Code, "SYN") {
		t.Errorf("diagnostic = %+v", d)
	}
	if len(published[1].Diagnostics) != 0 {
		t.Errorf("close must clear diagnostics: %+v", published[1])
	}
}

func TestSessionProtocolErrors(t *testing.T) {
	s := &session{t: t}
	unknown := s.request("textDocument/hover", nil)
	s.notify("exit", nil)

	msgs, err := s.run(ServerOptions{})
	if !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("Run() = %v", err)
	}
	resp := response(t, msgs, unknown)
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Fatalf("unknown method response = %+v", resp)
	}
}

func TestKindRequested(t *testing.T) {
	for only, want := range map[string]bool{
		"":                 true,
		"refactor":         true,
		"refactor.rewrite": true,
		"refactor.extract": false,
		"quickfix":         false,
	} {
		var filter []string
		if only != "" {
			filter = []string{only}
		}
		if got := kindRequested(filter); got != want {
			t.Errorf("kindRequested(%q) = %v", only, got)
		}
	}
}
