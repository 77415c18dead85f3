package lsp

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"localtofield/internal/refactor"
	"localtofield/internal/source"
)

const codeActionKind = "refactor.rewrite"

func (s *Server) handleCodeAction(ctx context.Context, msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	actions := s.codeActions(ctx, params)
	if actions == nil {
		actions = []codeAction{}
	}
	return s.sendResponse(msg.ID, actions)
}

func (s *Server) codeActions(ctx context.Context, params codeActionParams) []codeAction {
	if !kindRequested(params.Context.Only) {
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	snap, ok := s.snapshot(uri)
	if !ok {
		return nil
	}
	s.mu.Lock()
	opts := refactor.Options{Newline: s.newline}
	if s.trace {
		opts.Log = refactor.LogFunc(func(m string) { s.logf("codeAction: %s", m) })
	}
	s.mu.Unlock()

	doc := refactor.ParseText(documentName(uri), snap.text)
	sel := spanForRange(doc.File(), params.Range)
	found, err := refactor.ComputeRefactorings(ctx, doc, sel, opts)
	if err != nil {
		if !refactor.IsDeclined(err) {
			s.logf("codeAction %s: %v", uri, err)
		} else if opts.Log != nil {
			opts.Log.Log("declined: " + err.Error())
		}
		return nil
	}

	actions := make([]codeAction, 0, len(found))
	for _, a := range found {
		after, err := a.Apply(ctx)
		if err != nil {
			s.logf("codeAction %s: %v", uri, err)
			continue
		}
		version := snap.version
		actions = append(actions, codeAction{
			Title: a.Title,
			Kind:  codeActionKind,
			Edit: &workspaceEdit{
				DocumentChanges: []textDocumentEdit{{
					TextDocument: optionalVersionedTextDocumentIdentifier{URI: uri, Version: &version},
					Edits: []textEdit{{
						Range:   rangeForSpan(doc.File(), source.Span{Start: 0, End: doc.Len()}),
						NewText: after.Text(),
					}},
				}},
			},
		})
	}
	return actions
}

// kindRequested honors the client's "only" filter: "refactor" matches
// "refactor.rewrite".
func kindRequested(only []string) bool {
	if len(only) == 0 {
		return true
	}
	return slices.ContainsFunc(only, func(k string) bool {
		return k == codeActionKind || strings.HasPrefix(codeActionKind, k+".")
	})
}

func documentName(uri string) string {
	if path := uriToPath(uri); path != "" {
		return path
	}
	return uri
}
