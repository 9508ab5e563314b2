package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/mgomes/codelang/lang"
	"github.com/mgomes/codelang/stdlib"
)

const (
	lspSeverityError   = 1
	lspSeverityWarning = 2

	lspKindFunction = 3
	lspKindKeyword  = 14
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspDidCloseParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader   *bufio.Reader
	writer   *bufio.Writer
	keywords map[string]struct{}
	builtins map[string]struct{}
	docs     map[string]string
}

func newLSPServer(r io.Reader, w io.Writer) *lspServer {
	s := &lspServer{
		reader:   bufio.NewReader(r),
		writer:   bufio.NewWriter(w),
		keywords: make(map[string]struct{}),
		builtins: make(map[string]struct{}),
		docs:     make(map[string]string),
	}
	for _, kw := range lang.Keywords() {
		s.keywords[kw] = struct{}{}
	}
	for _, name := range stdlib.New().Names() {
		s.builtins[name] = struct{}{}
	}
	return s
}

func runLSP() error {
	return newLSPServer(os.Stdin, os.Stdout).serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			continue
		}

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

type lspHandler func(s *lspServer, msg lspInboundMessage) []lspOutboundMessage

var lspHandlers = map[string]lspHandler{
	"initialize":              (*lspServer).initialize,
	"initialized":             ignoreMessage,
	"exit":                    ignoreMessage,
	"shutdown":                func(_ *lspServer, msg lspInboundMessage) []lspOutboundMessage { return reply(msg.ID, nil) },
	"textDocument/didOpen":    (*lspServer).didOpen,
	"textDocument/didChange":  (*lspServer).didChange,
	"textDocument/didClose":   (*lspServer).didClose,
	"textDocument/completion": (*lspServer).completion,
	"textDocument/hover":      (*lspServer).hover,
}

func ignoreMessage(*lspServer, lspInboundMessage) []lspOutboundMessage { return nil }

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	if handler, ok := lspHandlers[incoming.Method]; ok {
		return handler(s, incoming)
	}
	return replyError(incoming.ID, -32601, "method not found")
}

func (s *lspServer) initialize(msg lspInboundMessage) []lspOutboundMessage {
	return reply(msg.ID, map[string]any{
		"capabilities": map[string]any{
			"textDocumentSync":   1,
			"hoverProvider":      true,
			"completionProvider": map[string]any{"resolveProvider": false},
		},
		"serverInfo": map[string]any{"name": "codelang-lsp"},
	})
}

func (s *lspServer) didOpen(msg lspInboundMessage) []lspOutboundMessage {
	var params lspDidOpenParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	return s.track(params.TextDocument.URI, params.TextDocument.Text)
}

func (s *lspServer) didChange(msg lspInboundMessage) []lspOutboundMessage {
	var params lspDidChangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil || len(params.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change holds the whole document.
	return s.track(params.TextDocument.URI, params.ContentChanges[len(params.ContentChanges)-1].Text)
}

func (s *lspServer) didClose(msg lspInboundMessage) []lspOutboundMessage {
	var params lspDidCloseParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	delete(s.docs, params.TextDocument.URI)
	return []lspOutboundMessage{publishDiagnostics(params.TextDocument.URI, "")}
}

func (s *lspServer) track(uri, text string) []lspOutboundMessage {
	s.docs[uri] = text
	return []lspOutboundMessage{publishDiagnostics(uri, text)}
}

func (s *lspServer) completion(msg lspInboundMessage) []lspOutboundMessage {
	return reply(msg.ID, map[string]any{
		"isIncomplete": false,
		"items":        s.completionItems(),
	})
}

func (s *lspServer) hover(msg lspInboundMessage) []lspOutboundMessage {
	if msg.ID == nil {
		return nil
	}
	var params lspTextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return replyError(msg.ID, -32602, "invalid hover params")
	}
	word := wordAtPosition(s.docs[params.TextDocument.URI], params.Position.Line, params.Position.Character)
	if word == "" {
		return reply(msg.ID, nil)
	}
	return reply(msg.ID, map[string]any{
		"contents": map[string]any{
			"kind":  "markdown",
			"value": fmt.Sprintf("`%s`\n\nCODE %s", word, s.classifyWord(word)),
		},
	})
}

// reply answers a request; notifications (no id) get nothing back.
func reply(id *json.RawMessage, result any) []lspOutboundMessage {
	if id == nil {
		return nil
	}
	return []lspOutboundMessage{{JSONRPC: "2.0", ID: id, Result: result}}
}

func replyError(id *json.RawMessage, code int, message string) []lspOutboundMessage {
	if id == nil {
		return nil
	}
	return []lspOutboundMessage{{JSONRPC: "2.0", ID: id, Error: &lspResponseError{Code: code, Message: message}}}
}

func publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(source),
		},
	}
}

func diagnosticsForSource(source string) []map[string]any {
	out := make([]map[string]any, 0)
	if strings.TrimSpace(source) == "" {
		return out
	}
	_, errs := lang.Parse(source)
	for _, err := range errs {
		var pe *lang.ParseError
		if !errors.As(err, &pe) {
			out = append(out, newDiagnostic(0, 0, lspSeverityError, "", err.Error()))
			continue
		}
		severity := lspSeverityError
		if pe.Severity == lang.SeverityWarning {
			severity = lspSeverityWarning
		}
		out = append(out, newDiagnostic(max(0, pe.Pos.Line-1), max(0, pe.Pos.Column-1), severity, string(pe.Code), pe.Msg))
	}
	return out
}

func newDiagnostic(line, character, severity int, code, message string) map[string]any {
	d := map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + 1,
			},
		},
		"severity": severity,
		"source":   "codelang-lsp",
		"message":  message,
	}
	if code != "" {
		d["code"] = code
	}
	return d
}

func (s *lspServer) completionItems() []map[string]any {
	labels := make([]string, 0, len(s.keywords)+len(s.builtins))
	for kw := range s.keywords {
		labels = append(labels, kw)
	}
	for name := range s.builtins {
		labels = append(labels, name)
	}
	sort.Strings(labels)

	items := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		kind := lspKindFunction
		detail := "builtin"
		if _, ok := s.keywords[label]; ok {
			kind = lspKindKeyword
			detail = "keyword"
		}
		items = append(items, map[string]any{
			"label":  label,
			"kind":   kind,
			"detail": detail,
		})
	}
	return items
}

func (s *lspServer) classifyWord(word string) string {
	if _, ok := s.keywords[word]; ok {
		return "keyword"
	}
	if _, ok := s.builtins[word]; ok {
		return "builtin"
	}
	return "symbol"
}

func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}

	// character counts UTF-16 code units.
	cursor, units := 0, 0
	for cursor < len(runes) && units < character {
		units += utf16.RuneLen(runes[cursor])
		cursor++
	}

	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
