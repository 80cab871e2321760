package session

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/dshills/transpose/internal/app"
	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/input"
)

// Response is the outcome of one request.
type Response struct {
	Text     string
	Carets   []cursor.Caret
	Messages []string
}

// CommandError reports the command that failed.
type CommandError struct {
	Index int
	Name  string
	Err   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Run executes a request in a fresh application built from opts.
// opts.Document is replaced by the request text.
func Run(req Request, opts app.Options) (Response, error) {
	opts.Document = app.NewScratchDocument(req.Text)
	a, err := app.New(opts)
	if err != nil {
		return Response{}, err
	}
	defer a.Shutdown()

	buf := a.Document().Buffer()
	if len(req.Carets) > 0 {
		if err := buf.SetCarets(req.Carets...); err != nil {
			return Response{}, fmt.Errorf("session: carets: %w", err)
		}
	}

	resp := Response{Messages: make([]string, 0, len(req.Commands))}
	for i, cmd := range req.Commands {
		result := a.Dispatch(input.Action{
			Name:   cmd.Name,
			Count:  cmd.Count,
			Source: input.SourceSession,
		})
		if result.IsError() {
			return Response{}, &CommandError{Index: i, Name: cmd.Name, Err: result.Error}
		}
		resp.Messages = append(resp.Messages, result.Message)
	}

	resp.Text = buf.Text()
	resp.Carets = buf.Carets().All()
	return resp, nil
}

// Encode renders a response as JSON.
func Encode(resp Response) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "text", resp.Text); err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "carets", []byte(`[]`)); err != nil {
		return nil, err
	}
	for _, c := range resp.Carets {
		col, line, endCol, endLine := c.Range()
		if out, err = sjson.SetBytes(out, "carets.-1", []int{col, line, endCol, endLine}); err != nil {
			return nil, err
		}
	}
	messages := resp.Messages
	if messages == nil {
		messages = []string{}
	}
	if out, err = sjson.SetBytes(out, "messages", messages); err != nil {
		return nil, err
	}
	return out, nil
}

// Process reads one request or an array of requests from r, runs them
// and writes the matching response or array of responses to w.
func Process(r io.Reader, w io.Writer, opts app.Options) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("session: read: %w", err)
	}
	reqs, isArray, err := ParseRequests(data)
	if err != nil {
		return err
	}

	var encoded [][]byte
	for i, req := range reqs {
		resp, err := Run(req, opts)
		if err != nil {
			if isArray {
				return fmt.Errorf("request %d: %w", i, err)
			}
			return err
		}
		doc, err := Encode(resp)
		if err != nil {
			return fmt.Errorf("session: encode: %w", err)
		}
		encoded = append(encoded, doc)
	}

	var out []byte
	if isArray {
		out = append([]byte{'['}, bytes.Join(encoded, []byte{','})...)
		out = append(out, ']')
	} else {
		out = encoded[0]
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
