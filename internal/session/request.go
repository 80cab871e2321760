package session

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	editorhandler "github.com/dshills/transpose/internal/dispatcher/handlers/editor"
	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/input"
)

// Errors returned while reading requests.
var (
	// ErrInvalidJSON indicates the input is not valid JSON.
	ErrInvalidJSON = errors.New("session: invalid JSON")

	// ErrInvalidRequest indicates a request with the wrong shape.
	ErrInvalidRequest = errors.New("session: invalid request")
)

// shortNames maps the short command names to action names.
var shortNames = map[string]string{
	"transpose":          editorhandler.ActionTranspose,
	"moveSelectionLeft":  editorhandler.ActionMoveSelectionLeft,
	"moveSelectionRight": editorhandler.ActionMoveSelectionRight,
}

// Command is one action to run.
type Command struct {
	Name  string
	Count int
}

// Request is one batch: the text, its carets and the commands to run.
type Request struct {
	Text     string
	Carets   []cursor.Caret
	Commands []Command
}

// ParseRequest reads a single request object.
func ParseRequest(data []byte) (Request, error) {
	if !gjson.ValidBytes(data) {
		return Request{}, ErrInvalidJSON
	}
	return parseRequest(gjson.ParseBytes(data))
}

// ParseRequests reads a request object or an array of request objects.
func ParseRequests(data []byte) ([]Request, bool, error) {
	if !gjson.ValidBytes(data) {
		return nil, false, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		req, err := parseRequest(root)
		if err != nil {
			return nil, false, err
		}
		return []Request{req}, false, nil
	}

	var reqs []Request
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		var req Request
		req, err = parseRequest(value)
		if err != nil {
			err = fmt.Errorf("request %d: %w", key.Int(), err)
			return false
		}
		reqs = append(reqs, req)
		return true
	})
	if err != nil {
		return nil, true, err
	}
	return reqs, true, nil
}

func parseRequest(root gjson.Result) (Request, error) {
	if !root.IsObject() {
		return Request{}, fmt.Errorf("%w: expected an object", ErrInvalidRequest)
	}

	var req Request
	if text := root.Get("text"); text.Exists() {
		if text.Type != gjson.String {
			return Request{}, fmt.Errorf("%w: text must be a string", ErrInvalidRequest)
		}
		req.Text = text.String()
	}

	if carets := root.Get("carets"); carets.Exists() {
		if !carets.IsArray() {
			return Request{}, fmt.Errorf("%w: carets must be an array", ErrInvalidRequest)
		}
		for i, c := range carets.Array() {
			caret, err := parseCaret(c)
			if err != nil {
				return Request{}, fmt.Errorf("%w: caret %d: %v", ErrInvalidRequest, i, err)
			}
			req.Carets = append(req.Carets, caret)
		}
	}

	commands := root.Get("commands")
	if commands.Exists() && !commands.IsArray() {
		return Request{}, fmt.Errorf("%w: commands must be an array", ErrInvalidRequest)
	}
	for i, c := range commands.Array() {
		cmd, err := parseCommand(c)
		if err != nil {
			return Request{}, fmt.Errorf("%w: command %d: %v", ErrInvalidRequest, i, err)
		}
		req.Commands = append(req.Commands, cmd)
	}
	return req, nil
}

func parseCaret(v gjson.Result) (cursor.Caret, error) {
	var fields [4]gjson.Result
	switch {
	case v.IsArray():
		items := v.Array()
		if len(items) != 2 && len(items) != 4 {
			return cursor.Caret{}, fmt.Errorf("want 2 or 4 numbers, got %d", len(items))
		}
		copy(fields[:], items)
	case v.IsObject():
		for i, name := range []string{"col", "line", "end_col", "end_line"} {
			fields[i] = v.Get(name)
		}
	default:
		return cursor.Caret{}, fmt.Errorf("want an array or object")
	}

	nums := [4]int{0, 0, -1, -1}
	for i, f := range fields {
		if !f.Exists() {
			if i < 2 {
				return cursor.Caret{}, fmt.Errorf("missing col or line")
			}
			continue
		}
		if f.Type != gjson.Number || f.Num != float64(int(f.Num)) {
			return cursor.Caret{}, fmt.Errorf("%s is not an integer", f.Raw)
		}
		nums[i] = int(f.Num)
	}
	if nums[0] < 0 || nums[1] < 0 {
		return cursor.Caret{}, fmt.Errorf("negative position")
	}
	if nums[2] >= 0 && nums[3] < 0 {
		nums[3] = nums[1]
	}
	return cursor.FromRange(nums[0], nums[1], nums[2], nums[3]), nil
}

func parseCommand(v gjson.Result) (Command, error) {
	cmd := Command{Count: 1}
	switch {
	case v.Type == gjson.String:
		cmd.Name = v.String()
	case v.IsObject():
		name := v.Get("name")
		if name.Type != gjson.String {
			return Command{}, fmt.Errorf("name must be a string")
		}
		cmd.Name = name.String()
		if count := v.Get("count"); count.Exists() {
			if count.Type != gjson.Number || count.Int() < 1 {
				return Command{}, fmt.Errorf("count must be a positive number")
			}
			cmd.Count = int(count.Int())
		}
	default:
		return Command{}, fmt.Errorf("want a name or an object")
	}

	if full, ok := shortNames[cmd.Name]; ok {
		cmd.Name = full
	}
	if err := input.ValidateName(cmd.Name); err != nil {
		return Command{}, fmt.Errorf("unknown command %q", cmd.Name)
	}
	return cmd, nil
}
