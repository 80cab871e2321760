// Package dispatcher routes actions to handlers and coordinates execution.
//
// Actions are routed first by exact name, then by namespace prefix
// ("editor" serves "editor.transpose").
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built with the text service, the transposer,
//     a logger tagged with a fresh invocation id, and the repeat count
//  2. Pre-dispatch hooks run and may cancel the action
//  3. The handler runs, with panics recovered into error results
//  4. Post-dispatch hooks run
//  5. Metrics are recorded (if enabled)
//
// Usage:
//
//	d := dispatcher.NewWithDefaults()
//	d.SetText(buf)
//	d.SetTransposer(transpose.New(buf))
//	d.RegisterNamespace("editor", editor.NewTransposeHandler())
//
//	result := d.Dispatch(input.Action{Name: "editor.transpose"})
package dispatcher
