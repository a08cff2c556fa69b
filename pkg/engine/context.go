package engine

import "sync"

// Context carries the last error from the most recent operation run
// through it, for callers (the CLI, future language bindings) that want a
// get_last_error-style accessor instead of inspecting the returned error
// directly (spec.md §7's "errors are returned as a single code plus an
// optional message string on the context"). Using Context is optional: any
// Engine method can be called directly and its error inspected normally.
type Context struct {
	mu      sync.Mutex
	code    ErrorCode
	message string
}

// NewContext constructs a Context with no recorded error (code OK).
func NewContext() *Context {
	return &Context{code: OK}
}

// Run invokes fn and records its error (if any) before returning it
// unchanged, so callers can chain `ctx.Run(func() error { ... })` and later
// inspect LastError().
func (c *Context) Run(fn func() error) error {
	err := fn()
	c.record(err)
	return err
}

// LastError returns the code and message recorded by the most recent Run
// call. A Context with no recorded error reports (OK, "").
func (c *Context) LastError() (ErrorCode, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code, c.message
}

func (c *Context) record(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		c.code = OK
		c.message = ""
		return
	}
	c.code = codeOf(err)
	c.message = err.Error()
}
