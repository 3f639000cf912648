// Package process provides the audio processing context and the gain engine run on the audio thread.
package process

// Context describes one processing block: per-channel input and output buffers
// plus an optional frame limit supplied by the host. It holds no allocations
// of its own so it can be refilled on every callback.
type Context struct {
	Input  [][]float32
	Output [][]float32

	// limit caps frames per channel; negative means "buffer lengths decide"
	limit int
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{limit: -1}
}

// Set points the context at new buffers without copying. frames < 0 lets the
// buffer lengths decide the block size.
func (c *Context) Set(input, output [][]float32, frames int) {
	c.Input = input
	c.Output = output
	c.limit = frames
}

// NumChannels returns the minimum of input and output channels
func (c *Context) NumChannels() int {
	n := len(c.Input)
	if len(c.Output) < n {
		n = len(c.Output)
	}
	return n
}

// Frames returns how many frames channel ch can safely process: the shorter of
// its input and output buffers, further capped by the host frame count.
func (c *Context) Frames(ch int) int {
	if ch < 0 || ch >= c.NumChannels() {
		return 0
	}
	n := len(c.Input[ch])
	if len(c.Output[ch]) < n {
		n = len(c.Output[ch])
	}
	if c.limit >= 0 && c.limit < n {
		n = c.limit
	}
	return n
}
