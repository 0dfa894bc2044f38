package drawgroup

import "github.com/gogpu/framegraph"

// CommandRecorder captures draw commands for later replay. The
// software backend records each pass into one and replays the stream
// against its CPU attachments; tests use it to assert emission order.
//
// The zero value is ready to use. CommandRecorder is not safe for
// concurrent use.
type CommandRecorder struct {
	commands []framegraph.DrawCommand
}

// NewCommandRecorder creates a recorder with capacity for the given
// number of commands.
func NewCommandRecorder(capacity int) *CommandRecorder {
	return &CommandRecorder{
		commands: make([]framegraph.DrawCommand, 0, capacity),
	}
}

// Record appends one command to the stream.
func (r *CommandRecorder) Record(cmd framegraph.DrawCommand) {
	r.commands = append(r.commands, cmd)
}

// Commands returns the recorded stream in emission order. The returned
// slice is owned by the recorder; callers must not modify it.
func (r *CommandRecorder) Commands() []framegraph.DrawCommand {
	return r.commands
}

// Reset clears the stream, retaining capacity.
func (r *CommandRecorder) Reset() {
	r.commands = r.commands[:0]
}

// Ensure CommandRecorder implements Recorder.
var _ framegraph.Recorder = (*CommandRecorder)(nil)
