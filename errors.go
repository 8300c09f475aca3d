// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

import "fmt"

// DisconnectError is the error carried by a panic from [SingleSender.Send],
// [SharedSender.Send], or [Receiver.Recv] when the corresponding end of the
// channel has been closed. It is the Go rendering of the source's task
// failure propagation: the deliberate mechanism by which one linked task's
// teardown is surfaced to the other.
type DisconnectError struct {
	// Op names the operation that observed disconnect ("send" or "recv").
	Op string
}

func (e *DisconnectError) Error() string {
	return fmt.Sprintf("taskchan: %s on a disconnected channel", e.Op)
}

// protocolViolation panics. It is reserved for states this package's own
// invariants guarantee cannot occur absent a bug in this package or
// concurrent misuse of a single Receiver from more than one goroutine
// (undefined per the single-consumer contract).
func protocolViolation(format string, args ...any) {
	panic("taskchan: protocol violation: " + fmt.Sprintf(format, args...))
}
