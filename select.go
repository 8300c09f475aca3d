// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan

// Selectable is satisfied by every [Receiver], regardless of element type,
// which is what lets [Select] wait on receivers of differing T in a single
// call: the Packet each one exposes carries no type parameter.
type Selectable interface {
	packetRef() *Packet
}

// Select blocks until activity (buffered data or disconnect) is
// observable on any of receivers, returning the smallest such index.
//
// Select panics if receivers is empty. Disconnect and data-available are
// indistinguishable in the returned index; call TryRecv on the winning
// receiver to tell them apart.
func Select(receivers ...Selectable) int {
	return selectWith(cooperativeParker{}, receivers)
}

// SelectNative is Select using mutex/condvar-based native parking instead
// of the default cooperative channel-based parking, for callers that need
// textbook native-thread blocking discipline for the duration of this call.
func SelectNative(receivers ...Selectable) int {
	return selectWith(nativeParker{}, receivers)
}

func selectWith(pk parker, receivers []Selectable) int {
	if len(receivers) == 0 {
		panic("taskchan: Select requires at least one receiver")
	}

	for i, r := range receivers {
		if r.packetRef().canRecv() {
			return i
		}
	}

	datums := make([]*waitDatum, len(receivers))
	for i, r := range receivers {
		datums[i] = &r.packetRef().waitDatum
	}
	session := pk.session(datums)

	readyIndex := len(receivers)
	registered := 0
	for i, r := range receivers {
		p := r.packetRef()
		if p.register(session, p.decrement) {
			registered++
			continue
		}
		p.abortSelection(false)
		readyIndex = i
		break
	}

	if registered == len(receivers) {
		session.block()
	}

	for i := registered - 1; i >= 0; i-- {
		if receivers[i].packetRef().abortSelection(true) {
			readyIndex = i
		}
	}

	if readyIndex >= len(receivers) {
		protocolViolation("select: no ready index found after teardown")
	}
	return readyIndex
}
