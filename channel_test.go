// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskchan_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/taskchan"
)

func TestSingleSendRecv(t *testing.T) {
	r, s := taskchan.NewSingle[int]()
	s.Send(1)
	s.Send(2)
	if v := r.Recv(); v != 1 {
		t.Fatalf("Recv: got %d, want 1", v)
	}
	if v := r.Recv(); v != 2 {
		t.Fatalf("Recv: got %d, want 2", v)
	}
}

func TestSingleTryRecvEmpty(t *testing.T) {
	r, _ := taskchan.NewSingle[int]()
	if _, ok := r.TryRecv(); ok {
		t.Fatalf("TryRecv on empty queue: got ok=true")
	}
}

func TestSingleDisconnectOnSenderClose(t *testing.T) {
	r, s := taskchan.NewSingle[int]()
	s.Send(42)
	s.Close()

	if v, ok := r.RecvOpt(); !ok || v != 42 {
		t.Fatalf("RecvOpt before drain: got (%d, %v), want (42, true)", v, ok)
	}
	if _, ok := r.RecvOpt(); ok {
		t.Fatalf("RecvOpt after drain and sender close: got ok=true")
	}
}

func TestSingleRecvPanicsOnDisconnect(t *testing.T) {
	r, s := taskchan.NewSingle[int]()
	s.Close()

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatalf("Recv on disconnected empty channel: did not panic")
		}
		if _, ok := rec.(*taskchan.DisconnectError); !ok {
			t.Fatalf("Recv panic: got %T, want *taskchan.DisconnectError", rec)
		}
	}()
	r.Recv()
}

func TestSingleSendPanicsOnDisconnect(t *testing.T) {
	r, s := taskchan.NewSingle[int]()
	r.Close()

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatalf("Send on disconnected channel: did not panic")
		}
		if _, ok := rec.(*taskchan.DisconnectError); !ok {
			t.Fatalf("Send panic: got %T, want *taskchan.DisconnectError", rec)
		}
	}()
	s.Send(1)
}

func TestSingleTrySendAfterReceiverClose(t *testing.T) {
	r, s := taskchan.NewSingle[int]()
	r.Close()
	if s.TrySend(1) {
		t.Fatalf("TrySend after receiver close: got true, want false")
	}
}

func TestSharedSendRecv(t *testing.T) {
	r, s := taskchan.NewShared[int]()
	s.Send(1)
	s.Send(2)
	if v := r.Recv(); v != 1 {
		t.Fatalf("Recv: got %d, want 1", v)
	}
	if v := r.Recv(); v != 2 {
		t.Fatalf("Recv: got %d, want 2", v)
	}
}

func TestSharedCloneAndDisconnect(t *testing.T) {
	r, s := taskchan.NewShared[int]()
	s2 := s.Clone()

	s.Send(1)
	s.Close()
	if _, ok := r.RecvOpt(); !ok {
		t.Fatalf("RecvOpt: got ok=false while s2 still live")
	}

	s2.Close()
	if _, ok := r.RecvOpt(); ok {
		t.Fatalf("RecvOpt after every sender closed: got ok=true")
	}
}

func TestSharedStressManyProducers(t *testing.T) {
	if taskchan.RaceEnabled {
		t.Skip("skip: MPSC push/pop ordering uses cross-variable atomic fences the race detector cannot model")
	}

	const producers = 8
	const perProducer = 10000

	r, s := taskchan.NewShared[int]()
	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(clone *taskchan.SharedSender[int]) {
			defer wg.Done()
			defer clone.Close()
			for j := 0; j < perProducer; j++ {
				clone.Send(j)
			}
		}(s.Clone())
	}
	s.Close()

	got := 0
	for {
		if _, ok := r.RecvOpt(); !ok {
			break
		}
		got++
	}
	wg.Wait()
	if got != producers*perProducer {
		t.Fatalf("total received: got %d, want %d", got, producers*perProducer)
	}
}

func TestIterStopsOnDisconnect(t *testing.T) {
	r, s := taskchan.NewSingle[int]()
	s.Send(3)
	s.Send(1)
	s.Send(2)
	s.Close()

	var got []int
	for v := range r.Iter() {
		got = append(got, v)
	}
	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("Iter: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Iter: got %v, want %v", got, want)
		}
	}
}

func TestIterStopsEarlyOnBreak(t *testing.T) {
	r, s := taskchan.NewSingle[int]()
	s.Send(1)
	s.Send(2)
	s.Send(3)

	var got []int
	for v := range r.Iter() {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Iter early break: got %v, want [1 2]", got)
	}
}
