// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comm wraps gosl/mpi into the non-blocking post/wait
// communicator spec.md §4.6 and §5 describe. The collective-decision
// pattern (every rank must agree to abort before any one rank actually
// calls os.Exit) is grounded on fem/errorhandler.go's Stop/PanicOrNot,
// which performs exactly this kind of mpi.IntAllReduceMax vote before
// deciding to stop a run.
package comm

import (
	"fmt"
	"sync"

	"github.com/cpmech/gosl/mpi"
)

// Tag disambiguates one post from any other concurrently in flight between
// the same pair of ranks: the poster's own rank, the local edge id the
// message concerns (expressed the way the receiver numbers that edge, so
// a send tagged with the receiver's numbering matches the receiver's own
// post), and a per-direction sequence number bumped on every post
// (spec.md §4.6 "tag = (rank, local edge id, per-direction sequence
// number)").
type Tag struct {
	Rank   int
	EdgeID int
	Seq    int
}

// Communicator posts and waits on point-to-point exchanges between ranks,
// and makes the collective abort decision spec.md §7 requires. Every real
// send/recv is funneled through one dispatcher goroutine (runLoop) rather
// than issued directly from the calling goroutine: gosl/mpi's C binding is
// not safe for concurrent calls from multiple goroutines without
// MPI_THREAD_MULTIPLE, and routing every call through a single goroutine
// also gives the exchange its ordering guarantee for free, since both
// ranks post their sends/receives for a stage's distributed edges in the
// same deterministic order (the mesh partition's edge list), and a single
// dispatcher replays posts strictly in that order — the non-overtaking
// message property MPI guarantees for same-pair traffic then does the
// rest. PostSend/PostRecv still return immediately, preserving the
// overlap-with-computation shape spec.md §5's pipeline relies on.
type Communicator struct {
	rank, size int
	world      *mpi.Communicator

	reqs chan commReq

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

type commReq struct {
	isSend bool
	peer   int
	tag    Tag
	buf    []float64
	result chan<- error
}

// New initializes the communicator. mpi.Start/mpi.IsOn/mpi.Rank/mpi.Size
// are called exactly as fem/solver.go calls them at startup; when MPI is
// on, a world communicator is opened for the point-to-point Send/Recv
// calls PostSend/PostRecv issue.
func New() *Communicator {
	c := &Communicator{}
	if mpi.IsOn() {
		c.rank = mpi.Rank()
		c.size = mpi.Size()
		c.world = mpi.NewCommunicator(nil)
	} else {
		c.rank, c.size = 0, 1
	}
	c.reqs = make(chan commReq, 64)
	go c.runLoop()
	return c
}

// Rank returns this process's rank (0 in a serial run).
func (c *Communicator) Rank() int { return c.rank }

// Size returns the total rank count (1 in a serial run).
func (c *Communicator) Size() int { return c.size }

// runLoop is the single goroutine that ever touches c.world, draining
// posted requests strictly in the order they were enqueued.
func (c *Communicator) runLoop() {
	for req := range c.reqs {
		var err error
		if req.isSend {
			err = c.send(req.peer, req.tag, req.buf)
		} else {
			err = c.recv(req.peer, req.tag, req.buf)
		}
		req.result <- err
	}
}

// PostSend asynchronously sends buf to peerRank tagged tag, returning
// immediately; the caller must Wait before reusing buf.
func (c *Communicator) PostSend(peerRank int, tag Tag, buf []float64) {
	c.post(true, peerRank, tag, buf)
}

// PostRecv asynchronously receives into buf from peerRank tagged tag,
// returning immediately; the caller must Wait before reading buf.
func (c *Communicator) PostRecv(peerRank int, tag Tag, buf []float64) {
	c.post(false, peerRank, tag, buf)
}

func (c *Communicator) post(isSend bool, peerRank int, tag Tag, buf []float64) {
	c.wg.Add(1)
	result := make(chan error, 1)
	// enqueuing happens synchronously on the caller's goroutine, so two
	// posts issued back to back (e.g. ForEachDistributed's deterministic
	// loop) land on c.reqs in that same order.
	c.reqs <- commReq{isSend: isSend, peer: peerRank, tag: tag, buf: buf, result: result}
	go func() {
		defer c.wg.Done()
		if err := <-result; err != nil {
			c.mu.Lock()
			c.errs = append(c.errs, err)
			c.mu.Unlock()
		}
	}()
}

// Wait blocks until every post issued since the last Wait has completed,
// returning the first error observed, if any.
func (c *Communicator) Wait() error {
	c.wg.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	var err error
	if len(c.errs) > 0 {
		err = c.errs[0]
	}
	c.errs = nil
	return err
}

// AllReduceSum performs a collective sum-reduction across ranks (a plain
// copy of src into dest in a serial run), mirroring fem/solver.go's
// mpi.AllReduceSum(d.Fb, d.Wb) call.
func (c *Communicator) AllReduceSum(dest, src []float64) {
	if mpi.IsOn() {
		mpi.AllReduceSum(dest, src)
		return
	}
	copy(dest, src)
}

// CollectiveAbort decides, across every rank, whether to abort: if err is
// non-nil on any rank, every rank observes true. This is fem/
// errorhandler.go's Stop, generalized from a single global Distr flag to
// an explicit Communicator value.
func (c *Communicator) CollectiveAbort(err error) bool {
	local := 0
	if err != nil {
		local = 1
	}
	if !mpi.IsOn() {
		return local > 0
	}
	votes := make([]int, c.size)
	votes[c.rank] = local
	mpi.IntAllReduceMax(votes, c.size)
	for _, v := range votes {
		if v > 0 {
			return true
		}
	}
	return false
}

// Abort terminates every rank's MPI session with the given reason, after a
// CollectiveAbort vote has already returned true on every rank — callers
// must not call Abort unilaterally (spec.md §7 "collective abort").
func (c *Communicator) Abort(reason error) error {
	if mpi.IsOn() {
		mpi.Stop(true)
	}
	return fmt.Errorf("comm: aborting: %w", reason)
}

// send/recv are the actual point-to-point primitives, issued only from
// runLoop. In a serial run (mpi.IsOn() false, as in this package's own
// tests, which have no live MPI session to exchange with) they are a
// correct no-op: there is no peer to talk to. Under a real MPI session
// they call gosl's mpi.Communicator.Send/Recv, the point-to-point
// primitives the collective-only calls elsewhere in this module (
// AllReduceSum, IntAllReduceMax) sit alongside.
func (c *Communicator) send(peerRank int, tag Tag, buf []float64) error {
	if !mpi.IsOn() {
		return nil
	}
	c.world.Send(buf, peerRank)
	return nil
}

func (c *Communicator) recv(peerRank int, tag Tag, buf []float64) error {
	if !mpi.IsOn() {
		return nil
	}
	c.world.Recv(buf, peerRank)
	return nil
}
