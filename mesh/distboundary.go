// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/dpedroso-labs/swehdg/master"

// Exchanger is the send/receive buffer pair and addressing information one
// DistributedBoundary needs to talk to its peer rank (spec.md §3, §4.6,
// §6). The comm package reads/writes SendBuf/RecvBuf; mesh only owns their
// sizing and addressing, keeping no dependency on the communicator.
type Exchanger struct {
	PeerRank   int // rank owning the other side of this edge
	PeerEdgeID int // the edge's local id as seen on the peer rank
	SendBuf    []float64
	RecvBuf    []float64
	SeqSend    int // per-direction sequence number, bumped on every post (spec.md §4.6 tag)
	SeqRecv    int
}

// DistributedBoundary is a single-sided skeleton edge whose "exterior" state
// arrives from another rank through an Exchanger instead of from a local
// Element (spec.md §3).
type DistributedBoundary struct {
	idx  int
	Side ElemSide
	Trace Trace
	Exch Exchanger
}

func (o *DistributedBoundary) Index() int { return o.idx }

// DistributedBoundaryContainer mirrors BoundaryContainer's lifecycle.
type DistributedBoundaryContainer struct {
	items  []*DistributedBoundary
	frozen bool
}

func (c *DistributedBoundaryContainer) Reserve(n int) {
	c.items = make([]*DistributedBoundary, 0, n)
}

// Create allocates a DistributedBoundary with send/recv buffers sized for
// the bound_state wire payload of spec.md §6: n_variables*ngp_edge doubles.
func (c *DistributedBoundaryContainer) Create(m *master.Master, side ElemSide, peerRank, peerEdgeID int) (*DistributedBoundary, error) {
	if c.frozen {
		return nil, errFrozen("distributed boundary")
	}
	payload := NVariables * m.EdgeNgp
	d := &DistributedBoundary{
		idx:   len(c.items),
		Side:  side,
		Trace: newTrace(m.Ndof, m.EdgeNgp),
		Exch: Exchanger{
			PeerRank:   peerRank,
			PeerEdgeID: peerEdgeID,
			SendBuf:    make([]float64, payload),
			RecvBuf:    make([]float64, payload),
		},
	}
	c.items = append(c.items, d)
	return d, nil
}

func (c *DistributedBoundaryContainer) FinalizeInitialization() { c.frozen = true }
func (c *DistributedBoundaryContainer) Len() int                { return len(c.items) }
func (c *DistributedBoundaryContainer) GetByIndex(i int) *DistributedBoundary {
	return c.items[i]
}
func (c *DistributedBoundaryContainer) CallForEach(f func(*DistributedBoundary) error) error {
	for _, d := range c.items {
		if err := f(d); err != nil {
			return err
		}
	}
	return nil
}
