// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"fmt"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestCollectiveAbortSerial(tst *testing.T) {
	c := New()
	chk.IntAssert(btoi(c.CollectiveAbort(nil)), 0)
	chk.IntAssert(btoi(c.CollectiveAbort(fmt.Errorf("boom"))), 1)
}

func TestPostWaitRoundTrip(tst *testing.T) {
	c := New()
	buf := make([]float64, 4)
	c.PostSend(0, Tag{Rank: c.Rank(), EdgeID: 0, Seq: 1}, buf)
	c.PostRecv(0, Tag{Rank: c.Rank(), EdgeID: 0, Seq: 1}, buf)
	if err := c.Wait(); err != nil {
		tst.Fatalf("Wait: %v", err)
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
