// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rendez

import "code.hybscloud.com/kont"

// sendOp is the effect operation performed by SendP: attempt to hand v
// to whoever is (or will be) parked receiving on ch. The scheduler's
// dispatch (channel.go's ChannelTable.Send) decides, from the current
// ChannelState, whether this resumes immediately (a receiver was
// already waiting) or truly suspends the task.
type sendOp struct {
	kont.Phantom[Value]
	Chan ChannelID
	Val  Value
}

// recvOp is the effect operation performed by ReceiveP: attempt to take
// a value from whoever is (or will be) parked sending on ch.
type recvOp struct {
	kont.Phantom[Value]
	Chan ChannelID
}

// performSend builds the effect computation for SendP(l, v): perform
// sendOp, then resolve to whatever the dispatcher hands back (Unit on
// an ordinary rendezvous, Exception(ExcClosed) if the channel had
// already been closed).
func performSend(id ChannelID, v Value) kont.Eff[Value] {
	return kont.Perform(sendOp{Chan: id, Val: v})
}

// performRecv builds the effect computation for ReceiveP(l): perform
// recvOp, resolving to the sent value or Exception(ExcClosed).
func performRecv(id ChannelID) kont.Eff[Value] {
	return kont.Perform(recvOp{Chan: id})
}
