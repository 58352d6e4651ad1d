package render

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVirtualScheduler_RunsInDueOrder(t *testing.T) {
	s := &VirtualScheduler{}
	var order []int

	s.After(200*time.Millisecond, func() { order = append(order, 3) })
	s.After(0, func() { order = append(order, 1) })
	s.After(100*time.Millisecond, func() { order = append(order, 2) })
	s.After(100*time.Millisecond, func() { order = append(order, 22) })

	s.Advance(150 * time.Millisecond)
	assert.Equal(t, []int{1, 2, 22}, order)
	assert.Equal(t, 1, s.Pending())

	s.Advance(50 * time.Millisecond)
	assert.Equal(t, []int{1, 2, 22, 3}, order)
	assert.Equal(t, 0, s.Pending())
}

func TestVirtualScheduler_DelaysAreRelativeToCurrentTime(t *testing.T) {
	s := &VirtualScheduler{}
	s.Advance(time.Second)

	ran := false
	s.After(100*time.Millisecond, func() { ran = true })
	s.Advance(99 * time.Millisecond)
	assert.False(t, ran)
	s.Advance(time.Millisecond)
	assert.True(t, ran)
}

func TestTimerScheduler_Wait(t *testing.T) {
	s := &TimerScheduler{}
	var n atomic.Int32
	for i := range 3 {
		s.After(time.Duration(i)*5*time.Millisecond, func() { n.Add(1) })
	}
	s.Wait()
	assert.Equal(t, int32(3), n.Load())
}

func TestImmediate(t *testing.T) {
	ran := false
	Immediate{}.After(time.Hour, func() { ran = true })
	assert.True(t, ran)
}
