package generic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolResetsOnPut(t *testing.T) {
	p := NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

	buf := p.Get()
	buf.WriteString("frame")
	p.Put(buf)

	assert.Zero(t, buf.Len())
	assert.NotNil(t, p.Get())
}

func TestPoolWithoutReset(t *testing.T) {
	calls := 0
	p := NewPool(func() []int { calls++; return make([]int, 0, 4) }, nil)

	s := p.Get()
	assert.Equal(t, 4, cap(s))
	p.Put(append(s, 1))
	assert.GreaterOrEqual(t, calls, 1)
}
