package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	table := New(8)
	key := CardKey("review", 10, -100)

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := table.Lock(key)
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()
	assert.Equal(t, 64, counter)
}

func TestIndexStable(t *testing.T) {
	table := New(0)
	assert.Len(t, table.stripes, DefaultStripes)
	k := UserKey("conv", 7)
	assert.Equal(t, table.index(k), table.index(k))
	assert.Equal(t, "conv:7", k)
	assert.Equal(t, "review:-100:10", CardKey("review", 10, -100))
}
