// Package keylock serializes work per key with a fixed set of striped mutexes.
// Distinct keys may share a stripe, so a goroutine holding one key of a table
// must not lock another key of the same table.
package keylock

import (
	"strconv"
	"sync"

	"github.com/OneOfOne/xxhash"
)

const DefaultStripes = 256

type Table struct {
	stripes []sync.Mutex
}

func New(stripes int) *Table {
	if stripes <= 0 {
		stripes = DefaultStripes
	}
	return &Table{stripes: make([]sync.Mutex, stripes)}
}

// Lock acquires the stripe for key and returns its unlock func.
func (t *Table) Lock(key string) func() {
	m := &t.stripes[t.index(key)]
	m.Lock()
	return m.Unlock
}

func (t *Table) index(key string) int {
	h := xxhash.NewS64(0)
	h.Write([]byte(key))
	return int(h.Sum64() % uint64(len(t.stripes)))
}

// CardKey builds a lock key for a card in a namespace ("review", "public").
func CardKey(namespace string, cardID, chatID int64) string {
	return namespace + ":" + strconv.FormatInt(chatID, 10) + ":" + strconv.FormatInt(cardID, 10)
}

// UserKey builds a lock key for a user in a namespace ("conv", "submit").
func UserKey(namespace string, userID int64) string {
	return namespace + ":" + strconv.FormatInt(userID, 10)
}
