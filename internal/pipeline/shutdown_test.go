package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagStartsUnset(t *testing.T) {
	assert.False(t, NewFlag().IsSet())
}

func TestFlagNeverReverts(t *testing.T) {
	f := NewFlag()
	f.Set()
	f.Set()
	for i := 0; i < 3; i++ {
		assert.True(t, f.IsSet())
	}
}

func TestFlagConcurrentReaders(t *testing.T) {
	f := NewFlag()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen := false
			for j := 0; j < 1000; j++ {
				set := f.IsSet()
				if seen && !set {
					t.Error("flag reverted after being observed set")
					return
				}
				seen = set
			}
		}()
	}
	f.Set()
	wg.Wait()
	assert.True(t, f.IsSet())
}
