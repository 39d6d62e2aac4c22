package monitoring

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Steps(t *testing.T) {
	lines := captureLogs(t)

	p := NewProgress("scan", 25)
	for done := 1; done <= 8; done++ {
		p.Update(done, 8)
	}
	// 25, 50, 75 and the completion line
	assert.Len(t, *lines, 4)
	assert.True(t, strings.HasPrefix((*lines)[0], "scan: 25%"))
	assert.True(t, strings.HasPrefix((*lines)[3], "scan: 100% (8/8) in "))

	p.Update(8, 8)
	assert.Len(t, *lines, 4)
}

func TestProgress_OnlyCompletion(t *testing.T) {
	lines := captureLogs(t)

	p := NewProgress("rows", 0)
	for done := 1; done <= 5; done++ {
		p.Update(done, 5)
	}
	assert.Len(t, *lines, 1)

	p.Update(1, 0)
	assert.Len(t, *lines, 1)
}

func TestProgress_Concurrent(t *testing.T) {
	lines := captureLogs(t)

	p := NewProgress("rows", 10)
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(done int) {
			defer wg.Done()
			p.Update(done, 100)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, len(*lines), 10)
	assert.GreaterOrEqual(t, len(*lines), 1)
}
