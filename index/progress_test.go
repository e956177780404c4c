package index

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_ReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Embedding symptoms", 100, 10)

	p.Add(5)
	assert.Empty(t, buf.String(), "below the interval nothing is written")

	p.Add(5)
	assert.Contains(t, buf.String(), "Embedding symptoms: 10/100 (10.0%)")

	p.Add(500)
	assert.Equal(t, 100, p.Done(), "progress is capped at the total")
}

func TestProgress_Finish(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Embedding faqs", 4, 10)

	p.Add(4)
	p.Finish()
	out := buf.String()
	assert.Contains(t, out, "4/4 (100.0%)")
	assert.True(t, strings.HasSuffix(out, "\n"))

	p.Finish()
	p.Add(1)
	assert.Equal(t, out, buf.String(), "nothing is written after Finish")
}

func TestProgress_NilWriter(t *testing.T) {
	p := NewProgress(nil, "x", 2, 0)
	p.Add(2)
	p.Finish()
	assert.Equal(t, 2, p.Done())
	assert.GreaterOrEqual(t, p.Elapsed().Nanoseconds(), int64(0))
}

func TestProgress_Concurrent(t *testing.T) {
	p := NewProgress(nil, "x", 1000, 50)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Add(10)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, p.Done())
}
