package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPoolCreate(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero", 0, runtime.GOMAXPROCS(0)},
		{"negative", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(tt.workers)
			defer p.Close()
			if p.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", p.Workers(), tt.want)
			}
			if !p.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

func TestPoolRun(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var mu sync.Mutex
	seen := make(map[int]int)
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() {
			mu.Lock()
			seen[i]++
			mu.Unlock()
		}
	}
	p.Run(work)

	if len(seen) != len(work) {
		t.Fatalf("ran %d distinct items, want %d", len(seen), len(work))
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("item %d ran %d times", i, n)
		}
	}
}

func TestPoolRunEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	p.Run(nil)
	p.Run([]func(){})
}

func TestPoolRunMoreThanQueue(t *testing.T) {
	// One worker with a queue of 8 must still accept a long batch.
	p := NewPool(1)
	defer p.Close()

	var n atomic.Int64
	work := make([]func(), 500)
	for i := range work {
		work[i] = func() { n.Add(1) }
	}
	p.Run(work)
	if n.Load() != 500 {
		t.Errorf("ran %d items, want 500", n.Load())
	}
}

func TestPoolRows(t *testing.T) {
	tests := []struct {
		height, band int
		wantBands    int
	}{
		{100, 10, 10},
		{101, 10, 11},
		{5, 10, 1},
		{7, 0, 7},
		{0, 10, 0},
	}
	for _, tt := range tests {
		p := NewPool(3)
		var mu sync.Mutex
		rows := make([]int, max(tt.height, 0))
		bands := 0
		p.Rows(tt.height, tt.band, func(y0, y1 int) {
			mu.Lock()
			defer mu.Unlock()
			bands++
			for y := y0; y < y1; y++ {
				rows[y]++
			}
		})
		p.Close()

		if bands != tt.wantBands {
			t.Errorf("Rows(%d, %d) made %d bands, want %d", tt.height, tt.band, bands, tt.wantBands)
		}
		for y, n := range rows {
			if n != 1 {
				t.Errorf("Rows(%d, %d): row %d covered %d times", tt.height, tt.band, y, n)
			}
		}
	}
}

func TestPoolClose(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()
	if p.IsRunning() {
		t.Error("pool running after Close")
	}

	// A closed pool still completes the work synchronously.
	ran := false
	p.Run([]func(){func() { ran = true }})
	if !ran {
		t.Error("Run on a closed pool dropped the work")
	}
}

func TestPoolCloseDuringRun(t *testing.T) {
	for round := 0; round < 50; round++ {
		p := NewPool(2)
		var n atomic.Int64
		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				work := make([]func(), 64)
				for i := range work {
					work[i] = func() { n.Add(1) }
				}
				p.Run(work)
			}()
		}
		p.Close()
		wg.Wait()
		if got := n.Load(); got != 4*64 {
			t.Fatalf("round %d: ran %d items, want %d", round, got, 4*64)
		}
	}
}

func BenchmarkPoolRows(b *testing.B) {
	p := NewPool(0)
	defer p.Close()
	var sink atomic.Int64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Rows(1080, 16, func(y0, y1 int) { sink.Add(int64(y1 - y0)) })
	}
}
