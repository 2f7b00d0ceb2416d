package services

import (
	"sync"
	"time"
)

type diaryEntry struct {
	data     []byte
	filename string
	expires  time.Time
}

// DiaryCache keeps rendered diary PDFs per trip with a TTL. A background
// sweeper evicts expired buffers on a fixed interval; mutations must call
// Invalidate so stale diaries are never served.
type DiaryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[int64]diaryEntry
	done    chan struct{}
	once    sync.Once
}

func NewDiaryCache(ttl, sweep time.Duration) *DiaryCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if sweep <= 0 {
		sweep = time.Minute
	}
	c := &DiaryCache{
		ttl:     ttl,
		entries: map[int64]diaryEntry{},
		done:    make(chan struct{}),
	}
	go c.sweepLoop(sweep)
	return c
}

func (c *DiaryCache) Get(tripID int64) ([]byte, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[tripID]
	if !ok || time.Now().After(e.expires) {
		delete(c.entries, tripID)
		return nil, "", false
	}
	return e.data, e.filename, true
}

func (c *DiaryCache) Put(tripID int64, data []byte, filename string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[tripID] = diaryEntry{
		data:     data,
		filename: filename,
		expires:  time.Now().Add(c.ttl),
	}
}

func (c *DiaryCache) Invalidate(tripID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tripID)
}

// Len reports live (unexpired) entries.
func (c *DiaryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expires) {
			n++
		}
	}
	return n
}

func (c *DiaryCache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *DiaryCache) sweepLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case now := <-t.C:
			c.mu.Lock()
			for id, e := range c.entries {
				if now.After(e.expires) {
					delete(c.entries, id)
				}
			}
			c.mu.Unlock()
		}
	}
}
