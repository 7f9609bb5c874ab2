package cache

import "time"

// Cleaner is anything with expirable entries.
type Cleaner interface {
	CleanExpired() int
}

// Sweeper periodically evicts expired entries from registered caches
// so idle caches do not hold stale data until the next Get.
type Sweeper struct {
	caches []Cleaner
	stop   chan struct{}
	done   chan struct{}
}

func NewSweeper(caches ...Cleaner) *Sweeper {
	return &Sweeper{
		caches: caches,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (s *Sweeper) Start(interval time.Duration) {
	go s.run(interval)
}

func (s *Sweeper) run(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range s.caches {
				c.CleanExpired()
			}
		case <-s.stop:
			return
		}
	}
}

func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}
