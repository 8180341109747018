package buffer

// Stats is a snapshot of the pool counters. Each counter only ever grows
type Stats struct {
	// CacheHits counts record requests served by a resident block
	CacheHits uint64
	// CacheMisses counts record requests that had to load a block
	CacheMisses uint64
	// DiskReads counts block loads
	DiskReads uint64
	// DiskWrites counts write-backs of dirty blocks, on eviction or flush
	DiskWrites uint64
}

// Requests returns the number of record requests the counters cover
func (s Stats) Requests() uint64 {
	return s.CacheHits + s.CacheMisses
}

// HitRatio returns the fraction of requests served without loading a block
func (s Stats) HitRatio() float64 {
	if s.Requests() == 0 {
		return 0
	}

	return float64(s.CacheHits) / float64(s.Requests())
}

func (p *Pool) Stats() Stats {
	return p.stats
}

func (p *Pool) CacheHits() uint64 {
	return p.stats.CacheHits
}

func (p *Pool) CacheMisses() uint64 {
	return p.stats.CacheMisses
}

func (p *Pool) DiskReads() uint64 {
	return p.stats.DiskReads
}

func (p *Pool) DiskWrites() uint64 {
	return p.stats.DiskWrites
}
