// Package solver implements counterfactual regret minimisation over the
// simplified heads-up game, plus the advisor that turns accumulated
// strategy into live recommendations.
package solver

import (
	"fmt"
	"sync"

	"github.com/fairdeck/gtoadvisor/internal/game"
	"github.com/fairdeck/gtoadvisor/poker"
)

// InfoSetKey identifies the situation a player experiences: what street
// it is, how strong their hole cards are, and everything both players
// have done so far. Two states with the same key are indistinguishable
// to the acting player under this abstraction.
type InfoSetKey struct {
	Street  game.Street
	Bucket  poker.HoleCategory
	History string
}

func (k InfoSetKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Street, k.Bucket, k.History)
}

// RegretEntry accumulates regrets and strategy sums for one info set.
// Values live in slices indexed by the node's legal-action order, which
// is deterministic for a given key.
type RegretEntry struct {
	RegretSum   []float64
	StrategySum []float64
	Normalising float64
	mutex       sync.Mutex
}

func newRegretEntry(n int) *RegretEntry {
	return &RegretEntry{
		RegretSum:   make([]float64, n),
		StrategySum: make([]float64, n),
	}
}

// ensureSize grows the entry to n action slots. Under history trimming
// two states with different action counts can share a key; the entry
// tracks the widest.
func (e *RegretEntry) ensureSize(n int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if len(e.RegretSum) >= n {
		return
	}
	missing := n - len(e.RegretSum)
	e.RegretSum = append(e.RegretSum, make([]float64, missing)...)
	e.StrategySum = append(e.StrategySum, make([]float64, missing)...)
}

// Strategy returns the current regret-matching distribution: positive
// regrets normalised, uniform when no action has positive regret.
func (e *RegretEntry) Strategy() []float64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return regretMatch(e.RegretSum)
}

func regretMatch(regrets []float64) []float64 {
	strat := make([]float64, len(regrets))
	total := 0.0
	for i, r := range regrets {
		if r > 0 {
			strat[i] = r
			total += r
		}
	}
	if total <= 0 {
		v := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = v
		}
		return strat
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// Update accumulates one iteration's regrets and reach-weighted
// strategy for the node.
func (e *RegretEntry) Update(regret, strategy []float64, reachWeight float64) {
	e.mutex.Lock()
	for i := range regret {
		e.RegretSum[i] += regret[i]
		e.StrategySum[i] += reachWeight * strategy[i]
	}
	e.Normalising += reachWeight
	e.mutex.Unlock()
}

// AverageStrategy returns the normalised average strategy, the quantity
// CFR actually converges with. Uniform before any update.
func (e *RegretEntry) AverageStrategy() []float64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	strat := make([]float64, len(e.StrategySum))
	if e.Normalising <= 0 {
		v := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = v
		}
		return strat
	}
	for i := range strat {
		strat[i] = e.StrategySum[i] / e.Normalising
	}
	return strat
}

func (e *RegretEntry) snapshot() regretSnapshot {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return regretSnapshot{
		RegretSum:   append([]float64(nil), e.RegretSum...),
		StrategySum: append([]float64(nil), e.StrategySum...),
		Normalising: e.Normalising,
	}
}

func newRegretEntryFromSnapshot(snap regretSnapshot) *RegretEntry {
	return &RegretEntry{
		RegretSum:   append([]float64(nil), snap.RegretSum...),
		StrategySum: append([]float64(nil), snap.StrategySum...),
		Normalising: snap.Normalising,
	}
}

const regretTableShardCount = 64
const regretTableShardMask = regretTableShardCount - 1

type regretShard struct {
	mu      sync.RWMutex
	entries map[string]*RegretEntry
}

// RegretTable holds entries keyed by info set, sharded so the training
// goroutine and concurrent advice reads contend on different locks.
type RegretTable struct {
	shards [regretTableShardCount]regretShard
}

// NewRegretTable returns an empty table ready for use.
func NewRegretTable() *RegretTable {
	table := &RegretTable{}
	for i := 0; i < regretTableShardCount; i++ {
		table.shards[i].entries = make(map[string]*RegretEntry)
	}
	return table
}

// Get returns the entry for the key, creating it with actionCount slots
// if missing.
func (t *RegretTable) Get(key InfoSetKey, actionCount int) *RegretEntry {
	k := key.String()
	shard := t.shardFor(k)

	shard.mu.RLock()
	entry, ok := shard.entries[k]
	shard.mu.RUnlock()
	if ok {
		entry.ensureSize(actionCount)
		return entry
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if entry, ok = shard.entries[k]; ok {
		entry.ensureSize(actionCount)
		return entry
	}
	entry = newRegretEntry(actionCount)
	shard.entries[k] = entry
	return entry
}

// Lookup returns the entry for the key without creating one. Advice
// reads use this so queries never grow the table.
func (t *RegretTable) Lookup(key InfoSetKey) (*RegretEntry, bool) {
	k := key.String()
	shard := t.shardFor(k)
	shard.mu.RLock()
	entry, ok := shard.entries[k]
	shard.mu.RUnlock()
	return entry, ok
}

// Entries exposes a snapshot of the table for serialisation.
func (t *RegretTable) Entries() map[string]*RegretEntry {
	out := make(map[string]*RegretEntry)
	for i := 0; i < regretTableShardCount; i++ {
		shard := &t.shards[i]
		shard.mu.RLock()
		for k, v := range shard.entries {
			out[k] = v
		}
		shard.mu.RUnlock()
	}
	return out
}

// Size returns the number of info sets tracked.
func (t *RegretTable) Size() int {
	total := 0
	for i := 0; i < regretTableShardCount; i++ {
		shard := &t.shards[i]
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

func (t *RegretTable) shardFor(key string) *regretShard {
	return &t.shards[hashKey(key)&regretTableShardMask]
}

// hashKey is FNV-1a, inlined to avoid allocating a hash.Hash per call.
func hashKey(key string) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619
	var hash uint32 = offset32
	for i := 0; i < len(key); i++ {
		hash ^= uint32(key[i])
		hash *= prime32
	}
	return hash
}
