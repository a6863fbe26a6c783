package structures

import (
	"algoviz/internal/config"
	"algoviz/internal/step"
)

type hashEntry struct {
	key   string
	value any
}

// HashMap is a chained hash table over string keys. The hash is a
// deterministic character-code sum with bit rotation so a given key always
// lands in the same bucket for a given capacity; collisions chain within
// the bucket. The load factor is checked after every set and exceeding the
// threshold doubles the capacity and rehashes every entry.
type HashMap struct {
	emitter
	buckets    [][]hashEntry
	size       int
	capacity   int
	loadFactor float64
}

// NewHashMap creates an empty instrumented hash table.
func NewHashMap(cfg config.HashConfig, sink step.Sink) *HashMap {
	if cfg.InitialCapacity <= 0 {
		cfg.InitialCapacity = config.DefaultHashConfig().InitialCapacity
	}
	if cfg.LoadFactor <= 0 {
		cfg.LoadFactor = config.DefaultHashConfig().LoadFactor
	}
	return &HashMap{
		emitter:    emitter{target: step.TargetHashMap, sink: sink},
		buckets:    make([][]hashEntry, cfg.InitialCapacity),
		capacity:   cfg.InitialCapacity,
		loadFactor: cfg.LoadFactor,
	}
}

// Load seeds entries without emitting steps and without triggering resizes.
func (h *HashMap) Load(entries map[string]any) {
	for k, v := range entries {
		h.put(k, v)
	}
}

// hash maps a key to a bucket index: character codes accumulated under a
// 5-bit left rotation, reduced by capacity.
func (h *HashMap) hash(key string) int {
	var acc uint32
	for _, r := range key {
		acc = (acc<<5 | acc>>27) + uint32(r)
	}
	return int(acc % uint32(h.capacity))
}

// put inserts or updates silently; reports the bucket, whether the bucket
// already had entries, and whether an existing key was updated.
func (h *HashMap) put(key string, value any) (bucket int, collision, updated bool) {
	bucket = h.hash(key)
	collision = len(h.buckets[bucket]) > 0
	for i, e := range h.buckets[bucket] {
		if e.key == key {
			h.buckets[bucket][i].value = value
			return bucket, collision, true
		}
	}
	h.buckets[bucket] = append(h.buckets[bucket], hashEntry{key: key, value: value})
	h.size++
	return bucket, collision, false
}

// Set stores key→value. The set step records the bucket and whether the
// bucket already held entries; a resize triggered by the load-factor check
// emits its own separate resize step afterwards.
func (h *HashMap) Set(key string, value any) {
	bucket, collision, updated := h.put(key, value)
	h.emit("set", []any{key, value}, h.snapshot(), step.HashSetMeta{
		Key:       key,
		Bucket:    bucket,
		Collision: collision,
		Updated:   updated,
	})

	if float64(h.size)/float64(h.capacity) > h.loadFactor {
		h.resize()
	}
}

// resize doubles the capacity and rehashes every entry by replaying the
// internal put for each; the replays emit nothing, the resize itself emits
// one step.
func (h *HashMap) resize() {
	oldCapacity := h.capacity
	old := h.buckets

	h.capacity = oldCapacity * 2
	h.buckets = make([][]hashEntry, h.capacity)
	h.size = 0

	rehashed := 0
	for _, bucket := range old {
		for _, e := range bucket {
			h.put(e.key, e.value)
			rehashed++
		}
	}

	h.emit("resize", nil, h.snapshot(), step.ResizeMeta{
		OldCapacity: oldCapacity,
		NewCapacity: h.capacity,
		Rehashed:    rehashed,
	})
}

// Get returns the value for key and whether it exists.
func (h *HashMap) Get(key string) (any, bool) {
	bucket := h.hash(key)
	for _, e := range h.buckets[bucket] {
		if e.key == key {
			h.emit("get", []any{key}, h.snapshot(), step.HashGetMeta{
				Key:    key,
				Bucket: bucket,
				Found:  true,
			})
			return e.value, true
		}
	}
	h.emit("get", []any{key}, h.snapshot(), step.HashGetMeta{Key: key, Bucket: bucket})
	return nil, false
}

// Delete removes key. A missing key still emits a step with Deleted:false.
func (h *HashMap) Delete(key string) bool {
	bucket := h.hash(key)
	for i, e := range h.buckets[bucket] {
		if e.key == key {
			h.buckets[bucket] = append(h.buckets[bucket][:i], h.buckets[bucket][i+1:]...)
			h.size--
			h.emit("delete", []any{key}, h.snapshot(), step.HashDeleteMeta{
				Key:     key,
				Bucket:  bucket,
				Deleted: true,
			})
			return true
		}
	}
	h.emit("delete", []any{key}, h.snapshot(), step.HashDeleteMeta{Key: key, Bucket: bucket})
	return false
}

// Clear removes every entry, keeping the current capacity.
func (h *HashMap) Clear() {
	removed := h.size
	h.buckets = make([][]hashEntry, h.capacity)
	h.size = 0
	h.emit("clear", nil, h.snapshot(), step.ClearMeta{Removed: removed})
}

// Size returns the entry count.
func (h *HashMap) Size() int { return h.size }

// IsEmpty reports whether the table holds no entries.
func (h *HashMap) IsEmpty() bool { return h.size == 0 }

// Capacity returns the current bucket count.
func (h *HashMap) Capacity() int { return h.capacity }

// Kind returns the structure tag.
func (h *HashMap) Kind() step.Target { return step.TargetHashMap }

// Snapshot returns the full bucket layout.
func (h *HashMap) Snapshot() any { return h.snapshot() }

func (h *HashMap) snapshot() step.HashSnapshot {
	buckets := make([][]step.HashEntry, len(h.buckets))
	for i, bucket := range h.buckets {
		if len(bucket) == 0 {
			continue
		}
		buckets[i] = make([]step.HashEntry, len(bucket))
		for j, e := range bucket {
			buckets[i][j] = step.HashEntry{Key: e.key, Value: e.value}
		}
	}
	return step.HashSnapshot{
		Capacity: h.capacity,
		Size:     h.size,
		Buckets:  buckets,
	}
}
