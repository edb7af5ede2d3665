package shard

import (
	"hash/fnv"
	"strconv"

	"github.com/gridsql/gridsql/internal/record"
)

// canonicalBytes is the byte representation a value hashes under. It must be
// stable across processes: equal values (per record.Value.Equal) always
// produce identical bytes.
func canonicalBytes(v record.Value) []byte {
	switch v.Kind {
	case record.KindNull:
		return []byte("null")
	case record.KindInteger, record.KindFloat:
		return strconv.AppendInt(nil, v.Int, 10)
	case record.KindText:
		return []byte(v.Str)
	case record.KindBoolean:
		if v.Bool {
			return []byte("true")
		}
		return []byte("false")
	default:
		panic("shard: unhandled value kind")
	}
}

// shardFor maps a key value to a shard id in [0, n) by FNV-1a over the
// canonical bytes. Pure and deterministic for the life of the process and
// across runs.
func shardFor(key record.Value, n int) int {
	h := fnv.New32a()
	_, _ = h.Write(canonicalBytes(key))
	return int(h.Sum32() % uint32(n))
}
