// Package hashx provides deterministic hash combining for composite keys.
// Combined hashes are stable across runs of the same version, so composite
// keys never need to store their own hash.
//
// Package hashx は、複合キーのための決定的なハッシュ合成を提供します。
// 合成結果は同一バージョンの実行間で安定している為、複合キーが自身の
// ハッシュを保持する必要はありません。
package hashx

import (
	"encoding/binary"
	"hash/fnv"
)

// 黄金比に由来する64bit定数
const golden = 0x9e3779b97f4a7c15

// Combine mixes h into the running seed. The mixing is order-sensitive:
// combining hash(x) then hash(y) does not, in general, equal combining
// hash(y) then hash(x).
//
// Combineは、hを進行中のseedに混ぜ込みます。合成は順序に依存します。
// hash(x)の後にhash(y)を合成した結果は、一般に逆順の結果と一致しません。
func Combine(seed *uint64, h uint64) {
	*seed ^= h + golden + (*seed << 6) + (*seed >> 2)
}

// Join folds the given hashes, in order, into a single hash from a zero seed.
//
// Joinは、与えられたハッシュ列を順番通りに、seed 0から1つのハッシュへ畳み込みます。
func Join(hs ...uint64) uint64 {
	var seed uint64
	for _, h := range hs {
		Combine(&seed, h)
	}
	return seed
}

func Bytes(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

func String(s string) uint64 {
	return Bytes([]byte(s))
}

func Uint64(x uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return Bytes(b[:])
}

func Int(x int) uint64 {
	return Uint64(uint64(x))
}
