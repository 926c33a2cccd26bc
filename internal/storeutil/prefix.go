// Package storeutil namespaces a shared KVStoreService so several
// collections-based keepers can be built over one underlying store
// without their independently-numbered collections.NewPrefix schemas
// colliding with each other.
package storeutil

import (
	"context"

	corestore "cosmossdk.io/core/store"
)

// NewPrefixKVStoreService returns a KVStoreService whose every key is
// transparently namespaced under prefix. Two services built from the same
// underlying storeService with different prefixes never see each other's
// keys.
func NewPrefixKVStoreService(storeService corestore.KVStoreService, prefix []byte) corestore.KVStoreService {
	return prefixKVStoreService{storeService: storeService, prefix: prefix}
}

type prefixKVStoreService struct {
	storeService corestore.KVStoreService
	prefix       []byte
}

func (s prefixKVStoreService) OpenKVStore(ctx context.Context) corestore.KVStore {
	return prefixStore{store: s.storeService.OpenKVStore(ctx), prefix: s.prefix}
}

type prefixStore struct {
	store  corestore.KVStore
	prefix []byte
}

func (s prefixStore) key(k []byte) []byte {
	key := make([]byte, 0, len(s.prefix)+len(k))
	key = append(key, s.prefix...)
	key = append(key, k...)
	return key
}

func (s prefixStore) Get(key []byte) ([]byte, error) {
	return s.store.Get(s.key(key))
}

func (s prefixStore) Has(key []byte) (bool, error) {
	return s.store.Has(s.key(key))
}

func (s prefixStore) Set(key, value []byte) error {
	return s.store.Set(s.key(key), value)
}

func (s prefixStore) Delete(key []byte) error {
	return s.store.Delete(s.key(key))
}

func (s prefixStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	st, en := prefixRange(s.prefix, start, end)
	it, err := s.store.Iterator(st, en)
	if err != nil {
		return nil, err
	}
	return prefixIterator{iterator: it, prefix: s.prefix}, nil
}

func (s prefixStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	st, en := prefixRange(s.prefix, start, end)
	it, err := s.store.ReverseIterator(st, en)
	if err != nil {
		return nil, err
	}
	return prefixIterator{iterator: it, prefix: s.prefix}, nil
}

// prefixRange translates a [start, end) range over the unprefixed
// keyspace into the corresponding range over the prefixed one. A nil end
// means "through the last key under prefix", which prefixEndBytes supplies.
func prefixRange(prefix, start, end []byte) ([]byte, []byte) {
	var st, en []byte
	if start == nil {
		st = append([]byte{}, prefix...)
	} else {
		st = append(append([]byte{}, prefix...), start...)
	}
	if end == nil {
		en = prefixEndBytes(prefix)
	} else {
		en = append(append([]byte{}, prefix...), end...)
	}
	return st, en
}

// prefixEndBytes returns the smallest key that sorts after every key
// beginning with prefix, by incrementing its last non-0xff byte and
// truncating the trailing 0xff run. A prefix of all 0xff bytes (or empty)
// has no such bound, so the unbounded nil end is returned instead.
func prefixEndBytes(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	end := append([]byte{}, prefix...)
	for len(end) > 0 {
		if end[len(end)-1] == 0xff {
			end = end[:len(end)-1]
			continue
		}
		end[len(end)-1]++
		return end
	}
	return nil
}

type prefixIterator struct {
	iterator corestore.Iterator
	prefix   []byte
}

func (it prefixIterator) Domain() (start, end []byte) {
	st, en := it.iterator.Domain()
	return trimPrefix(st, it.prefix), trimPrefix(en, it.prefix)
}

func (it prefixIterator) Valid() bool { return it.iterator.Valid() }

func (it prefixIterator) Next() { it.iterator.Next() }

func (it prefixIterator) Key() []byte {
	return trimPrefix(it.iterator.Key(), it.prefix)
}

func (it prefixIterator) Value() []byte { return it.iterator.Value() }

func (it prefixIterator) Error() error { return it.iterator.Error() }

func (it prefixIterator) Close() error { return it.iterator.Close() }

func trimPrefix(key, prefix []byte) []byte {
	if key == nil || len(key) < len(prefix) {
		return key
	}
	return key[len(prefix):]
}
