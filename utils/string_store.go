package utils

import (
	"sync"
	"sync/atomic"
)

var storeStoreInstance *stringStoreImpl
var stringStoreInitializer sync.Once

// StringStore interns strings that are repeated across many tokens (tags).
type StringStore interface {
	GetPointer(s string) *string
	GetPointers(ss []string) []*string

	// When all models are loaded the service locks the store, a locked store
	// does not keep new strings so unseen input can not grow it.
	Lock()
	IsLocked() bool
}

type stringStoreImpl struct {
	store    sync.Map //map[string] *string
	isLocked atomic.Bool
}

func NewStringStore() StringStore {
	return new(stringStoreImpl)
}

func (stringStore *stringStoreImpl) GetPointer(s string) *string {
	if !stringStore.isLocked.Load() {
		ptr, _ := stringStore.store.LoadOrStore(s, &s)
		return ptr.(*string)
	}

	ptr, ok := stringStore.store.Load(s)
	if !ok {
		return &s
	}

	return ptr.(*string)
}

func (stringStore *stringStoreImpl) GetPointers(ss []string) []*string {
	ptrs := make([]*string, len(ss))
	for i, s := range ss {
		ptrs[i] = stringStore.GetPointer(s)
	}
	return ptrs
}

func (stringStore *stringStoreImpl) Lock() {
	stringStore.isLocked.Store(true)
}

func (stringStore *stringStoreImpl) IsLocked() bool {
	return stringStore.isLocked.Load()
}

func GlobalStringStore() StringStore {
	stringStoreInitializer.Do(func() {
		storeStoreInstance = new(stringStoreImpl)
	})

	return storeStoreInstance
}
