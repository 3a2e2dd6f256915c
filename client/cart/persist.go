package cart

import (
	"context"
	"encoding/json"
	"fmt"
)

// KV is the local key/value storage the cart is written to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// KVPersister stores the cart as JSON under a single key.
type KVPersister struct {
	kv  KV
	key string
}

func NewKVPersister(kv KV, key string) *KVPersister {
	return &KVPersister{kv: kv, key: key}
}

func (p *KVPersister) Load() ([]Item, error) {
	data, err := p.kv.Get(context.Background(), p.key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (p *KVPersister) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return p.kv.Set(context.Background(), p.key, data)
}
