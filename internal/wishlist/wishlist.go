package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// クライアント側の保存キー（クライアントIDごとに分ける）
const StorageKey = "wishlist"

var ErrNameRequired = errors.New("pet name is required")

// お気に入り1件。キーはペットの名前
type Item struct {
	Name    string    `json:"name"`
	Breed   string    `json:"breed"`
	Age     int       `json:"age"`
	Price   int64     `json:"price"`
	Image   string    `json:"image"`
	Gender  string    `json:"gender"`
	AddedAt time.Time `json:"addedAt"`
}

// 保存先の約束（localstore.Store が満たす）
type KV interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Update(ctx context.Context, namespace, key string, fn func(old []byte, found bool) ([]byte, error)) error
}

// アカウントとは同期しない、クライアント単位のお気に入り
type Store struct {
	kv  KV
	now func() time.Time
}

func New(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

func (s *Store) List(ctx context.Context, clientID string) ([]Item, error) {
	raw, ok, err := s.kv.Get(ctx, clientID, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Item{}, nil
	}
	return decode(raw)
}

func (s *Store) Contains(ctx context.Context, clientID, name string) (bool, error) {
	items, err := s.List(ctx, clientID)
	if err != nil {
		return false, err
	}
	return indexOf(items, name) >= 0, nil
}

// 同じ名前が既にあれば何もしない
func (s *Store) Add(ctx context.Context, clientID string, item Item) ([]Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, ErrNameRequired
	}
	return s.mutate(ctx, clientID, func(items []Item) []Item {
		if indexOf(items, item.Name) >= 0 {
			return items
		}
		item.AddedAt = s.now()
		return append(items, item)
	})
}

func (s *Store) Remove(ctx context.Context, clientID, name string) ([]Item, error) {
	return s.mutate(ctx, clientID, func(items []Item) []Item {
		i := indexOf(items, name)
		if i < 0 {
			return items
		}
		return append(items[:i], items[i+1:]...)
	})
}

// 無ければ追加、あれば削除。added は追加したかどうか
func (s *Store) Toggle(ctx context.Context, clientID string, item Item) (bool, []Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return false, nil, ErrNameRequired
	}

	var added bool
	items, err := s.mutate(ctx, clientID, func(items []Item) []Item {
		if i := indexOf(items, item.Name); i >= 0 {
			added = false
			return append(items[:i], items[i+1:]...)
		}
		added = true
		item.AddedAt = s.now()
		return append(items, item)
	})
	if err != nil {
		return false, nil, err
	}
	return added, items, nil
}

func (s *Store) mutate(ctx context.Context, clientID string, fn func([]Item) []Item) ([]Item, error) {
	var result []Item
	err := s.kv.Update(ctx, clientID, StorageKey, func(old []byte, found bool) ([]byte, error) {
		items := []Item{}
		if found {
			decoded, err := decode(old)
			if err != nil {
				return nil, err
			}
			items = decoded
		}
		result = fn(items)
		return json.Marshal(result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func decode(raw []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func indexOf(items []Item, name string) int {
	for i, it := range items {
		if it.Name == name {
			return i
		}
	}
	return -1
}
