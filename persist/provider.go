package persist

import (
	"context"
	"time"

	"github.com/unkn0wn-root/plainjson"
	"github.com/unkn0wn-root/plainjson/internal/util"
	"github.com/unkn0wn-root/plainjson/internal/wire"
	"github.com/unkn0wn-root/plainjson/provider"
)

// ProviderStore keeps documents in a byte store under "doc:<Namespace>:<key>".
// Values are framed with their content hash; frames that fail validation are
// deleted and reported as misses.
type ProviderStore struct {
	Provider  provider.Provider
	Namespace string
	TTL       time.Duration // <= 0 keeps documents until evicted
	Logger    plainjson.Logger
	Hooks     Hooks
}

var _ Store = (*ProviderStore)(nil)

func (s *ProviderStore) logger() plainjson.Logger {
	if s.Logger == nil {
		return plainjson.NopLogger{}
	}
	return s.Logger
}

func (s *ProviderStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if s.Provider == nil {
		return nil, false, ErrNilStore
	}
	k := util.DocKey(s.Namespace, key)
	raw, ok, err := s.Provider.Get(ctx, k)
	if err != nil || !ok {
		return nil, false, err
	}
	_, payload, err := wire.DecodeDoc(raw)
	if err != nil {
		s.logger().Warn("persist: dropping corrupt document", plainjson.Fields{"key": k, "err": err})
		_ = s.Provider.Del(ctx, k) // self-heal
		if s.Hooks != nil {
			s.Hooks.SelfHeal(k, "corrupt")
		}
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

func (s *ProviderStore) Save(ctx context.Context, key string, data []byte) (bool, error) {
	if s.Provider == nil {
		return false, ErrNilStore
	}
	k := util.DocKey(s.Namespace, key)
	if raw, ok, err := s.Provider.Get(ctx, k); err == nil && ok {
		if h, _, err := wire.DecodeDoc(raw); err == nil && h == wire.Hash(data) {
			return false, nil
		}
	}
	ok, err := s.Provider.Set(ctx, k, wire.EncodeDoc(data), s.TTL)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrRejected
	}
	return true, nil
}

// Delete removes the document stored under key.
func (s *ProviderStore) Delete(ctx context.Context, key string) error {
	if s.Provider == nil {
		return ErrNilStore
	}
	return s.Provider.Del(ctx, util.DocKey(s.Namespace, key))
}

func (s *ProviderStore) Close(ctx context.Context) error {
	if s.Provider == nil {
		return nil
	}
	return s.Provider.Close(ctx)
}
