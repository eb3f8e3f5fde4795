package checkout

import (
	"context"
	"encoding/json"
	"time"

	"tincadia/cache"
	"tincadia/clients/wompi"
	"tincadia/logger"
)

// MerchantSource fetches merchant data from the payment provider
type MerchantSource interface {
	PublicKey() string
	GetMerchant(ctx context.Context) (*wompi.Merchant, error)
}

// Acceptance is the legal acceptance the buyer must agree to before paying
type Acceptance struct {
	AcceptanceToken    string `json:"acceptanceToken"`
	Permalink          string `json:"permalink"`
	PersonalDataToken  string `json:"personalDataToken,omitempty"`
	PersonalDataPolicy string `json:"personalDataPermalink,omitempty"`
}

// AcceptanceProvider serves the provider's presigned acceptance, cached per public key
type AcceptanceProvider struct {
	source MerchantSource
	store  cache.Store
	ttl    time.Duration
	log    *logger.Logger
}

func NewAcceptanceProvider(source MerchantSource, store cache.Store, ttl time.Duration, log *logger.Logger) *AcceptanceProvider {
	if log == nil {
		log = logger.Nop()
	}
	return &AcceptanceProvider{source: source, store: store, ttl: ttl, log: log}
}

func (a *AcceptanceProvider) key() string {
	return "acceptance:" + a.source.PublicKey()
}

// Get returns the cached acceptance, fetching a fresh one on miss. Cache faults fall through to the provider.
func (a *AcceptanceProvider) Get(ctx context.Context) (*Acceptance, error) {
	if raw, ok, err := a.store.Get(ctx, a.key()); err != nil {
		a.log.Warn("acceptance cache read failed", "error", err)
	} else if ok {
		var cached Acceptance
		if err := json.Unmarshal(raw, &cached); err == nil && cached.AcceptanceToken != "" {
			return &cached, nil
		}
	}

	merchant, err := a.source.GetMerchant(ctx)
	if err != nil {
		return nil, err
	}

	out := &Acceptance{
		AcceptanceToken: merchant.PresignedAcceptance.AcceptanceToken,
		Permalink:       merchant.PresignedAcceptance.Permalink,
	}
	if pd := merchant.PresignedPersonalDataAuth; pd != nil {
		out.PersonalDataToken = pd.AcceptanceToken
		out.PersonalDataPolicy = pd.Permalink
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := a.store.Set(ctx, a.key(), raw, a.ttl); err != nil {
			a.log.Warn("acceptance cache write failed", "error", err)
		}
	}
	return out, nil
}
