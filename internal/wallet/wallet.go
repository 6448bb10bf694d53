// Package wallet drives the donation flow against an opaque wallet
// provider. No chain SDK lives here: the provider and connection are
// boundary contracts implemented by the embedding application.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"claimlens/internal/store"
)

const lamportsPerSOL = 1_000_000_000

// ErrSignAndSendUnsupported tells Donate to fall back to the separate
// sign-then-submit path.
var ErrSignAndSendUnsupported = errors.New("wallet: sign-and-send not supported")

// Blockhash anchors a transfer to a recent block.
type Blockhash struct {
	Hash                 string
	LastValidBlockHeight uint64
}

// Transfer is one unsigned lamport transfer.
type Transfer struct {
	From     string
	To       string
	Lamports uint64
	Recent   Blockhash
}

// Wallet is the user's signing provider.
type Wallet interface {
	// Connect returns the connected account's public key.
	Connect(ctx context.Context) (string, error)
	// SignAndSend signs and submits in one step, returning the
	// transaction signature. Providers without this capability return
	// ErrSignAndSendUnsupported.
	SignAndSend(ctx context.Context, tx Transfer) (string, error)
	// SignTransaction signs without submitting, returning the
	// serialized signed transaction.
	SignTransaction(ctx context.Context, tx Transfer) ([]byte, error)
}

// Connection is the RPC endpoint for the configured cluster.
type Connection interface {
	LatestBlockhash(ctx context.Context) (Blockhash, error)
	SendRaw(ctx context.Context, signed []byte) (string, error)
	Confirm(ctx context.Context, signature string, recent Blockhash) error
}

// Service runs donations and records confirmed ones.
type Service struct {
	wallet  Wallet
	conn    Connection
	store   *store.Store
	address string
	cluster string
	log     zerolog.Logger
}

// NewService wires a donation service. store may be nil; history is
// then not recorded.
func NewService(w Wallet, conn Connection, st *store.Store, address, cluster string, log zerolog.Logger) *Service {
	return &Service{wallet: w, conn: conn, store: st, address: address, cluster: cluster, log: log}
}

// Donate transfers amountSOL to the configured donation address and
// returns the confirmed transaction signature.
func (s *Service) Donate(ctx context.Context, amountSOL float64) (string, error) {
	lamports, err := toLamports(amountSOL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s.address) == "" {
		return "", errors.New("wallet: missing donation address")
	}

	from, err := s.wallet.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("wallet: connect: %w", err)
	}

	recent, err := s.conn.LatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("wallet: latest blockhash: %w", err)
	}

	tx := Transfer{
		From:     from,
		To:       s.address,
		Lamports: lamports,
		Recent:   recent,
	}

	signature, err := s.wallet.SignAndSend(ctx, tx)
	if errors.Is(err, ErrSignAndSendUnsupported) {
		var signed []byte
		signed, err = s.wallet.SignTransaction(ctx, tx)
		if err != nil {
			return "", fmt.Errorf("wallet: sign: %w", err)
		}
		signature, err = s.conn.SendRaw(ctx, signed)
	}
	if err != nil {
		return "", fmt.Errorf("wallet: submit: %w", err)
	}

	if err := s.conn.Confirm(ctx, signature, recent); err != nil {
		return "", fmt.Errorf("wallet: confirm: %w", err)
	}

	if s.store != nil {
		if _, err := s.store.RecordDonation(ctx, signature, amountSOL, s.cluster); err != nil {
			s.log.Warn().Err(err).Msg("donation recorded on chain but not in history")
		}
	}

	s.log.Info().Str("signature", signature).Float64("amount_sol", amountSOL).Msg("donation confirmed")
	return signature, nil
}

// toLamports validates and converts a SOL amount.
func toLamports(amountSOL float64) (uint64, error) {
	lamports := math.Round(amountSOL * lamportsPerSOL)
	if math.IsNaN(lamports) || math.IsInf(lamports, 0) || lamports <= 0 {
		return 0, errors.New("wallet: enter a valid SOL amount")
	}
	return uint64(lamports), nil
}

// Unavailable is a Wallet for environments with no signing provider.
// Every operation fails with an install hint.
type Unavailable struct{}

var errNoProvider = errors.New("wallet: no wallet provider found; install one to donate")

func (Unavailable) Connect(ctx context.Context) (string, error) { return "", errNoProvider }

func (Unavailable) SignAndSend(ctx context.Context, tx Transfer) (string, error) {
	return "", errNoProvider
}

func (Unavailable) SignTransaction(ctx context.Context, tx Transfer) ([]byte, error) {
	return nil, errNoProvider
}
