// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package program implements the staking instruction set: vault
// initialization, stake/unstake with vault custody of the NFT, reward
// claiming, and the administrative surface (pause, config updates,
// role grants). Every instruction executes atomically against a state
// checkpoint; a failed instruction leaves no partial writes.
package program

import (
	"math"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/solvault/solvault/auditdb"
	"github.com/solvault/solvault/kv"
	"github.com/solvault/solvault/log"
	"github.com/solvault/solvault/metrics"
	"github.com/solvault/solvault/reverts"
	"github.com/solvault/solvault/safemath"
	"github.com/solvault/solvault/schema"
	"github.com/solvault/solvault/state"
)

var (
	metricExecuted = metrics.CounterVec("instructions_executed_total", []string{"instruction"})
	metricReverted = metrics.CounterVec("instructions_reverted_total", []string{"instruction"})
	metricStaked   = metrics.Gauge("nfts_staked")
)

// Signers is the set of identities that signed the current instruction.
type Signers map[solana.PublicKey]struct{}

// SignedBy builds a signer set from the given keys.
func SignedBy(keys ...solana.PublicKey) Signers {
	s := make(Signers, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key signed.
func (s Signers) Has(key solana.PublicKey) bool {
	_, ok := s[key]
	return ok
}

// Receipt describes a successfully executed instruction.
type Receipt struct {
	Instruction string
	Timestamp   int64
	Events      []Event
}

// Config assembles an Engine. Store is required; everything else has a
// sensible default.
type Config struct {
	Store  kv.Store
	Clock  clockwork.Clock
	Audit  *auditdb.AuditDB
	Logger log.Logger
	Params Params
}

// Engine executes instructions against the account store. Instructions
// are serialized; each one runs against a checkpoint and either commits
// in full or reverts in full.
type Engine struct {
	mu     sync.Mutex
	st     *state.State
	clock  clockwork.Clock
	params Params
	audit  *auditdb.AuditDB
	logger log.Logger

	vaultAddr solana.PublicKey
	vaultBump uint8
}

// New creates an engine over the given store.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.WithContext("pkg", "program")
	}
	if cfg.Params == (Params{}) {
		cfg.Params = DefaultParams()
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid params")
	}
	vaultAddr, vaultBump, err := schema.VaultAddress()
	if err != nil {
		return nil, errors.Wrap(err, "derive vault address")
	}
	return &Engine{
		st:        state.New(cfg.Store),
		clock:     cfg.Clock,
		params:    cfg.Params,
		audit:     cfg.Audit,
		logger:    cfg.Logger,
		vaultAddr: vaultAddr,
		vaultBump: vaultBump,
	}, nil
}

// VaultAddress returns the derived vault record address.
func (e *Engine) VaultAddress() solana.PublicKey {
	return e.vaultAddr
}

// Params returns the engine's policy parameters.
func (e *Engine) Params() Params {
	return e.params
}

// execute runs one instruction atomically. The handler receives the
// current unix time and returns the events to emit; any error rolls the
// state back to the pre-instruction checkpoint.
func (e *Engine) execute(name string, fn func(now int64) ([]Event, error)) (*Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now().Unix()
	checkpoint := e.st.NewCheckpoint()

	events, err := fn(now)
	if err != nil {
		e.st.RevertTo(checkpoint)
		metricReverted.AddWithLabel(1, map[string]string{"instruction": name})
		e.logger.Debug("instruction reverted", "instruction", name, "err", err)
		return nil, err
	}
	if err := e.st.Commit(); err != nil {
		e.st.RevertTo(checkpoint)
		return nil, errors.Wrap(err, "commit "+name)
	}

	if e.audit != nil && len(events) > 0 {
		recs := make([]auditdb.Record, 0, len(events))
		for _, ev := range events {
			recs = append(recs, ev.auditRecord())
		}
		if err := e.audit.Append(recs); err != nil {
			// Audit is an off-path trail; its failure must not fail a
			// committed instruction.
			e.logger.Warn("audit append failed", "instruction", name, "err", err)
		}
	}
	metricExecuted.AddWithLabel(1, map[string]string{"instruction": name})
	e.logger.Info("instruction executed", "instruction", name, "events", len(events))
	return &Receipt{Instruction: name, Timestamp: now, Events: events}, nil
}

func (e *Engine) loadVault() (*schema.Vault, error) {
	data, err := e.st.Get(e.vaultAddr)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, reverts.ErrAccountNotFound
	}
	return schema.UnmarshalVault(data)
}

func (e *Engine) storeVault(v *schema.Vault) error {
	data, err := v.Marshal()
	if err != nil {
		return err
	}
	e.st.Set(e.vaultAddr, data)
	metricStaked.Set(int64(v.TotalStaked))
	return nil
}

func (e *Engine) loadUserStake(user solana.PublicKey) (*schema.UserStake, solana.PublicKey, error) {
	addr, _, err := schema.UserStakeAddress(user)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	data, err := e.st.Get(addr)
	if err != nil {
		return nil, addr, err
	}
	if data == nil {
		return nil, addr, nil
	}
	stake, err := schema.UnmarshalUserStake(data)
	if err != nil {
		return nil, addr, err
	}
	if !stake.User.Equals(user) {
		return nil, addr, reverts.ErrOwnerMismatch
	}
	return stake, addr, nil
}

func (e *Engine) storeUserStake(addr solana.PublicKey, stake *schema.UserStake) error {
	data, err := stake.Marshal()
	if err != nil {
		return err
	}
	e.st.Set(addr, data)
	return nil
}

func (e *Engine) loadRole(user solana.PublicKey) (*schema.RoleRecord, solana.PublicKey, error) {
	addr, _, err := schema.RoleAddress(user)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	data, err := e.st.Get(addr)
	if err != nil {
		return nil, addr, err
	}
	if data == nil {
		return nil, addr, nil
	}
	rec, err := schema.UnmarshalRoleRecord(data)
	if err != nil {
		return nil, addr, err
	}
	return rec, addr, nil
}

// requireSigner checks that user signed the instruction.
func requireSigner(signers Signers, user solana.PublicKey) error {
	if !signers.Has(user) {
		return reverts.ErrMissingSignature
	}
	return nil
}

// requireAdmin resolves the signer's role and checks it grants the
// permission. The vault authority passes every check without a role
// record.
func (e *Engine) requireAdmin(vault *schema.Vault, signer solana.PublicKey, allowed func(schema.Role) bool) error {
	if vault.Authority.Equals(signer) {
		return nil
	}
	rec, _, err := e.loadRole(signer)
	if err != nil {
		return err
	}
	if rec == nil {
		return reverts.ErrUnauthorized
	}
	if !allowed(rec.Role) {
		return reverts.ErrInsufficientPermissions
	}
	return nil
}

func checkedIncU32(v uint32) (uint32, error) {
	if v == math.MaxUint32 {
		return 0, reverts.ErrMathOverflow
	}
	return v + 1, nil
}

func checkedDecU32(v uint32) (uint32, error) {
	if v == 0 {
		return 0, reverts.ErrMathUnderflow
	}
	return v - 1, nil
}

// accrue folds the rewards earned since the stake record's last update
// into its pending balance. With nothing staked there is nothing to
// accrue and the stale baseline is left alone so residual rewards stay
// claimable.
func (e *Engine) accrue(stake *schema.UserStake, rate uint64, now int64) error {
	if stake.StakedNfts == 0 {
		return nil
	}
	earned, err := CalculateRewards(now-stake.LastUpdateTimestamp, rate, uint64(stake.StakedNfts), e.params.MaxTimeElapsed)
	if err != nil {
		return err
	}
	stake.PendingRewards, err = safemath.CheckedAddU64(stake.PendingRewards, earned)
	return err
}
