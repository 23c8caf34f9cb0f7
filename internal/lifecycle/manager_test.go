package lifecycle_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	artifact "github.com/reflekt-labs/reflekt/internal/adapters/artifact"
	chain "github.com/reflekt-labs/reflekt/internal/adapters/chain"
	repository "github.com/reflekt-labs/reflekt/internal/adapters/repository"
	"github.com/reflekt-labs/reflekt/internal/domain/model"
	lifecycle "github.com/reflekt-labs/reflekt/internal/lifecycle"
	"github.com/reflekt-labs/reflekt/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const (
	testOwner  = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	otherOwner = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

// scriptedSubmitter fails a configured number of leading attempts with
// timeouts, then delegates to a real simulated ledger.
type scriptedSubmitter struct {
	mu        sync.Mutex
	timeouts  int
	attempts  int
	ledger    *chain.SimLedger
	blockOn   chan struct{} // when set, matching mints park here first
	blockAddr model.Address // empty means every mint parks
}

func newScriptedSubmitter(timeouts int) *scriptedSubmitter {
	return &scriptedSubmitter{
		timeouts: timeouts,
		ledger:   chain.NewSimLedger(chain.WithLatencyRange(time.Microsecond, 2*time.Microsecond)),
	}
}

func (s *scriptedSubmitter) gate(ctx context.Context) error {
	s.mu.Lock()
	s.attempts++
	fail := s.attempts <= s.timeouts
	s.mu.Unlock()

	if fail {
		return chain.ErrSubmissionTimeout
	}
	return nil
}

// park holds a mint for address until blockOn opens.
func (s *scriptedSubmitter) park(ctx context.Context, address model.Address) error {
	s.mu.Lock()
	block := s.blockOn
	match := s.blockAddr == "" || s.blockAddr == address
	s.mu.Unlock()

	if block == nil || !match {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return chain.ErrSubmissionTimeout
	}
}

func (s *scriptedSubmitter) SubmitMint(ctx context.Context, address model.Address, uri string, score int, tierName string) (uint64, error) {
	if err := s.gate(ctx); err != nil {
		return 0, err
	}
	if err := s.park(ctx, address); err != nil {
		return 0, err
	}
	return s.ledger.SubmitMint(ctx, address, uri, score, tierName)
}

func (s *scriptedSubmitter) SubmitUpdate(ctx context.Context, tokenID uint64, uri string, score int, tierName string) error {
	if err := s.gate(ctx); err != nil {
		return err
	}
	return s.ledger.SubmitUpdate(ctx, tokenID, uri, score, tierName)
}

func (s *scriptedSubmitter) SubmitBurn(ctx context.Context, tokenID uint64) error {
	if err := s.gate(ctx); err != nil {
		return err
	}
	return s.ledger.SubmitBurn(ctx, tokenID)
}

func assessment(score int, tierName string) lifecycle.Assessment {
	return lifecycle.Assessment{
		Address: testOwner,
		Score:   score,
		Tier:    tierName,
		Badges:  []string{"DAO Voter"},
		Breakdown: model.Breakdown{
			model.CriterionDAOParticipation: 20,
		},
	}
}

func newManager(store repository.Store, sub chain.Submitter, opts ...lifecycle.Option) *lifecycle.Manager {
	base := []lifecycle.Option{
		lifecycle.WithSubmitTimeout(time.Second),
		lifecycle.WithRetryBackoff(time.Millisecond),
	}
	return lifecycle.NewManager(store, sub, artifact.NewInMemoryGenerator(), append(base, opts...)...)
}

func TestManager_MintUpdateNoop(t *testing.T) {
	Convey("Given a wallet with no credential", t, func() {
		store := repository.NewMemStore()
		sub := newScriptedSubmitter(0)
		mgr := newManager(store, sub)
		ctx := context.Background()

		Convey("When a credential is requested", func() {
			result, err := mgr.RequestCredential(ctx, assessment(70, "rare"))

			Convey("Then a credential is minted", func() {
				So(err, ShouldBeNil)
				So(result.Outcome, ShouldEqual, lifecycle.OutcomeMinted)
				So(result.Credential.TokenID, ShouldBeGreaterThan, 0)
				So(result.Credential.Score, ShouldEqual, 70)
				So(result.Credential.State, ShouldEqual, model.StateMinted)
				So(result.Credential.ArtifactURI, ShouldNotBeEmpty)
			})

			Convey("And a material score move updates in place", func() {
				updated, uerr := mgr.RequestCredential(ctx, assessment(80, "epic"))
				So(uerr, ShouldBeNil)
				So(updated.Outcome, ShouldEqual, lifecycle.OutcomeUpdated)
				So(updated.Credential.TokenID, ShouldEqual, result.Credential.TokenID)
				So(updated.Credential.Score, ShouldEqual, 80)
				So(updated.Credential.PrevScore, ShouldEqual, 70)
				So(updated.Credential.Tier, ShouldEqual, "epic")
			})

			Convey("And a move inside the dead band is suppressed", func() {
				unchanged, uerr := mgr.RequestCredential(ctx, assessment(72, "rare"))
				So(uerr, ShouldBeNil)
				So(unchanged.Outcome, ShouldEqual, lifecycle.OutcomeUnchanged)
				So(unchanged.Credential.Score, ShouldEqual, 70)
			})

			Convey("And a tier change forces an update even inside the dead band", func() {
				// Same store and ledger: mgrTight must see the minted token.
				mgrTight := newManager(store, sub, lifecycle.WithDeadBand(10))
				moved, merr := mgrTight.RequestCredential(ctx, assessment(74, "epic"))
				So(merr, ShouldBeNil)
				So(moved.Outcome, ShouldEqual, lifecycle.OutcomeUpdated)
			})
		})
	})
}

func TestManager_BurnAndRemint(t *testing.T) {
	Convey("Given a wallet with a live credential", t, func() {
		store := repository.NewMemStore()
		mgr := newManager(store, newScriptedSubmitter(0))
		ctx := context.Background()

		minted, err := mgr.RequestCredential(ctx, assessment(70, "rare"))
		So(err, ShouldBeNil)

		Convey("When the credential is burned", func() {
			burned, berr := mgr.Burn(ctx, testOwner)

			Convey("Then the credential is marked burned", func() {
				So(berr, ShouldBeNil)
				So(burned.Outcome, ShouldEqual, lifecycle.OutcomeBurned)
				So(burned.Credential.State, ShouldEqual, model.StateBurned)
			})

			Convey("And a second burn reports no active credential", func() {
				_, again := mgr.Burn(ctx, testOwner)
				So(again, ShouldWrap, lifecycle.ErrNoActiveCredential)
			})

			Convey("And a new request re-mints with a fresh token id", func() {
				reminted, rerr := mgr.RequestCredential(ctx, assessment(75, "epic"))
				So(rerr, ShouldBeNil)
				So(reminted.Outcome, ShouldEqual, lifecycle.OutcomeMinted)
				So(reminted.Credential.TokenID, ShouldBeGreaterThan, minted.Credential.TokenID)
			})
		})

		Convey("When burning a wallet that never had a credential", func() {
			_, berr := mgr.Burn(ctx, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
			So(berr, ShouldWrap, lifecycle.ErrNoActiveCredential)
		})
	})
}

func TestManager_ConcurrentRequestRejected(t *testing.T) {
	Convey("Given a request already in flight for an address", t, func() {
		store := repository.NewMemStore()
		sub := newScriptedSubmitter(0)
		sub.blockOn = make(chan struct{})
		mgr := newManager(store, sub)
		ctx := context.Background()

		firstDone := make(chan error, 1)
		go func() {
			_, err := mgr.RequestCredential(ctx, assessment(70, "rare"))
			firstDone <- err
		}()

		// Wait until the first request parks inside the submitter.
		So(waitFor(func() bool {
			sub.mu.Lock()
			defer sub.mu.Unlock()
			return sub.attempts > 0
		}), ShouldBeTrue)

		Convey("When a second request arrives for the same address", func() {
			_, err := mgr.RequestCredential(ctx, assessment(71, "rare"))

			Convey("Then it is rejected instead of queued", func() {
				So(err, ShouldWrap, lifecycle.ErrAlreadyCredentialed)
			})
		})

		close(sub.blockOn)
		So(<-firstDone, ShouldBeNil)
	})
}

func TestManager_IndependentAddresses(t *testing.T) {
	Convey("Given a mint in flight for one address", t, func() {
		store := repository.NewMemStore()
		sub := newScriptedSubmitter(0)
		sub.blockOn = make(chan struct{})
		sub.blockAddr = testOwner
		mgr := newManager(store, sub)
		ctx := context.Background()

		firstDone := make(chan error, 1)
		go func() {
			_, err := mgr.RequestCredential(ctx, assessment(70, "rare"))
			firstDone <- err
		}()

		So(waitFor(func() bool {
			sub.mu.Lock()
			defer sub.mu.Unlock()
			return sub.attempts > 0
		}), ShouldBeTrue)

		Convey("When a different address requests a credential", func() {
			other := assessment(60, "rare")
			other.Address = otherOwner
			result, err := mgr.RequestCredential(ctx, other)

			Convey("Then it proceeds without contention", func() {
				So(err, ShouldBeNil)
				So(result.Outcome, ShouldEqual, lifecycle.OutcomeMinted)
				So(result.Credential.OwnerAddress, ShouldEqual, otherOwner)
			})
		})

		close(sub.blockOn)
		So(<-firstDone, ShouldBeNil)
	})
}

func TestManager_ChainTimeouts(t *testing.T) {
	Convey("Given a chain that always times out", t, func() {
		store := repository.NewMemStore()
		mgr := newManager(store, newScriptedSubmitter(1000), lifecycle.WithSubmitRetries(1))
		ctx := context.Background()

		Convey("When a credential is requested", func() {
			_, err := mgr.RequestCredential(ctx, assessment(70, "rare"))

			Convey("Then the operation fails with a timeout", func() {
				So(err, ShouldWrap, chain.ErrSubmissionTimeout)
			})

			Convey("And no local state was written", func() {
				_, exists, gerr := store.Get(ctx, testOwner)
				So(gerr, ShouldBeNil)
				So(exists, ShouldBeFalse)
			})
		})
	})

	Convey("Given a chain that recovers after one timeout", t, func() {
		store := repository.NewMemStore()
		sub := newScriptedSubmitter(1)
		mgr := newManager(store, sub, lifecycle.WithSubmitRetries(2))
		ctx := context.Background()

		Convey("When a credential is requested", func() {
			result, err := mgr.RequestCredential(ctx, assessment(70, "rare"))

			Convey("Then the retry succeeds", func() {
				So(err, ShouldBeNil)
				So(result.Outcome, ShouldEqual, lifecycle.OutcomeMinted)
				So(sub.attempts, ShouldEqual, 2)
			})
		})
	})
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
