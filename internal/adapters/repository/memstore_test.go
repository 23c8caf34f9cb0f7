package repository_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/reflekt-labs/reflekt/internal/adapters/repository"
	"github.com/reflekt-labs/reflekt/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	ownerA = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	ownerB = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

func liveCredential(owner model.Address, tokenID uint64, score int) model.Credential {
	return model.Credential{
		TokenID:      tokenID,
		OwnerAddress: owner,
		Score:        score,
		PrevScore:    score,
		Tier:         "rare",
		Breakdown:    model.Breakdown{model.CriterionDAOParticipation: 20},
		State:        model.StateMinted,
		MintedAt:     time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestMemStore_PutGet(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore()
		ctx := context.Background()

		Convey("When a credential is recorded", func() {
			So(store.Put(ctx, liveCredential(ownerA, 1, 70)), ShouldBeNil)

			Convey("Then it is retrievable by owner", func() {
				cred, ok, err := store.Get(ctx, ownerA)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(cred.TokenID, ShouldEqual, 1)
				So(cred.Score, ShouldEqual, 70)
			})

			Convey("And the token id is marked issued", func() {
				issued, err := store.TokenIssued(ctx, 1)
				So(err, ShouldBeNil)
				So(issued, ShouldBeTrue)
			})

			Convey("And mutating the returned copy leaves the store intact", func() {
				cred, _, _ := store.Get(ctx, ownerA)
				cred.Breakdown[model.CriterionDAOParticipation] = 0
				again, _, _ := store.Get(ctx, ownerA)
				So(again.Breakdown[model.CriterionDAOParticipation], ShouldEqual, 20)
			})
		})

		Convey("When an unknown owner is queried", func() {
			_, ok, err := store.Get(ctx, ownerB)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMemStore_Soulbound(t *testing.T) {
	Convey("Given a store holding a credential for one owner", t, func() {
		store := repository.NewMemStore()
		ctx := context.Background()
		So(store.Put(ctx, liveCredential(ownerA, 7, 60)), ShouldBeNil)

		Convey("When another owner claims the same token id", func() {
			err := store.Put(ctx, liveCredential(ownerB, 7, 80))

			Convey("Then the transfer is rejected", func() {
				So(err, ShouldWrap, repository.ErrTransferRejected)
			})

			Convey("And the original owner keeps the token", func() {
				cred, ok, gerr := store.Get(ctx, ownerA)
				So(gerr, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(cred.Score, ShouldEqual, 60)
			})
		})

		Convey("When the same owner updates the same token", func() {
			updated := liveCredential(ownerA, 7, 85)
			So(store.Put(ctx, updated), ShouldBeNil)
			cred, _, _ := store.Get(ctx, ownerA)
			So(cred.Score, ShouldEqual, 85)
		})
	})
}

func TestMemStore_ListLive(t *testing.T) {
	Convey("Given a store with live and burned credentials", t, func() {
		store := repository.NewMemStore()
		ctx := context.Background()

		So(store.Put(ctx, liveCredential(ownerA, 1, 70)), ShouldBeNil)
		burned := liveCredential(ownerB, 2, 40)
		burned.State = model.StateBurned
		So(store.Put(ctx, burned), ShouldBeNil)

		Convey("When listing live credentials", func() {
			live, err := store.ListLive(ctx)

			Convey("Then only minted credentials appear", func() {
				So(err, ShouldBeNil)
				So(len(live), ShouldEqual, 1)
				So(live[0].OwnerAddress, ShouldEqual, ownerA)
			})
		})

		Convey("Then Len counts every record", func() {
			So(store.Len(), ShouldEqual, 2)
		})
	})
}
