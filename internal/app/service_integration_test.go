package service_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/okian/toplist/internal/adapters/repository"
	service "github.com/okian/toplist/internal/app"
	"github.com/okian/toplist/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func startedService() *service.Service {
	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestScenario_CreateAndDeleteKeepsRanksContiguous(t *testing.T) {
	Convey("Given three items created in category Movies", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		first, err := svc.Create(ctx, "The Godfather", "Movies", "", "")
		So(err, ShouldBeNil)
		second, err := svc.Create(ctx, "Heat", "Movies", "", "")
		So(err, ShouldBeNil)
		third, err := svc.Create(ctx, "Alien", "Movies", "", "")
		So(err, ShouldBeNil)

		Convey("Then ranks follow creation order", func() {
			So(first.Rank, ShouldEqual, 1)
			So(second.Rank, ShouldEqual, 2)
			So(third.Rank, ShouldEqual, 3)
		})

		Convey("When deleting the item at rank 2", func() {
			So(svc.Delete(ctx, second.ID), ShouldBeNil)

			Convey("Then the remaining items hold ranks 1 and 2", func() {
				items, err := svc.ItemsByCategory(ctx, "Movies", repository.RankOrder)
				So(err, ShouldBeNil)
				So(len(items), ShouldEqual, 2)
				So(items[0].ID, ShouldEqual, first.ID)
				So(items[0].Rank, ShouldEqual, 1)
				So(items[1].ID, ShouldEqual, third.ID)
				So(items[1].Rank, ShouldEqual, 2)
			})
		})
	})
}

func TestScenario_ReorderSwapsRanks(t *testing.T) {
	Convey("Given Movies holding idA at rank 1 and idC at rank 2", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		idA, err := svc.Create(ctx, "A", "Movies", "", "")
		So(err, ShouldBeNil)
		idC, err := svc.Create(ctx, "C", "Movies", "", "")
		So(err, ShouldBeNil)

		Convey("When submitting the order [idC, idA]", func() {
			items, err := svc.Reorder(ctx, "Movies", []string{idC.ID, idA.ID})

			Convey("Then idC takes rank 1 and idA rank 2", func() {
				So(err, ShouldBeNil)
				So(items[0].ID, ShouldEqual, idC.ID)
				So(items[0].Rank, ShouldEqual, 1)
				So(items[1].ID, ShouldEqual, idA.ID)
				So(items[1].Rank, ShouldEqual, 2)
			})
		})
	})
}

func TestScenario_VotesAccumulateAndRankTopVoted(t *testing.T) {
	Convey("Given items in two categories", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		idA, err := svc.Create(ctx, "A", "Movies", "", "")
		So(err, ShouldBeNil)
		_, err = svc.Create(ctx, "B", "Books", "", "")
		So(err, ShouldBeNil)

		Convey("When voting for idA three times", func() {
			var voted model.Item
			for i := 0; i < 3; i++ {
				voted, err = svc.Vote(ctx, idA.ID)
				So(err, ShouldBeNil)
			}

			Convey("Then its vote count is exactly 3", func() {
				So(voted.VoteCount, ShouldEqual, 3)
			})

			Convey("And topVoted(1) returns idA", func() {
				top, err := svc.TopVoted(ctx, 1)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 1)
				So(top[0].ID, ShouldEqual, idA.ID)
			})
		})
	})
}

func TestScenario_StaleReorderConflicts(t *testing.T) {
	Convey("Given a category whose membership changed after the caller fetched it", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		idA, err := svc.Create(ctx, "A", "Movies", "", "")
		So(err, ShouldBeNil)
		idB, err := svc.Create(ctx, "B", "Movies", "", "")
		So(err, ShouldBeNil)
		idC, err := svc.Create(ctx, "C", "Movies", "", "")
		So(err, ShouldBeNil)

		stale := []string{idC.ID, idB.ID, idA.ID}
		So(svc.Delete(ctx, idB.ID), ShouldBeNil)

		Convey("When submitting the stale ordering", func() {
			_, err := svc.Reorder(ctx, "Movies", stale)

			Convey("Then the reorder fails with a conflict", func() {
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})

			Convey("And the category ranks are unchanged", func() {
				items, err := svc.ItemsByCategory(ctx, "Movies", repository.RankOrder)
				So(err, ShouldBeNil)
				So(len(items), ShouldEqual, 2)
				So(items[0].ID, ShouldEqual, idA.ID)
				So(items[0].Rank, ShouldEqual, 1)
				So(items[1].ID, ShouldEqual, idC.ID)
				So(items[1].Rank, ShouldEqual, 2)
			})
		})
	})
}

func TestService_CategoryChangeThroughUpdate(t *testing.T) {
	Convey("Given an item in Movies", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		_, err := svc.Create(ctx, "Keep", "Movies", "", "")
		So(err, ShouldBeNil)
		moved, err := svc.Create(ctx, "Move Me", "Movies", "", "")
		So(err, ShouldBeNil)

		Convey("When updating its category", func() {
			books := "Books"
			updated, err := svc.Update(ctx, moved.ID, model.Patch{Category: &books})

			Convey("Then it lands at the end of the new category", func() {
				So(err, ShouldBeNil)
				So(updated.Category, ShouldEqual, "Books")
				So(updated.Rank, ShouldEqual, 1)
			})

			Convey("And both categories stay contiguous", func() {
				movies, err := svc.ItemsByCategory(ctx, "Movies", repository.RankOrder)
				So(err, ShouldBeNil)
				So(len(movies), ShouldEqual, 1)
				So(movies[0].Rank, ShouldEqual, 1)

				books, err := svc.ItemsByCategory(ctx, "Books", repository.RankOrder)
				So(err, ShouldBeNil)
				So(len(books), ShouldEqual, 1)
				So(books[0].Rank, ShouldEqual, 1)
			})
		})
	})
}
