package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/okian/toplist/internal/adapters/repository"
	service "github.com/okian/toplist/internal/app"
	"github.com/okian/toplist/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithDefaultTopVotedLimit(5),
			service.WithMaxTopVotedLimit(50),
			service.WithCategoryLockWait(100*time.Millisecond),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping should mark it stopped", func() {
				svc.Stop()
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_TopVotedLimits(t *testing.T) {
	Convey("Given a started service with tight limits", t, func() {
		svc := service.New(
			service.WithDefaultTopVotedLimit(2),
			service.WithMaxTopVotedLimit(3),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		for _, title := range []string{"A", "B", "C", "D"} {
			_, err := svc.Create(ctx, title, "Movies", "", "")
			So(err, ShouldBeNil)
		}

		Convey("When querying without a limit", func() {
			items, err := svc.TopVoted(ctx, 0)

			Convey("Then the default limit applies", func() {
				So(err, ShouldBeNil)
				So(len(items), ShouldEqual, 2)
			})
		})

		Convey("When querying within the maximum", func() {
			items, err := svc.TopVoted(ctx, 3)

			Convey("Then the requested limit applies", func() {
				So(err, ShouldBeNil)
				So(len(items), ShouldEqual, 3)
			})
		})

		Convey("When exceeding the maximum", func() {
			_, err := svc.TopVoted(ctx, 10)

			Convey("Then the request is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a started service with some items", t, func() {
		svc := service.New()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		a, err := svc.Create(ctx, "A", "Movies", "", "")
		So(err, ShouldBeNil)
		_, err = svc.Create(ctx, "B", "Books", "", "")
		So(err, ShouldBeNil)
		_, err = svc.Vote(ctx, a.ID)
		So(err, ShouldBeNil)

		Convey("When fetching stats", func() {
			stats := svc.GetStats()

			Convey("Then they reflect the store contents", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["items"], ShouldEqual, 2)
				So(stats["categories"], ShouldEqual, 2)
				So(stats["votes"], ShouldEqual, int64(1))
			})
		})
	})
}
