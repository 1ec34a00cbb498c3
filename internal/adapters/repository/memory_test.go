package repository_test

import (
	"testing"

	"github.com/playrank/ranked/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := repository.NewMemoryStore(repository.WithInitialRating(500))

		Convey("When reading an unseen player", func() {
			got := store.Rating("ana")

			Convey("Then it returns the initial rating and registers the player", func() {
				So(got, ShouldEqual, 500)
				So(store.Count(), ShouldEqual, 1)
			})
		})

		Convey("When applying deltas", func() {
			before, after := store.Apply("ana", 56)

			Convey("Then the before/after pair chains from the initial rating", func() {
				So(before, ShouldEqual, 500)
				So(after, ShouldEqual, 556)
				So(store.Rating("ana"), ShouldEqual, 556)
			})

			Convey("Then negative deltas subtract", func() {
				b, a := store.Apply("ana", -100)
				So(b, ShouldEqual, 556)
				So(a, ShouldEqual, 456)
			})
		})

		Convey("When taking a snapshot", func() {
			store.Apply("ana", 10)
			store.Apply("ben", -10)
			snap := store.Snapshot()

			Convey("Then it holds every tracked rating", func() {
				So(snap, ShouldResemble, map[string]int64{"ana": 510, "ben": 490})
			})

			Convey("Then mutating the snapshot does not touch the store", func() {
				snap["ana"] = 0
				So(store.Rating("ana"), ShouldEqual, 510)
			})
		})
	})

	Convey("Given no options the default initial rating applies", t, func() {
		store := repository.NewMemoryStore()
		So(store.Rating("new"), ShouldEqual, 500)
	})
}
