package rating

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func sum(units []int64) int64 {
	var s int64
	for _, u := range units {
		s += u
	}
	return s
}

func TestApportion(t *testing.T) {
	Convey("Given fractional shares and an integer pool", t, func() {
		names := []string{"a", "b", "c"}

		Convey("When shares divide the pool evenly", func() {
			units := apportion([]float64{0.5, 0.25, 0.25}, []float64{1, 1, 1}, names, 100)
			So(units, ShouldResemble, []int64{50, 25, 25})
		})

		Convey("When floors leave a remainder it goes to the largest fractional parts", func() {
			// raw = 61.0, 24.4, 14.6 -> bases 61, 24, 14, remainder 1 to "c".
			units := apportion([]float64{0.61, 0.244, 0.146}, []float64{1, 1, 1}, names, 100)
			So(units, ShouldResemble, []int64{61, 24, 15})
			So(sum(units), ShouldEqual, 100)
		})

		Convey("When fractional parts tie the higher merit key wins", func() {
			units := apportion([]float64{0.5, 0.5}, []float64{0.2, 0.9}, []string{"a", "b"}, 5)
			So(units, ShouldResemble, []int64{2, 3})
		})

		Convey("When merit keys tie as well the ascending name wins", func() {
			units := apportion([]float64{0.5, 0.5}, []float64{0.5, 0.5}, []string{"zoe", "amy"}, 5)
			// amy is index 1 but first alphabetically.
			So(units, ShouldResemble, []int64{2, 3})
		})

		Convey("When shares do not sum to one they are normalized first", func() {
			units := apportion([]float64{2, 2, 4}, []float64{1, 1, 1}, names, 8)
			So(units, ShouldResemble, []int64{2, 2, 4})
		})

		Convey("Then the allocation always sums to the pool exactly", func() {
			shares := []float64{0.137, 0.291, 0.222, 0.35}
			keys := []float64{0.4, 0.3, 0.2, 0.1}
			fourNames := []string{"a", "b", "c", "d"}
			for pool := int64(1); pool <= 200; pool++ {
				So(sum(apportion(shares, keys, fourNames, pool)), ShouldEqual, pool)
			}
		})
	})
}
