package types_test

import (
	"testing"

	types "github.com/okian/k12lms/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistribution(t *testing.T) {
	Convey("Given a set of grades", t, func() {
		d := types.NewDistribution([]int{59, 60, 69, 70, 79, 80, 89, 90, 100, 95})

		Convey("Then each range counts its grades", func() {
			So(d.Counts(), ShouldResemble, [5]int{1, 2, 2, 2, 3})
		})

		Convey("And labels line up with counts", func() {
			So(types.Labels[0], ShouldEqual, "0-60")
			So(types.Labels[4], ShouldEqual, "90-100")
		})
	})

	Convey("Given no grades", t, func() {
		So(types.NewDistribution(nil).Counts(), ShouldResemble, [5]int{})
	})
}

func TestUpcomingAssignment(t *testing.T) {
	Convey("Given upcoming assignments", t, func() {
		So(types.UpcomingAssignment{DaysLeft: -1}.Overdue(), ShouldBeTrue)
		So(types.UpcomingAssignment{DaysLeft: 0}.Overdue(), ShouldBeFalse)
	})

	Convey("Given analytics with nothing graded", t, func() {
		So(types.Analytics{}.Empty(), ShouldBeTrue)
		So(types.Analytics{Count: 2}.Empty(), ShouldBeFalse)
	})
}
