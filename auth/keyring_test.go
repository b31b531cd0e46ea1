package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestToken(t *testing.T) {
	keyring.MockInit()

	Convey("Given an empty keyring", t, func() {
		So(DeleteToken(), ShouldBeNil)
		So(Token().IsAbsent(), ShouldBeTrue)

		Convey("A stored token can be read back and deleted", func() {
			So(SetToken("secret"), ShouldBeNil)
			So(Token().MustGet(), ShouldEqual, "secret")

			So(DeleteToken(), ShouldBeNil)
			So(Token().IsAbsent(), ShouldBeTrue)
		})
	})
}
