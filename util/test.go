package util

import (
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"math"
	"reflect"
	"strings"
	"testing"
)

func AssertEqual(t *testing.T, expected any, actual any) {
	expectedString, expectedIsString := expected.(string)
	actualString, actualIsString := actual.(string)

	if !reflect.DeepEqual(expected, actual) {
		if expectedIsString && actualIsString {
			assertEqualStrings(t, expectedString, actualString)
		} else {
			sigolo.Errorb(1, "Expect to be equal.\nExpected: %+v\n----------\nActual  : %+v\n", expected, actual)
			t.Fail()
		}
	}
}

func AssertApprox[T float32 | float64](t *testing.T, expected T, actual T, accuracy T) {
	if math.Abs(float64(expected-actual)) > float64(accuracy) {
		sigolo.Errorb(1, "Expect to be equal within %v.\nExpected: %v\nActual  : %v", accuracy, expected, actual)
		t.Fail()
	}
}

// AssertPointsApprox compares both point lists coordinate-wise within the given accuracy.
func AssertPointsApprox(t *testing.T, expected []orb.Point, actual []orb.Point, accuracy float64) {
	if len(expected) != len(actual) {
		sigolo.Errorb(1, "Expect %d points but got %d.\nExpected: %v\nActual  : %v", len(expected), len(actual), expected, actual)
		t.Fail()
		return
	}

	for i := range expected {
		if math.Abs(expected[i].X()-actual[i].X()) > accuracy || math.Abs(expected[i].Y()-actual[i].Y()) > accuracy {
			sigolo.Errorb(1, "Expect point %d to be equal within %v.\nExpected: %v\nActual  : %v", i, accuracy, expected[i], actual[i])
			t.Fail()
		}
	}
}

func assertEqualStrings(t *testing.T, expected string, actual string) {
	expected = strings.ReplaceAll(expected, "\n", "\\n\n")
	actual = strings.ReplaceAll(actual, "\n", "\\n\n")

	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	sigolo.Errorb(2, "Expect to be equal.\n|   | %-50s | %-50s |", "Expected", "Actual")
	fmt.Printf("|%s|\n", strings.Repeat("-", 109))

	for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
		expectedLine := ""
		if i < len(expectedLines) {
			expectedLine = "\"" + expectedLines[i] + "\""
		}
		actualLine := ""
		if i < len(actualLines) {
			actualLine = "\"" + actualLines[i] + "\""
		}

		changeMark := " "
		if actualLine != expectedLine {
			changeMark = "*"
		}

		fmt.Printf("| %s | %-50s | %-50s |\n", changeMark, expectedLine, actualLine)
	}

	t.Fail()
}

func AssertNil(t *testing.T, value any) {
	if value != nil && !reflect.ValueOf(value).IsNil() {
		sigolo.Errorb(1, "Expect to be 'nil' but was: %#v", value)
		t.Fail()
	}
}

func AssertNotNil(t *testing.T, value any) {
	if value == nil || reflect.ValueOf(value).IsNil() {
		sigolo.Errorb(1, "Expect NOT to be 'nil' but was: %#v", value)
		t.Fail()
	}
}

func AssertError(t *testing.T, expectedMessage string, err error) {
	if err == nil {
		sigolo.Errorb(1, "Expected error with message: %s\nActual error: nil", expectedMessage)
		t.Fail()
		return
	}
	if expectedMessage != err.Error() {
		sigolo.Errorb(1, "Expected message: %s\nActual error message: %s", expectedMessage, err.Error())
		t.Fail()
	}
}

func AssertTrue(t *testing.T, b bool) {
	if !b {
		sigolo.Errorb(1, "Expected true but got false")
		t.Fail()
	}
}

func AssertFalse(t *testing.T, b bool) {
	if b {
		sigolo.Errorb(1, "Expected false but got true")
		t.Fail()
	}
}

func AssertContains(t *testing.T, expectedSubstring string, content string) {
	if !strings.Contains(content, expectedSubstring) {
		sigolo.Errorb(1, "Expected to contain\nSubstring: %s\nContent: %s", expectedSubstring, content)
		t.Fail()
	}
}
