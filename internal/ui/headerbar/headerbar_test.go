package headerbar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/vitrine/internal/ui/testutil"
)

func TestRender(t *testing.T) {
	out := Render("Oak chair", "desktop", 3, 80)

	plain := testutil.StripANSI(out)
	assert.Contains(t, plain, "Oak chair")
	assert.Contains(t, plain, "Desktop │ Mobile │ 3 images")
	assert.Equal(t, 80, testutil.MeasureWidth(out))
}

func TestRender_TruncatesTitle(t *testing.T) {
	out := Render("A very long product title that will not fit", "mobile", 1, 40)

	plain := testutil.StripANSI(out)
	assert.Contains(t, plain, "1 image")
	assert.Contains(t, plain, "...")
	assert.LessOrEqual(t, testutil.MeasureWidth(out), 40)
}

func TestRender_Narrow(t *testing.T) {
	out := testutil.StripANSI(Render("Title", "mobile", 12, 14))

	assert.Equal(t, "12 images", out)
}

func TestRender_ZeroWidth(t *testing.T) {
	assert.Empty(t, Render("Title", "desktop", 0, 0))
}
