package amount

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(t *testing.T, s string) string {
	t.Helper()
	w, err := ToWords(decimal.RequireFromString(s))
	require.NoError(t, err)
	return w
}

func TestToWords(t *testing.T) {
	cases := map[string]string{
		"0":          "Zero Rupees Only",
		"0.00":       "Zero Rupees Only",
		"1":          "One Rupees Only",
		"15":         "Fifteen Rupees Only",
		"40":         "Forty Rupees Only",
		"99":         "Ninety Nine Rupees Only",
		"100":        "One Hundred Rupees Only",
		"101":        "One Hundred and One Rupees Only",
		"110":        "One Hundred and Ten Rupees Only",
		"999":        "Nine Hundred and Ninety Nine Rupees Only",
		"1000":       "One Thousand Rupees Only",
		"2500":       "Two Thousand Five Hundred Rupees Only",
		"100000":     "One Lakh Rupees Only",
		"10000000":   "One Crore Rupees Only",
		"10000001":   "One Crore One Rupees Only",
		"1234567.89": "Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven Rupees and Eighty Nine Paise Only",
		"99999.99":   "Ninety Nine Thousand Nine Hundred and Ninety Nine Rupees and Ninety Nine Paise Only",
		"500.05":     "Five Hundred Rupees and Five Paise Only",
	}
	for in, want := range cases {
		assert.Equal(t, want, words(t, in), "amount %s", in)
	}
}

func TestToWords_ZeroRupeesWithPaise(t *testing.T) {
	assert.Equal(t, "Zero Rupees and Fifty Paise Only", words(t, "0.50"))
	assert.Equal(t, "Zero Rupees and One Paise Only", words(t, "0.01"))
}

func TestToWords_Rounding(t *testing.T) {
	// 第三位小数四舍五入（远离零）
	assert.Equal(t, "One Rupees and One Paise Only", words(t, "1.005"))
	assert.Equal(t, "One Rupees Only", words(t, "1.004"))
	assert.Equal(t, "Two Rupees Only", words(t, "1.995"))
}

func TestToWords_LargeCrore(t *testing.T) {
	assert.Equal(t, "Nine Hundred and Ninety Nine Crore Rupees Only", words(t, "9990000000"))
	assert.Equal(t, "One Thousand Crore Rupees Only", words(t, "10000000000"))
	assert.Equal(t, "One Lakh Crore Five Rupees Only", words(t, "1000000000005"))
}

func TestToWords_Negative(t *testing.T) {
	_, err := ToWords(decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrNegative)
}

func TestToWords_NoScaleWordsBelowTenThousand(t *testing.T) {
	for n := int64(1); n <= 9999; n++ {
		w, err := ToWords(decimal.NewFromInt(n))
		require.NoError(t, err)
		assert.NotContains(t, w, "Lakh", "n=%d", n)
		assert.NotContains(t, w, "Crore", "n=%d", n)
		assert.Equal(t, n >= 1000, strings.Contains(w, "Thousand"), "n=%d", n)
		assert.True(t, strings.HasSuffix(w, "Rupees Only"), "n=%d", n)
	}
}

func TestToWords_TooLarge(t *testing.T) {
	for _, s := range []string{"1000000000000000", "999999999999999.995", "9223372036854775808", "100000000000000000000"} {
		_, err := ToWords(decimal.RequireFromString(s))
		assert.ErrorIs(t, err, ErrTooLarge, s)
	}

	w, err := ToWords(decimal.RequireFromString("999999999999999.99"))
	require.NoError(t, err)
	assert.Equal(t, "Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Rupees and Ninety Nine Paise Only", w)
}

func TestSplit(t *testing.T) {
	r, p := Split(decimal.RequireFromString("1234567.89"))
	assert.Equal(t, int64(1234567), r)
	assert.Equal(t, int64(89), p)

	r, p = Split(decimal.RequireFromString("0.5"))
	assert.Equal(t, int64(0), r)
	assert.Equal(t, int64(50), p)
}

func TestParse(t *testing.T) {
	d, err := Parse(" ₹ 1,23,456.7 ")
	require.NoError(t, err)
	assert.Equal(t, "123456.70", Fixed(d))

	_, err = Parse("")
	assert.Error(t, err)

	_, err = Parse("abc")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹ 1500.00", Format(decimal.NewFromInt(1500)))
	assert.Equal(t, "₹ 0.50", Format(decimal.RequireFromString("0.5")))
}
