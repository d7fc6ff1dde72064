package service

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatPrize 奖品金额展示: 500 -> $500, 2500 -> $2,500, 1500000 -> $1.5M
func FormatPrize(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1000:
		return "$" + groupThousands(v)
	default:
		return "$" + strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// groupThousands 千分位，最多保留两位小数
func groupThousands(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}
