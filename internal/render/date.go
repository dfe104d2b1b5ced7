// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"folio/internal/models"
)

var persianMonths = [...]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// FormatDate renders a stored YYYY-MM-DD date for display: "January 2,
// 2006" in English, the Solar Hijri date with Persian digits in Persian.
// Unparseable dates are returned as is.
func FormatDate(lang models.Lang, date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	if lang != models.LangFa {
		return t.Format("January 2, 2006")
	}
	jy, jm, jd := toJalali(t.Year(), int(t.Month()), t.Day())
	return persianDigits.Replace(fmt.Sprintf("%d %s %s", jd, persianMonths[jm-1], strconv.Itoa(jy)))
}

// toJalali converts a Gregorian date to the Solar Hijri calendar.
func toJalali(gy, gm, gd int) (jy, jm, jd int) {
	cumDays := [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 355666 + 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 + gd + cumDays[gm-1]

	jy = -1595 + 33*(days/12053)
	days %= 12053
	jy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}
	if days < 186 {
		return jy, 1 + days/31, 1 + days%31
	}
	return jy, 7 + (days-186)/30, 1 + (days-186)%30
}
