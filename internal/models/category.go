// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CategoryLabelsFa maps every selectable project category to its Persian
// label. The admin form only offers these keys.
var CategoryLabelsFa = map[string]string{
	"Web Development":  "توسعه وب",
	"Mobile App":       "اپلیکیشن موبایل",
	"AI":               "هوش مصنوعی",
	"Machine Learning": "یادگیری ماشین",
	"Backend":          "بک‌اند",
	"Frontend":         "فرانت‌اند",
	"DevOps":           "دواپس",
	"Game Development": "توسعه بازی",
	"Desktop App":      "اپلیکیشن دسکتاپ",
	"Open Source":      "متن‌باز",
	"UI/UX Design":     "طراحی رابط و تجربه کاربری",
	"Data Engineering": "مهندسی داده",
	"Embedded Systems": "سیستم‌های نهفته",
	"Simulation":       "شبیه‌سازی",
}

// IsCategory reports whether name is a known category key.
func IsCategory(name string) bool {
	_, ok := CategoryLabelsFa[name]
	return ok
}

// PersianCategories returns the Persian labels for the given categories,
// preserving order. Unknown names are kept as-is.
func PersianCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if fa, ok := CategoryLabelsFa[c]; ok {
			out = append(out, fa)
			continue
		}
		out = append(out, c)
	}
	return out
}
