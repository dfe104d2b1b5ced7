// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import "folio/internal/models"

var labels = map[models.Lang]map[string]string{
	models.LangEn: {
		"projects":          "Projects",
		"blog":              "Blog",
		"lang_fa":           "فارسی",
		"lang_en":           "English",
		"email":             "Email",
		"telegram":          "Telegram",
		"featured_projects": "Featured projects",
		"all_projects":      "All projects",
		"latest_posts":      "Latest posts",
		"all_posts":         "All posts",
		"no_projects":       "No projects yet.",
		"no_posts":          "No posts yet.",
		"live_demo":         "Live demo",
		"source_code":       "Source code",
		"about":             "About",
		"technical_details": "Technical details",
		"challenges":        "Challenges",
		"solution":          "Solution",
		"code":              "Code",
		"gallery":           "Gallery",
		"ask_title":         "Ask about this project",
		"ask_placeholder":   "Type your question…",
		"ask_submit":        "Ask",
		"ask_failed":        "Something went wrong. Please try again.",
		"not_found_title":   "Page not found",
		"not_found_body":    "The page you are looking for does not exist.",
		"back_home":         "Back to home",
	},
	models.LangFa: {
		"projects":          "پروژه‌ها",
		"blog":              "وبلاگ",
		"lang_fa":           "فارسی",
		"lang_en":           "English",
		"email":             "ایمیل",
		"telegram":          "تلگرام",
		"featured_projects": "پروژه‌های منتخب",
		"all_projects":      "همه پروژه‌ها",
		"latest_posts":      "آخرین نوشته‌ها",
		"all_posts":         "همه نوشته‌ها",
		"no_projects":       "هنوز پروژه‌ای ثبت نشده است.",
		"no_posts":          "هنوز نوشته‌ای منتشر نشده است.",
		"live_demo":         "نسخه زنده",
		"source_code":       "کد منبع",
		"about":             "درباره",
		"technical_details": "جزئیات فنی",
		"challenges":        "چالش‌ها",
		"solution":          "راه‌حل",
		"code":              "کد",
		"gallery":           "گالری",
		"ask_title":         "درباره این پروژه بپرسید",
		"ask_placeholder":   "سوال خود را بنویسید…",
		"ask_submit":        "بپرس",
		"ask_failed":        "مشکلی پیش آمد. لطفا دوباره تلاش کنید.",
		"not_found_title":   "صفحه پیدا نشد",
		"not_found_body":    "صفحه‌ای که به دنبال آن هستید وجود ندارد.",
		"back_home":         "بازگشت به خانه",
	},
}

// Label returns the interface string for key in lang, or key itself when
// no translation exists.
func Label(lang models.Lang, key string) string {
	if s, ok := labels[lang][key]; ok {
		return s
	}
	return key
}

// ListTitle builds the <title> of a list page.
func ListTitle(lang models.Lang, key, siteName string) string {
	return Label(lang, key) + " | " + siteName
}
