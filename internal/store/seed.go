// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "folio/internal/models"

// SeedDate is the publication date of the seeded welcome post.
const SeedDate = "2024-01-01"

// DefaultSettings returns the settings a fresh site starts with.
func DefaultSettings() models.SiteSettings {
	return models.SiteSettings{
		En: models.LocaleSettings{
			SiteName:        "Portfolio",
			AuthorName:      "Site Owner",
			MetaTitle:       "Portfolio | Software Engineer",
			MetaDescription: "Projects and writing about software engineering.",
		},
		Fa: models.LocaleSettings{
			SiteName:        "نمونه‌کار",
			AuthorName:      "صاحب سایت",
			MetaTitle:       "نمونه‌کار | مهندس نرم‌افزار",
			MetaDescription: "پروژه‌ها و نوشته‌هایی درباره مهندسی نرم‌افزار.",
		},
		SEO: models.SEOSettings{
			SiteURL:  "http://localhost:8080",
			Keywords: "portfolio, software, blog",
		},
		Social: models.SocialLinks{
			Email: "owner@example.com",
		},
		AdminEmail: "owner@example.com",
	}
}

// seedDocument returns the content written when no document exists yet.
func seedDocument() *models.Document {
	settings := DefaultSettings()
	return &models.Document{
		SchemaVersion: models.SchemaVersion,
		Projects: []models.Project{{
			Slug:          "portfolio-website",
			Title:         "Portfolio Website",
			TitleFa:       "وب‌سایت نمونه‌کار",
			Description:   "A bilingual portfolio and blog with an admin panel.",
			DescriptionFa: "یک وب‌سایت دوزبانه نمونه‌کار و وبلاگ با پنل مدیریت.",
			About:         "This site. Edit or delete this project from the admin panel.",
			AboutFa:       "همین سایت. این پروژه را از پنل مدیریت ویرایش یا حذف کنید.",
			Gallery:       []string{},
			Tags:          []string{"Go", "Markdown"},
			Category:      []string{"Web Development"},
			CategoryFa:    models.PersianCategories([]string{"Web Development"}),
			ShowcaseType:  models.ShowcaseLinks,
		}},
		BlogPosts: []models.BlogPost{{
			Slug:          "hello-world",
			Title:         "Hello, World",
			TitleFa:       "سلام دنیا",
			Content:       "Welcome to the blog. This post was created when the site started for the first time.",
			ContentFa:     "به وبلاگ خوش آمدید. این نوشته هنگام اولین اجرای سایت ساخته شد.",
			Description:   "Welcome to the blog.",
			DescriptionFa: "به وبلاگ خوش آمدید.",
			Date:          SeedDate,
			Tags:          []string{"news"},
			Status:        models.PostStatusPublished,
		}},
		Settings: &settings,
	}
}
